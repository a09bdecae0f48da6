package completion

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// GenerateAction is the capability a model must advertise to be selected
const GenerateAction = "generateContent"

// ErrNoGenerativeModel is returned when no listed model can generate text
var ErrNoGenerativeModel = errors.New("no model supporting text generation found")

// ModelInfo is one entry of the remote model listing
type ModelInfo struct {
	Name             string
	DisplayName      string
	SupportedActions []string
}

// ModelLister lists the models available to the configured API key
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// ModelHandle identifies the model every request is sent to. It is resolved
// once at startup and never refreshed.
type ModelHandle struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

// ResolveModel selects the first listed model that supports text generation
func ResolveModel(ctx context.Context, lister ModelLister) (ModelHandle, error) {
	models, err := lister.ListModels(ctx)
	if err != nil {
		return ModelHandle{}, fmt.Errorf("list models: %w", err)
	}
	for _, m := range models {
		if slices.Contains(m.SupportedActions, GenerateAction) {
			return ModelHandle{Name: m.Name, DisplayName: m.DisplayName}, nil
		}
	}
	return ModelHandle{}, ErrNoGenerativeModel
}
