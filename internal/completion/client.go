// Package completion sends prompts to the remote text-generation model.
package completion

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/codelens/api/internal/models"
)

// Fixed generation parameters
const (
	Temperature     float32 = 0
	MaxOutputTokens int32   = 500
)

// Params are the sampling parameters of a single generation call
type Params struct {
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultParams returns the fixed parameters used for every request
func DefaultParams() Params {
	return Params{Temperature: Temperature, MaxOutputTokens: MaxOutputTokens}
}

// Generator performs one text-generation call against a model
type Generator interface {
	GenerateText(ctx context.Context, model string, prompt string, params Params) (string, error)
}

// Observer is notified of every completion outcome
type Observer interface {
	ObserveCompletion(outcome string, latency time.Duration)
}

// Client wraps a Generator with the fixed model handle and parameters and
// converts every result into an Outcome
type Client struct {
	gen      Generator
	model    ModelHandle
	params   Params
	logger   *zap.Logger
	observer Observer
}

// NewClient creates a completion client bound to a resolved model
func NewClient(gen Generator, model ModelHandle, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		gen:    gen,
		model:  model,
		params: DefaultParams(),
		logger: logger,
	}
}

// WithObserver sets the outcome observer
func (c *Client) WithObserver(o Observer) *Client {
	c.observer = o
	return c
}

// Model returns the handle requests are sent to
func (c *Client) Model() ModelHandle { return c.model }

// Complete sends prompt once. It never returns an error: remote failures and
// empty output come back as failure outcomes.
func (c *Client) Complete(ctx context.Context, prompt string) models.Outcome {
	ctx, span := otel.Tracer("github.com/codelens/api/internal/completion").Start(ctx, "completion.Complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("model", c.model.Name),
		attribute.Int("prompt_bytes", len(prompt)),
	)

	start := time.Now()
	text, err := c.gen.GenerateText(ctx, c.model.Name, prompt, c.params)
	latency := time.Since(start)

	var outcome models.Outcome
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("text generation failed",
			zap.String("model", c.model.Name),
			zap.Duration("latency", latency),
			zap.Error(err),
		)
		outcome = models.FailureOutcome(models.GenerationFailure(err))
	case text == "":
		c.logger.Warn("text generation returned no output",
			zap.String("model", c.model.Name),
			zap.Duration("latency", latency),
		)
		outcome = models.FailureOutcome(models.EmptyOutputFailure())
	default:
		c.logger.Info("text generation completed",
			zap.String("model", c.model.Name),
			zap.Duration("latency", latency),
			zap.Int("output_bytes", len(text)),
		)
		outcome = models.TextOutcome(text)
	}

	if c.observer != nil {
		c.observer.ObserveCompletion(observedOutcome(outcome), latency)
	}
	return outcome
}

func observedOutcome(o models.Outcome) string {
	if o.Failure != nil {
		return string(o.Failure.Kind)
	}
	return "ok"
}
