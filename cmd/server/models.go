package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codelens/api/internal/completion"
	"github.com/codelens/api/internal/config"
)

func newModelsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Check the API key and list the models it can reach",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			backend, err := completion.NewGenaiBackend(ctx, config.Load(v).GeminiAPIKey)
			if err != nil {
				return err
			}
			return listModels(ctx, backend, cmd.OutOrStdout())
		},
	}
}

// listModels prints every model, marking the one the server would select
func listModels(ctx context.Context, lister completion.ModelLister, out io.Writer) error {
	infos, err := lister.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	selected, err := completion.ResolveModel(ctx, staticLister(infos))
	if err != nil {
		return err
	}
	for _, m := range infos {
		mark := " "
		if m.Name == selected.Name {
			mark = "*"
		}
		gen := ""
		if slices.Contains(m.SupportedActions, completion.GenerateAction) {
			gen = completion.GenerateAction
		}
		fmt.Fprintf(out, "%s %-40s %s\n", mark, m.Name, gen)
	}
	return nil
}

type staticLister []completion.ModelInfo

func (s staticLister) ListModels(context.Context) ([]completion.ModelInfo, error) {
	return s, nil
}
