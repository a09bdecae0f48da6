package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/codelens/api/internal/analysis"
	"github.com/codelens/api/internal/completion"
	"github.com/codelens/api/internal/config"
	"github.com/codelens/api/internal/highlight"
	"github.com/codelens/api/internal/models"
	"github.com/codelens/api/internal/quality"
)

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	var language, detail, requestType string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze one snippet read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSnippet(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			sub, err := models.NewCodeSubmission(code, language, detail, requestType)
			if err != nil {
				return err
			}
			return analyzeOnce(cmd.Context(), v, sub, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&language, "language", string(models.LanguagePython), "Programming language of the snippet")
	cmd.Flags().StringVar(&detail, "detail", string(models.DetailDetailed), "Explanation detail level (Brief or Detailed)")
	cmd.Flags().StringVar(&requestType, "type", string(models.RequestExplainer), "Request type")
	return cmd
}

func readSnippet(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read snippet: %w", err)
	}
	return string(b), nil
}

// analyzeOnce runs a single dispatch. The model is only resolved for
// generation requests, so metrics work without an API key.
func analyzeOnce(ctx context.Context, v *viper.Viper, sub models.CodeSubmission, out io.Writer) error {
	cfg := config.Load(v)
	logger := newLogger(v, "stderr")
	defer logger.Sync()

	var completer analysis.Completer
	if sub.RequestType != models.RequestQualityMetrics {
		backend, err := completion.NewGenaiBackend(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("create text generation client: %w", err)
		}
		model, err := completion.ResolveModel(ctx, backend)
		if err != nil {
			return fmt.Errorf("select model: %w", err)
		}
		logger.Debug("selected model", zap.String("model", model.Name))
		completer = completion.NewClient(backend, model, logger)
	}

	dispatcher := analysis.NewDispatcher(highlight.New(cfg.HighlightStyle), quality.NewCalculator(logger), completer, logger)
	resp := dispatcher.Dispatch(ctx, sub)

	if resp.Highlighted.Failure != nil {
		fmt.Fprintln(out, resp.Highlighted.Failure.Message)
	}
	fmt.Fprintln(out, resp.Result.Display())

	if resp.Result.Failed() {
		return errors.New(string(resp.Result.Failure.Kind))
	}
	return nil
}
