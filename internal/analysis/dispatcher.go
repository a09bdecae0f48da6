// Package analysis routes a code submission to the metrics path or the
// text-generation path.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/codelens/api/internal/models"
	"github.com/codelens/api/internal/prompt"
)

// ErrGenerationDisabled is reported when a generation request arrives and no
// completion client is configured
var ErrGenerationDisabled = errors.New("text generation is not configured")

// Highlighter renders a snippet as markup
type Highlighter interface {
	Highlight(code, language string) models.Highlighted
}

// Analyzer computes the code quality metrics of a snippet
type Analyzer interface {
	Analyze(ctx context.Context, code string, lang models.Language) (models.MetricsReport, error)
}

// Completer sends a prompt to the text-generation model
type Completer interface {
	Complete(ctx context.Context, prompt string) models.Outcome
}

// Recorder is notified of the outcome of every dispatch
type Recorder interface {
	ObserveAnalysis(requestType string, outcome string)
}

// Dispatcher is the single entry point for analysis requests. It holds no
// per-request state and is safe for concurrent use.
type Dispatcher struct {
	highlighter Highlighter
	analyzer    Analyzer
	completer   Completer
	recorder    Recorder
	logger      *zap.Logger
}

// NewDispatcher wires the collaborators. completer may be nil, in which case
// generation requests fail with ErrGenerationDisabled.
func NewDispatcher(highlighter Highlighter, analyzer Analyzer, completer Completer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		highlighter: highlighter,
		analyzer:    analyzer,
		completer:   completer,
		logger:      logger,
	}
}

// WithRecorder sets the outcome recorder
func (d *Dispatcher) WithRecorder(r Recorder) *Dispatcher {
	d.recorder = r
	return d
}

// Dispatch produces the highlighted snippet and the result for sub. Failures
// of either half are carried in the response, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, sub models.CodeSubmission) models.Response {
	ctx, span := otel.Tracer("github.com/codelens/api/internal/analysis").Start(ctx, "analysis.Dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("request_type", string(sub.RequestType)),
		attribute.String("language", string(sub.Language)),
		attribute.Int("code_bytes", len(sub.Code)),
	)

	var resp models.Response
	switch sub.RequestType {
	case models.RequestQualityMetrics:
		resp.Result = d.metrics(ctx, sub)
	case models.RequestExplainer, models.RequestRefactoring, models.RequestUnitTests:
		resp.Result = d.generate(ctx, sub)
	default:
		resp.Result = models.FailureOutcome(models.GenerationFailure(
			fmt.Errorf("%w: %q", models.ErrInvalidRequestType, sub.RequestType),
		))
	}
	resp.Highlighted = d.highlighter.Highlight(sub.Code, string(sub.Language))

	outcome := string(resp.Result.Kind)
	if resp.Result.Failure != nil {
		outcome = string(resp.Result.Failure.Kind)
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	if d.recorder != nil {
		d.recorder.ObserveAnalysis(string(sub.RequestType), outcome)
	}

	d.logger.Info("analysis dispatched",
		zap.String("request_type", string(sub.RequestType)),
		zap.String("language", string(sub.Language)),
		zap.String("outcome", outcome),
		zap.Bool("highlighted", resp.Highlighted.Failure == nil),
	)
	return resp
}

func (d *Dispatcher) metrics(ctx context.Context, sub models.CodeSubmission) models.Outcome {
	report, err := d.analyzer.Analyze(ctx, sub.Code, sub.Language)
	if err != nil {
		return models.FailureOutcome(models.ParseFailure(err))
	}
	return models.MetricsOutcome(report)
}

func (d *Dispatcher) generate(ctx context.Context, sub models.CodeSubmission) models.Outcome {
	if d.completer == nil {
		return models.FailureOutcome(models.GenerationFailure(ErrGenerationDisabled))
	}
	return d.completer.Complete(ctx, prompt.Build(sub))
}
