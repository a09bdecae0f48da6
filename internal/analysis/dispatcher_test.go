package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelens/api/internal/completion"
	"github.com/codelens/api/internal/highlight"
	"github.com/codelens/api/internal/models"
	"github.com/codelens/api/internal/quality"
)

type countingAnalyzer struct {
	inner Analyzer
	calls int
}

func (c *countingAnalyzer) Analyze(ctx context.Context, code string, lang models.Language) (models.MetricsReport, error) {
	c.calls++
	return c.inner.Analyze(ctx, code, lang)
}

type fakeCompleter struct {
	outcome models.Outcome
	calls   int
	prompt  string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) models.Outcome {
	f.calls++
	f.prompt = prompt
	return f.outcome
}

type fakeGenerator struct {
	text string
	err  error
}

func (f fakeGenerator) GenerateText(context.Context, string, string, completion.Params) (string, error) {
	return f.text, f.err
}

type outcomeRecorder struct {
	seen map[string]string
}

func (r *outcomeRecorder) ObserveAnalysis(requestType, outcome string) {
	if r.seen == nil {
		r.seen = map[string]string{}
	}
	r.seen[requestType] = outcome
}

func newTestDispatcher(comp Completer) (*Dispatcher, *countingAnalyzer) {
	analyzer := &countingAnalyzer{inner: quality.NewCalculator(nil)}
	return NewDispatcher(highlight.New(highlight.DefaultStyle), analyzer, comp, nil), analyzer
}

func TestDispatch_MetricsEndToEnd(t *testing.T) {
	comp := &fakeCompleter{}
	d, analyzer := newTestDispatcher(comp)

	resp := d.Dispatch(context.Background(), Examples[3])

	require.Nil(t, resp.Highlighted.Failure)
	assert.Contains(t, resp.Highlighted.Markup, `class="highlight"`)

	require.Equal(t, models.OutcomeMetrics, resp.Result.Kind)
	report := resp.Result.Metrics
	require.NotNil(t, report)
	assert.Equal(t, 2, report.Lines())
	assert.Equal(t, 1, report.Functions())
	assert.Equal(t, 2, report.Complexity())
	assert.Positive(t, report.Nodes())

	assert.Equal(t, 1, analyzer.calls)
	assert.Zero(t, comp.calls, "metrics requests never reach the model")
}

func TestDispatch_MetricsParseFailure(t *testing.T) {
	comp := &fakeCompleter{}
	d, _ := newTestDispatcher(comp)

	resp := d.Dispatch(context.Background(), models.CodeSubmission{
		Code:        "def f(:",
		Language:    models.LanguagePython,
		DetailLevel: models.DetailBrief,
		RequestType: models.RequestQualityMetrics,
	})

	require.True(t, resp.Result.Failed())
	assert.Equal(t, models.FailureParse, resp.Result.Failure.Kind)
	assert.True(t, strings.HasPrefix(resp.Result.Display(), "Error in analyzing code quality:"))
	assert.Nil(t, resp.Result.Metrics)
	assert.Nil(t, resp.Highlighted.Failure, "highlighting still succeeds")
	assert.Zero(t, comp.calls)
}

func TestDispatch_GenerationNeverAnalyzes(t *testing.T) {
	for _, reqType := range []models.RequestType{models.RequestExplainer, models.RequestRefactoring, models.RequestUnitTests} {
		t.Run(string(reqType), func(t *testing.T) {
			comp := &fakeCompleter{outcome: models.TextOutcome("explanation")}
			d, analyzer := newTestDispatcher(comp)

			resp := d.Dispatch(context.Background(), models.CodeSubmission{
				Code:        "def add(a, b):\n  return a + b",
				Language:    models.LanguagePython,
				DetailLevel: models.DetailDetailed,
				RequestType: reqType,
			})

			assert.Equal(t, "explanation", resp.Result.Text)
			assert.Equal(t, 1, comp.calls)
			assert.Contains(t, comp.prompt, "Code "+string(reqType)+".")
			assert.Zero(t, analyzer.calls)
			assert.Nil(t, resp.Highlighted.Failure)
		})
	}
}

func TestDispatch_EmptyCompletion(t *testing.T) {
	for _, lang := range models.Languages {
		client := completion.NewClient(fakeGenerator{}, completion.ModelHandle{Name: "m"}, nil)
		d, _ := newTestDispatcher(client)

		resp := d.Dispatch(context.Background(), models.CodeSubmission{
			Code:        "int x = 1;",
			Language:    lang,
			DetailLevel: models.DetailBrief,
			RequestType: models.RequestUnitTests,
		})
		assert.Equal(t, "Unable to generate output. Try a different code snippet", resp.Result.Display())
	}
}

func TestDispatch_CompletionTransportError(t *testing.T) {
	client := completion.NewClient(fakeGenerator{err: errors.New("503 Service Unavailable")}, completion.ModelHandle{Name: "m"}, nil)
	d, _ := newTestDispatcher(client)

	resp := d.Dispatch(context.Background(), Examples[0])
	require.True(t, resp.Result.Failed())
	assert.True(t, strings.HasPrefix(resp.Result.Display(), "An error occurred:"))
	assert.Contains(t, resp.Result.Display(), "503 Service Unavailable")
	assert.NotEmpty(t, resp.Highlighted.Markup)
}

func TestDispatch_HighlightFailureDoesNotStopRequest(t *testing.T) {
	d, _ := newTestDispatcher(&fakeCompleter{})

	resp := d.Dispatch(context.Background(), models.CodeSubmission{
		Code:        "def add(a, b):\n  return a + b",
		Language:    models.Language("klingon"),
		DetailLevel: models.DetailBrief,
		RequestType: models.RequestQualityMetrics,
	})
	require.NotNil(t, resp.Highlighted.Failure)
	assert.True(t, strings.HasPrefix(resp.Highlighted.Display(), "Error in syntax highlighting:"))
	assert.Equal(t, models.OutcomeMetrics, resp.Result.Kind)
}

func TestDispatch_WithoutCompleter(t *testing.T) {
	d, _ := newTestDispatcher(nil)

	resp := d.Dispatch(context.Background(), Examples[0])
	require.True(t, resp.Result.Failed())
	assert.Equal(t, "An error occurred: text generation is not configured", resp.Result.Display())
}

func TestDispatch_RecordsOutcome(t *testing.T) {
	rec := &outcomeRecorder{}
	d, _ := newTestDispatcher(&fakeCompleter{outcome: models.FailureOutcome(models.EmptyOutputFailure())})
	d.WithRecorder(rec)

	d.Dispatch(context.Background(), Examples[3])
	d.Dispatch(context.Background(), Examples[0])

	assert.Equal(t, "metrics", rec.seen[string(models.RequestQualityMetrics)])
	assert.Equal(t, "empty_output", rec.seen[string(models.RequestExplainer)])
}

func TestExamples_AreValidSubmissions(t *testing.T) {
	require.Len(t, Examples, 4)
	for _, ex := range Examples {
		_, err := models.NewCodeSubmission(ex.Code, string(ex.Language), string(ex.DetailLevel), string(ex.RequestType))
		assert.NoError(t, err)
	}
}
