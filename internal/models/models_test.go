package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeSubmission(t *testing.T) {
	sub, err := NewCodeSubmission("x = 1", "Python", "detailed", "Explainer")
	require.NoError(t, err)
	assert.Equal(t, LanguagePython, sub.Language)
	assert.Equal(t, DetailDetailed, sub.DetailLevel)
	assert.Equal(t, RequestExplainer, sub.RequestType)
	assert.Equal(t, "x = 1", sub.Code)
}

func TestNewCodeSubmission_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		detail  string
		reqType string
		want    error
	}{
		{"language", "klingon", "Brief", "Explainer", ErrInvalidLanguage},
		{"detail", "java", "Verbose", "Explainer", ErrInvalidDetailLevel},
		{"request type", "javascript", "Brief", "Summarize", ErrInvalidRequestType},
		{"request type case", "python", "Brief", "explainer", ErrInvalidRequestType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodeSubmission("", tt.lang, tt.detail, tt.reqType)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestMetricsReport_ComplexityIsTwicePerFunction(t *testing.T) {
	for _, fns := range []int{0, 1, 2, 7} {
		r := NewMetricsReport(10, 20, fns)
		assert.Equal(t, 2*fns, r.Complexity())
		v, ok := r.Get(MetricComplexity)
		require.True(t, ok)
		assert.Equal(t, 2*fns, v)
	}
}

func TestMetricsReport_KeyOrder(t *testing.T) {
	r := NewMetricsReport(2, 11, 1)

	var names []string
	for _, m := range r.Metrics() {
		names = append(names, m.Name)
	}
	assert.Equal(t, MetricNames, names)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Number of Lines":2,"Number of AST Nodes":11,"Number of Functions":1,"Cyclomatic Complexity (Approximate)":2}`,
		string(raw))

	assert.Equal(t,
		"Number of Lines: 2\nNumber of AST Nodes: 11\nNumber of Functions: 1\nCyclomatic Complexity (Approximate): 2",
		r.String())
}

func TestOutcome_DecodesMetrics(t *testing.T) {
	raw, err := json.Marshal(MetricsOutcome(NewMetricsReport(16, 120, 4)))
	require.NoError(t, err)

	var out Outcome
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotNil(t, out.Metrics)
	assert.Equal(t, OutcomeMetrics, out.Kind)
	assert.Equal(t, 16, out.Metrics.Lines())
	assert.Equal(t, 120, out.Metrics.Nodes())
	assert.Equal(t, 8, out.Metrics.Complexity())
}

func TestOutcome_Display(t *testing.T) {
	assert.Equal(t, "hello", TextOutcome("hello").Display())
	assert.Equal(t, EmptyOutputMessage, FailureOutcome(EmptyOutputFailure()).Display())
	assert.Equal(t, "An error occurred: boom", FailureOutcome(GenerationFailure(errors.New("boom"))).Display())
	assert.Contains(t, MetricsOutcome(NewMetricsReport(1, 1, 0)).Display(), "Number of Lines: 1")

	o := FailureOutcome(ParseFailure(errors.New("invalid syntax (line 1, column 7)")))
	assert.True(t, o.Failed())
	assert.Equal(t, FailureParse, o.Failure.Kind)
	assert.Equal(t, "Error in analyzing code quality: invalid syntax (line 1, column 7)", o.Display())
}

func TestHighlighted_Display(t *testing.T) {
	h := Highlighted{Markup: "<pre>x</pre>"}
	assert.Equal(t, "<pre>x</pre>", h.Display())

	h = Highlighted{Failure: HighlightFailure(errors.New("no lexer for alias 'klingon' found"))}
	assert.Equal(t, "Error in syntax highlighting: no lexer for alias 'klingon' found", h.Display())
}
