package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Metric names, in report order
const (
	MetricLines      = "Number of Lines"
	MetricNodes      = "Number of AST Nodes"
	MetricFunctions  = "Number of Functions"
	MetricComplexity = "Cyclomatic Complexity (Approximate)"
)

// MetricNames is the fixed key order of a MetricsReport
var MetricNames = []string{MetricLines, MetricNodes, MetricFunctions, MetricComplexity}

// Metric is a single named count
type Metric struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MetricsReport holds the four code quality counts. The zero value is an
// all-zero report.
type MetricsReport struct {
	lines     int
	nodes     int
	functions int
}

// NewMetricsReport builds a report; complexity is derived from functions
func NewMetricsReport(lines, nodes, functions int) MetricsReport {
	return MetricsReport{lines: lines, nodes: nodes, functions: functions}
}

func (m MetricsReport) Lines() int { return m.lines }
func (m MetricsReport) Nodes() int { return m.nodes }
func (m MetricsReport) Functions() int { return m.functions }

// Complexity is the approximate cyclomatic complexity: two per function.
func (m MetricsReport) Complexity() int { return 2 * m.functions }

// Metrics returns the counts in report order
func (m MetricsReport) Metrics() []Metric {
	return []Metric{
		{Name: MetricLines, Value: m.lines},
		{Name: MetricNodes, Value: m.nodes},
		{Name: MetricFunctions, Value: m.functions},
		{Name: MetricComplexity, Value: m.Complexity()},
	}
}

// Get returns the value for a metric name
func (m MetricsReport) Get(name string) (int, bool) {
	for _, metric := range m.Metrics() {
		if metric.Name == name {
			return metric.Value, true
		}
	}
	return 0, false
}

// String renders one "name: value" line per metric
func (m MetricsReport) String() string {
	var sb strings.Builder
	for i, metric := range m.Metrics() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %d", metric.Name, metric.Value)
	}
	return sb.String()
}

// MarshalJSON encodes the report as an object whose keys keep report order
func (m MetricsReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, metric := range m.Metrics() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(metric.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", metric.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object written by MarshalJSON. Complexity is
// recomputed from the function count.
func (m *MetricsReport) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = NewMetricsReport(raw[MetricLines], raw[MetricNodes], raw[MetricFunctions])
	return nil
}

// FailureKind classifies a recoverable failure
type FailureKind string

const (
	FailureHighlight  FailureKind = "highlight_error"
	FailureParse      FailureKind = "parse_error"
	FailureGeneration FailureKind = "generation_error"
	FailureEmpty      FailureKind = "empty_output"
)

// Failure is a recoverable error carried in place of a result. Message is
// the text shown to the user.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string { return f.Message }

// User-facing messages
const (
	EmptyOutputMessage    = "Unable to generate output. Try a different code snippet"
	highlightErrorPrefix  = "Error in syntax highlighting: "
	parseErrorPrefix      = "Error in analyzing code quality: "
	generationErrorPrefix = "An error occurred: "
)

func HighlightFailure(cause error) *Failure {
	return &Failure{Kind: FailureHighlight, Message: highlightErrorPrefix + cause.Error()}
}

func ParseFailure(cause error) *Failure {
	return &Failure{Kind: FailureParse, Message: parseErrorPrefix + cause.Error()}
}

func GenerationFailure(cause error) *Failure {
	return &Failure{Kind: FailureGeneration, Message: generationErrorPrefix + cause.Error()}
}

func EmptyOutputFailure() *Failure {
	return &Failure{Kind: FailureEmpty, Message: EmptyOutputMessage}
}

// OutcomeKind tells which field of an Outcome is set
type OutcomeKind string

const (
	OutcomeText    OutcomeKind = "text"
	OutcomeMetrics OutcomeKind = "metrics"
	OutcomeFailure OutcomeKind = "failure"
)

// Outcome is the result slot of a response: model text, a metrics report,
// or a failure.
type Outcome struct {
	Kind    OutcomeKind    `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Metrics *MetricsReport `json:"metrics,omitempty"`
	Failure *Failure       `json:"failure,omitempty"`
}

func TextOutcome(text string) Outcome {
	return Outcome{Kind: OutcomeText, Text: text}
}

func MetricsOutcome(report MetricsReport) Outcome {
	return Outcome{Kind: OutcomeMetrics, Metrics: &report}
}

func FailureOutcome(f *Failure) Outcome {
	return Outcome{Kind: OutcomeFailure, Failure: f}
}

// Failed reports whether the outcome carries a failure
func (o Outcome) Failed() bool { return o.Kind == OutcomeFailure }

// Display is the text a UI shows in the result box
func (o Outcome) Display() string {
	switch o.Kind {
	case OutcomeText:
		return o.Text
	case OutcomeMetrics:
		if o.Metrics == nil {
			return ""
		}
		return o.Metrics.String()
	case OutcomeFailure:
		if o.Failure == nil {
			return ""
		}
		return o.Failure.Message
	}
	return ""
}

// Highlighted is the markup slot of a response
type Highlighted struct {
	Markup  string   `json:"markup,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// Display is the markup, or the failure message when highlighting failed
func (h Highlighted) Display() string {
	if h.Failure != nil {
		return h.Failure.Message
	}
	return h.Markup
}

// Response pairs the highlighted snippet with the result of a request
type Response struct {
	Highlighted Highlighted `json:"highlighted"`
	Result      Outcome     `json:"result"`
}
