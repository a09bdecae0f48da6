package quality

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelens/api/internal/models"
)

func TestAnalyze_AddFunction(t *testing.T) {
	calc := NewCalculator(nil)

	report, err := calc.Analyze(context.Background(), "def add(a, b):\n  return a + b", models.LanguagePython)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Lines())
	assert.Equal(t, 1, report.Functions())
	assert.Equal(t, 2, report.Complexity())
	// module, function_definition, identifier, parameters, 2x identifier,
	// block, return_statement, binary_operator, 2x identifier
	assert.Equal(t, 11, report.Nodes())
}

func TestAnalyze_EmptyInput(t *testing.T) {
	report, err := NewCalculator(nil).Analyze(context.Background(), "", models.LanguagePython)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Lines())
	assert.Equal(t, 1, report.Nodes(), "only the root module node")
	assert.Equal(t, 0, report.Functions())
	assert.Equal(t, 0, report.Complexity())
}

func TestAnalyze_CountsNestedAndDecoratedFunctions(t *testing.T) {
	code := `import functools

def outer(x):
    def inner(y):
        return y * 2
    return inner(x)

@functools.lru_cache
def cached(n):
    return n

class Shape:
    def area(self):
        return 0

square = lambda v: v * v
`
	report, err := NewCalculator(nil).Analyze(context.Background(), code, models.LanguagePython)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Functions())
	assert.Equal(t, 8, report.Complexity())
	assert.Equal(t, 16, report.Lines())
	assert.Greater(t, report.Nodes(), 20)
}

func TestAnalyze_ComplexityAlwaysTwiceFunctions(t *testing.T) {
	snippets := []string{
		"x = [1,2,3,4,5]\ny = [i*i for i in x if i%2==0]\nprint(y)",
		"import math\n\ndef calculate_area(radius):\n  return math.pi * radius * radius\n\nradius_list = [3, 5, 7]\narea_list = list(map(calculate_area, radius_list))\nprint(area_list)",
		"def a():\n  pass\ndef b():\n  pass\ndef c():\n  pass\n",
	}
	calc := NewCalculator(nil)
	for _, code := range snippets {
		report, err := calc.Analyze(context.Background(), code, models.LanguagePython)
		require.NoError(t, err)
		assert.Equal(t, 2*report.Functions(), report.Complexity())
		assert.GreaterOrEqual(t, report.Lines(), 0)
	}
}

func TestAnalyze_SyntaxError(t *testing.T) {
	calc := NewCalculator(nil)

	tests := []struct {
		name   string
		code   string
		reason string
		line   int
	}{
		{"unclosed parameters", "def f(:", "", 1},
		{"unclosed tuple", "x = (1, 2", "", 1},
		{"java", "public class Foo { void bar() {} }", "", 1},
		{"python 2 print", `print "hello"`, ReasonInvalidSyntax, 1},
		{"python 2 exec", `exec "x = 1"`, ReasonInvalidSyntax, 1},
		{"bare walrus", "x := 1", ReasonInvalidSyntax, 1},
		{"body not indented", "def f():\nreturn 1", ReasonExpectedIndent, 2},
		{"indented module statement", "  x = 1", ReasonUnexpectedIndent, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Analyze(context.Background(), tt.code, models.LanguagePython)
			require.Error(t, err)

			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %T", err)
			assert.Equal(t, tt.line, se.Line)
			assert.GreaterOrEqual(t, se.Column, 1)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, se.Reason)
				assert.Contains(t, err.Error(), tt.reason)
			}
		})
	}
}

func TestAnalyze_AcceptsValidLayouts(t *testing.T) {
	calc := NewCalculator(nil)

	for _, code := range []string{
		"x = 1; y = 2",
		"if x: y = 1",
		"print(\"hello\")",
		"(y := 10)",
		"  # indented comment\nx = 1",
		"def f(\n    a,\n):\n    # body\n    return a",
		"if a:\n    pass\nelif b:\n    pass\nelse:\n    pass",
	} {
		t.Run(code, func(t *testing.T) {
			_, err := calc.Analyze(context.Background(), code, models.LanguagePython)
			assert.NoError(t, err)
		})
	}
}

func TestAnalyze_AsyncFunctionsAreNotCounted(t *testing.T) {
	report, err := NewCalculator(nil).Analyze(context.Background(),
		"async def fetch():\n    pass\n\ndef plain():\n    pass", models.LanguagePython)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Functions())
	assert.Equal(t, 2, report.Complexity())
}

func TestAnalyze_DeclaredLanguageIsAdvisory(t *testing.T) {
	calc := NewCalculator(nil)

	// valid python, declared as javascript: still measured with the python grammar
	report, err := calc.Analyze(context.Background(), "def f():\n  return 1", models.LanguageJavaScript)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Functions())

	_, err = calc.Analyze(context.Background(), "function f() { return 1; }", models.LanguageJavaScript)
	assert.Error(t, err)
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\r\nb\r\n", 2},
		{"a\rb", 2},
		{"\n", 1},
		{"\n\n", 2},
		{"a\u2028b", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountLines(tt.in), "%q", tt.in)
	}
}
