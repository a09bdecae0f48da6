// Package quality computes elementary code quality counts from a parse tree.
//
// Only the Python grammar is wired in. The declared language of a submission
// is advisory here: every snippet is parsed as Python, so Java or JavaScript
// input normally ends in a parse error.
package quality

import (
	"bytes"
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"go.uber.org/zap"

	"github.com/codelens/api/internal/models"
)

const (
	functionNodeType = "function_definition"
	asyncKeyword     = "async"
	commentNodeType  = "comment"
)

// statements the grammar still accepts from Python 2
var legacyStatementTypes = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// Calculator parses snippets and derives a MetricsReport
type Calculator struct {
	lang   *sitter.Language
	logger *zap.Logger
}

// NewCalculator creates a calculator backed by the tree-sitter Python grammar
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		lang:   python.GetLanguage(),
		logger: logger,
	}
}

// Syntax error reasons
const (
	ReasonInvalidSyntax    = "invalid syntax"
	ReasonUnexpectedIndent = "unexpected indent"
	ReasonExpectedIndent   = "expected an indented block"
)

// SyntaxError describes the first erroneous node of a parse tree
type SyntaxError struct {
	Line    int
	Column  int
	Missing string
	Reason  string
}

func (e *SyntaxError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("expected '%s' (line %d, column %d)", e.Missing, e.Line, e.Column)
	}
	reason := e.Reason
	if reason == "" {
		reason = ReasonInvalidSyntax
	}
	return fmt.Sprintf("%s (line %d, column %d)", reason, e.Line, e.Column)
}

func syntaxErrorAt(n *sitter.Node, reason string) *SyntaxError {
	pos := n.StartPoint()
	return &SyntaxError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1, Reason: reason}
}

// Analyze parses code and counts lines, named tree nodes and function
// definitions. A snippet that does not parse returns an error.
func (c *Calculator) Analyze(ctx context.Context, code string, lang models.Language) (models.MetricsReport, error) {
	if lang != models.LanguagePython {
		c.logger.Warn("metrics are computed with the python grammar",
			zap.String("declared_language", string(lang)),
		)
	}

	content := []byte(code)
	root, err := sitter.ParseCtx(ctx, content, c.lang)
	if err != nil {
		return models.MetricsReport{}, fmt.Errorf("parse: %w", err)
	}
	if root == nil {
		return models.MetricsReport{}, fmt.Errorf("parse: no tree produced")
	}
	if root.HasError() {
		return models.MetricsReport{}, firstSyntaxError(root)
	}
	if err := firstRejectedConstruct(root, content); err != nil {
		return models.MetricsReport{}, err
	}

	var nodes, functions int
	walkNamed(root, func(n *sitter.Node) {
		nodes++
		if isFunctionDef(n) {
			functions++
		}
	})

	return models.NewMetricsReport(CountLines(code), nodes, functions), nil
}

// isFunctionDef matches plain "def" definitions; "async def" is a different
// statement kind and is not counted
func isFunctionDef(n *sitter.Node) bool {
	if n.Type() != functionNodeType {
		return false
	}
	first := n.Child(0)
	return first == nil || first.Type() != asyncKeyword
}

// walkNamed visits n and every named descendant in pre-order
func walkNamed(n *sitter.Node, visit func(*sitter.Node)) {
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walkNamed(n.NamedChild(i), visit)
	}
}

// firstSyntaxError locates the first ERROR or MISSING node in document order
func firstSyntaxError(root *sitter.Node) error {
	var found *sitter.Node
	var search func(n *sitter.Node)
	search = func(n *sitter.Node) {
		if found != nil {
			return
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child.HasError() || child.IsMissing() {
				search(child)
			}
		}
	}
	search(root)

	if found == nil {
		return &SyntaxError{Line: 1, Column: 1}
	}
	pos := found.StartPoint()
	se := &SyntaxError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}
	if found.IsMissing() {
		se.Missing = found.Type()
	}
	return se
}

// firstRejectedConstruct finds, in document order, the first construct the
// grammar parses without error although Python rejects it: Python 2
// statements, a bare walrus statement, and broken indentation.
func firstRejectedConstruct(root *sitter.Node, content []byte) *SyntaxError {
	var found *SyntaxError
	var search func(n *sitter.Node)
	search = func(n *sitter.Node) {
		if found != nil {
			return
		}
		switch typ := n.Type(); {
		case legacyStatementTypes[typ]:
			found = syntaxErrorAt(n, ReasonInvalidSyntax)
			return
		case typ == "expression_statement":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				if child := n.NamedChild(i); child.Type() == "named_expression" {
					found = syntaxErrorAt(child, ReasonInvalidSyntax)
					return
				}
			}
		case typ == "module":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				stmt := n.NamedChild(i)
				if stmt.Type() == commentNodeType || !startsLine(stmt, content) {
					continue
				}
				if stmt.StartPoint().Column > 0 {
					found = syntaxErrorAt(stmt, ReasonUnexpectedIndent)
					return
				}
			}
		case typ == "block" && n.Parent() != nil:
			stmt := firstStatement(n)
			if stmt == nil {
				at := n
				if next := n.Parent().NextNamedSibling(); next != nil {
					at = next
				}
				found = syntaxErrorAt(at, ReasonExpectedIndent)
				return
			}
			if startsLine(stmt, content) && int(stmt.StartPoint().Column) <= lineIndent(n.Parent(), content) {
				found = syntaxErrorAt(stmt, ReasonExpectedIndent)
				return
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			search(n.NamedChild(i))
		}
	}
	search(root)
	return found
}

func firstStatement(block *sitter.Node) *sitter.Node {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		if child := block.NamedChild(i); child.Type() != commentNodeType {
			return child
		}
	}
	return nil
}

// startsLine reports whether only whitespace precedes n on its line
func startsLine(n *sitter.Node, content []byte) bool {
	start := int(n.StartByte())
	lineStart := bytes.LastIndexByte(content[:start], '\n') + 1
	return len(bytes.TrimLeft(content[lineStart:start], " \t\f")) == 0
}

// lineIndent is the width of the leading whitespace of the line n starts on
func lineIndent(n *sitter.Node, content []byte) int {
	start := int(n.StartByte())
	lineStart := bytes.LastIndexByte(content[:start], '\n') + 1
	line := content[lineStart:]
	return len(line) - len(bytes.TrimLeft(line, " \t\f"))
}
