// Package highlight renders code snippets as HTML markup.
package highlight

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/codelens/api/internal/models"
)

// DefaultStyle is used when no style is configured or the configured one is unknown
const DefaultStyle = "default"

// Highlighter turns source text into class-annotated HTML
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// New creates a highlighter for the named chroma style
func New(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Get(DefaultStyle)
	}
	return &Highlighter{
		style:     style,
		formatter: html.New(html.WithClasses(true), html.TabWidth(4)),
	}
}

// Highlight renders code with the lexer registered for language. An unknown
// language yields a highlight failure instead of markup.
func (h *Highlighter) Highlight(code, language string) models.Highlighted {
	name := strings.ToLower(strings.TrimSpace(language))
	lexer := lexers.Get(name)
	if name == "" || lexer == nil {
		return models.Highlighted{
			Failure: models.HighlightFailure(fmt.Errorf("no lexer for alias '%s' found", name)),
		}
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return models.Highlighted{Failure: models.HighlightFailure(err)}
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="highlight">`)
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return models.Highlighted{Failure: models.HighlightFailure(err)}
	}
	buf.WriteString("</div>\n")

	return models.Highlighted{Markup: buf.String()}
}

// CSS returns the stylesheet matching the classes emitted by Highlight
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", err
	}
	return buf.String(), nil
}
