package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codelens/api/internal/analysis"
	"github.com/codelens/api/internal/middleware"
	"github.com/codelens/api/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// IndexTemplate is the name of the form page template
const IndexTemplate = "index.html"

const (
	pageTitle       = "Code Explainer, Refactoring Suggestions, Unit Test Cases Generator and Code Quality Metrics"
	pageDescription = "Paste a code snippet, select the programming language, explanation detail level, and request type"
)

// LoadTemplates parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// Stylesheet provides the CSS matching the highlighted markup
type Stylesheet interface {
	CSS() (string, error)
}

// UIHandler serves the HTML form
type UIHandler struct {
	dispatcher Dispatcher
	styles     Stylesheet
	model      string
	logger     *zap.Logger
}

// NewUIHandler creates a new form handler
func NewUIHandler(dispatcher Dispatcher, styles Stylesheet, model string, logger *zap.Logger) *UIHandler {
	return &UIHandler{dispatcher: dispatcher, styles: styles, model: model, logger: logger}
}

type exampleLink struct {
	Index      int
	Submission models.CodeSubmission
}

type pageData struct {
	Title        string
	Description  string
	Model        string
	Languages    []models.Language
	DetailLevels []models.DetailLevel
	RequestTypes []models.RequestType
	Examples     []exampleLink
	Submission   models.CodeSubmission
	Error        string
	HasResult    bool
	Highlighted  template.HTML
	Result       string
}

func (h *UIHandler) page(sub models.CodeSubmission) pageData {
	examples := make([]exampleLink, len(analysis.Examples))
	for i, ex := range analysis.Examples {
		examples[i] = exampleLink{Index: i, Submission: ex}
	}
	return pageData{
		Title:        pageTitle,
		Description:  pageDescription,
		Model:        h.model,
		Languages:    models.Languages,
		DetailLevels: models.DetailLevels,
		RequestTypes: models.RequestTypes,
		Examples:     examples,
		Submission:   sub,
	}
}

func defaultSubmission() models.CodeSubmission {
	return models.CodeSubmission{
		Language:    models.LanguagePython,
		DetailLevel: models.DetailDetailed,
		RequestType: models.RequestExplainer,
	}
}

// Index renders the empty form, or the form filled with ?example=N
func (h *UIHandler) Index(c *gin.Context) {
	sub := defaultSubmission()
	if raw := c.Query("example"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err != nil || i < 0 || i >= len(analysis.Examples) {
			c.HTML(http.StatusNotFound, IndexTemplate, withError(h.page(sub), "unknown example "+raw))
			return
		}
		sub = analysis.Examples[i]
	}
	c.HTML(http.StatusOK, IndexTemplate, h.page(sub))
}

// Submit runs the analysis for the posted form and renders both outputs
func (h *UIHandler) Submit(c *gin.Context) {
	sub, err := models.NewCodeSubmission(
		c.PostForm("code"),
		c.DefaultPostForm("language", string(models.LanguagePython)),
		c.DefaultPostForm("detail_level", string(models.DetailDetailed)),
		c.DefaultPostForm("request_type", string(models.RequestExplainer)),
	)
	if err != nil {
		_ = c.Error(err)
		data := h.page(defaultSubmission())
		data.Submission.Code = c.PostForm("code")
		c.HTML(http.StatusBadRequest, IndexTemplate, withError(data, err.Error()))
		return
	}

	resp := h.dispatcher.Dispatch(c.Request.Context(), sub)

	data := h.page(sub)
	data.HasResult = true
	data.Result = resp.Result.Display()
	if resp.Highlighted.Failure != nil {
		data.Highlighted = template.HTML(template.HTMLEscapeString(resp.Highlighted.Failure.Message))
	} else {
		// chroma escapes the snippet text
		data.Highlighted = template.HTML(resp.Highlighted.Markup)
	}
	c.HTML(http.StatusOK, IndexTemplate, data)
}

// Stylesheet serves the highlighter CSS
func (h *UIHandler) Stylesheet(c *gin.Context) {
	css, err := h.styles.CSS()
	if err != nil {
		h.logger.Error("failed to render stylesheet", zap.Error(err))
		middleware.InternalError(c, "stylesheet unavailable")
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}

func withError(d pageData, msg string) pageData {
	d.Error = msg
	return d
}
