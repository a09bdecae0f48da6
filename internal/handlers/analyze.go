package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codelens/api/internal/analysis"
	"github.com/codelens/api/internal/completion"
	"github.com/codelens/api/internal/middleware"
	"github.com/codelens/api/internal/models"
)

// Dispatcher runs one analysis request
type Dispatcher interface {
	Dispatch(ctx context.Context, sub models.CodeSubmission) models.Response
}

// AnalyzeHandler serves the JSON analysis API
type AnalyzeHandler struct {
	dispatcher Dispatcher
	model      completion.ModelHandle
	logger     *zap.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(dispatcher Dispatcher, model completion.ModelHandle, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{dispatcher: dispatcher, model: model, logger: logger}
}

// AnalyzeRequest is the request body for an analysis. Empty enum fields take
// the form defaults.
type AnalyzeRequest struct {
	Code        string `json:"code"`
	Language    string `json:"language" example:"python"`
	DetailLevel string `json:"detail_level" example:"Detailed"`
	RequestType string `json:"request_type" example:"Explainer"`
}

// AnalyzeResponse pairs the highlighted snippet with the result
type AnalyzeResponse struct {
	RequestID   string             `json:"request_id"`
	Model       string             `json:"model,omitempty"`
	Highlighted models.Highlighted `json:"highlighted"`
	Result      models.Outcome     `json:"result"`
}

// Submission validates the request and applies defaults
func (r AnalyzeRequest) Submission() (models.CodeSubmission, error) {
	return models.NewCodeSubmission(r.Code,
		withDefault(r.Language, string(models.LanguagePython)),
		withDefault(r.DetailLevel, string(models.DetailDetailed)),
		withDefault(r.RequestType, string(models.RequestExplainer)),
	)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Analyze highlights a snippet and explains, refactors, tests or measures it
//
//	@Summary		Analyze a code snippet
//	@Description	Highlights the snippet and runs the requested analysis. Analysis failures are returned as failure objects with status 200.
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AnalyzeRequest	true	"Code submission"
//	@Success		200		{object}	AnalyzeResponse
//	@Failure		400		{object}	middleware.APIError
//	@Router			/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, "invalid request body", err)
		return
	}

	sub, err := req.Submission()
	if err != nil {
		middleware.BadRequest(c, "invalid submission", err)
		return
	}

	resp := h.dispatcher.Dispatch(c.Request.Context(), sub)
	if resp.Result.Failed() {
		h.logger.Debug("analysis returned a failure",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("kind", string(resp.Result.Failure.Kind)),
		)
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		RequestID:   middleware.GetRequestID(c),
		Model:       h.model.Name,
		Highlighted: resp.Highlighted,
		Result:      resp.Result,
	})
}

// Examples lists the example submissions shown on the form
//
//	@Summary	List example submissions
//	@Tags		analysis
//	@Produce	json
//	@Success	200	{array}	models.CodeSubmission
//	@Router		/examples [get]
func (h *AnalyzeHandler) Examples(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.Examples)
}

// Model returns the model every request is sent to
//
//	@Summary	Show the selected model
//	@Tags		analysis
//	@Produce	json
//	@Success	200	{object}	completion.ModelHandle
//	@Router		/model [get]
func (h *AnalyzeHandler) Model(c *gin.Context) {
	if h.model.Name == "" {
		middleware.NotFound(c, "no model selected")
		return
	}
	c.JSON(http.StatusOK, h.model)
}
