package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codelens/api/internal/completion"
	"github.com/codelens/api/internal/version"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	lister completion.ModelLister
	model  completion.ModelHandle
}

// NewHealthHandler creates a new health handler. lister may be nil when no
// remote service is configured.
func NewHealthHandler(lister completion.ModelLister, model completion.ModelHandle) *HealthHandler {
	return &HealthHandler{
		lister: lister,
		model:  model,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Model        string            `json:"model,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Health returns basic health status
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: version.Service,
		Version: version.Version,
		Model:   h.model.Name,
	})
}

// DeepHealth returns health status with a check of the text-generation service
//
//	@Summary	Dependency check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/health/deep [get]
func (h *HealthHandler) DeepHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	deps := make(map[string]string)
	allHealthy := true

	if h.lister != nil {
		if err := h.checkModelService(ctx); err != nil {
			deps["ai_service"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			deps["ai_service"] = "healthy"
		}
	} else {
		deps["ai_service"] = "not configured"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthResponse{
		Status:       status,
		Service:      version.Service,
		Version:      version.Version,
		Model:        h.model.Name,
		Dependencies: deps,
	})
}

func (h *HealthHandler) checkModelService(ctx context.Context) error {
	_, err := h.lister.ListModels(ctx)
	return err
}
