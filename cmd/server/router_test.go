package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/codelens/api/internal/analysis"
	"github.com/codelens/api/internal/completion"
	"github.com/codelens/api/internal/config"
	"github.com/codelens/api/internal/highlight"
	"github.com/codelens/api/internal/models"
	"github.com/codelens/api/internal/quality"
	"github.com/codelens/api/internal/telemetry"
)

type idleCompleter struct{}

func (idleCompleter) Complete(context.Context, string) models.Outcome { return models.Outcome{} }

func TestNewRouter_LogsStartupPhases(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	cfg := config.Load(config.New())
	registry := prometheus.NewRegistry()
	highlighter := highlight.New(cfg.HighlightStyle)
	dispatcher := analysis.NewDispatcher(highlighter, quality.NewCalculator(logger), idleCompleter{}, logger)
	model := completion.ModelHandle{Name: "models/text-bison-001"}
	lister := staticLister{{Name: model.Name, SupportedActions: []string{completion.GenerateAction}}}

	router, err := newRouter(cfg, logger, registry, telemetry.NewMetrics(registry), dispatcher, highlighter, lister, model)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("Router initialized, setting up handlers...").Len())
	registered := logs.FilterMessage("handlers registered").All()
	require.Len(t, registered, 1)
	assert.Equal(t, int64(len(router.Routes())), registered[0].ContextMap()["routes"])

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/model", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), model.Name)
}
