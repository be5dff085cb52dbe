package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DBへの疎通確認
type Pinger interface {
	Ping(ctx context.Context) error
}

// イベント発行先の状態
type HealthReporter interface {
	IsHealthy() bool
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Publisher string `json:"publisher"`
}

type HealthHandler struct {
	db        Pinger
	publisher HealthReporter
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewHealthHandler(db Pinger, publisher HealthReporter, m *metrics.Metrics, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, publisher: publisher, metrics: m, log: log}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.health)
	e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))
}

// DBが落ちていれば503。publisherの状態は参考情報
func (h *HealthHandler) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	res := HealthResponse{Status: "ok", Database: "up", Publisher: "up"}
	if !h.publisher.IsHealthy() {
		res.Publisher = "down"
	}

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("health check: database unreachable", zap.Error(err))
		res.Status = "unavailable"
		res.Database = "down"
		return c.JSON(http.StatusServiceUnavailable, res)
	}
	return c.JSON(http.StatusOK, res)
}
