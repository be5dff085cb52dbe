package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/metrics"
	"github.com/gimhantharuke456/sachi-itpm/internal/middleware"
	"github.com/gimhantharuke456/sachi-itpm/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Server wraps the echo instance with its listen address.
type Server struct {
	echo *echo.Echo
	addr string
	log  *zap.Logger
}

// echoの共通設定（ミドルウェア・validator）
func NewEcho(cfg config.Config, m *metrics.Metrics, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.Correlation())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics(m))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: allowOrigins(cfg.FEURL),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
	}))

	return e
}

// FE_URLはカンマ区切りで複数可
func allowOrigins(feURL string) []string {
	var out []string
	for _, o := range strings.Split(feURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func New(cfg config.Config, e *echo.Echo, log *zap.Logger) *Server {
	addr := cfg.Port
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}
	return &Server{echo: e, addr: addr, log: log}
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.log.Info("http server listening", zap.String("addr", s.addr))
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
