package middleware

import (
	"strconv"
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// routeラベルはc.Path()（/admin/orders/:id）を使い、idごとに系列が増えないようにする
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				//ステータスを確定させる（上位のエラーハンドラはcommitted済みなら何もしない）
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.HTTPRequests.WithLabelValues(method, route, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
