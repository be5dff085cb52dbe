package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SourceAdmin    = "admin"
	SourceCheckout = "checkout"
)

// Metrics holds every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	OrdersCreated       *prometheus.CounterVec
	CouponsApplied      *prometheus.CounterVec
	PointsRedeemed      prometheus.Counter
}

// テストごとに独立したregistryを使えるようにグローバルは使わない
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders created, by source (admin or checkout).",
		}, []string{"source"}),
		CouponsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coupons_applied_total",
			Help: "Coupon codes applied to placed orders.",
		}, []string{"code"}),
		PointsRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "points_redeemed_total",
			Help: "Loyalty points redeemed at checkout.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.OrdersCreated,
		m.CouponsApplied,
		m.PointsRedeemed,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// /metrics用
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// nilでも呼べる（テストでMetricsを渡さない場合）
func (m *Metrics) OrderCreated(source string) {
	if m == nil {
		return
	}
	m.OrdersCreated.WithLabelValues(source).Inc()
}

func (m *Metrics) CouponApplied(code string) {
	if m == nil || code == "" {
		return
	}
	m.CouponsApplied.WithLabelValues(code).Inc()
}

func (m *Metrics) PointsRedeemedAdd(points int64) {
	if m == nil || points <= 0 {
		return
	}
	m.PointsRedeemed.Add(float64(points))
}
