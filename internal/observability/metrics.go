// Package observability provides Prometheus metrics and instrumented HTTP
// clients for outbound collaborator calls.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	OrdersCreated  *prometheus.CounterVec
	PaymentsMarked prometheus.Counter
	CallbacksTotal *prometheus.CounterVec
	NotifyFailures *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saloncart",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "saloncart",
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saloncart",
			Name:      "orders_created_total",
			Help:      "Orders created, labelled by initial status.",
		}, []string{"status"}),
		PaymentsMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "saloncart",
			Name:      "payments_confirmed_total",
			Help:      "Orders transitioned to paid by a verified callback.",
		}),
		CallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saloncart",
			Name:      "gateway_callbacks_total",
			Help:      "Payment gateway callbacks received, by outcome.",
		}, []string{"outcome"}),
		NotifyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saloncart",
			Name:      "notification_failures_total",
			Help:      "Best-effort notification hook failures, by hook.",
		}, []string{"hook"}),
	}

	registry.MustRegister(
		m.HTTPRequests, m.HTTPDuration,
		m.OrdersCreated, m.PaymentsMarked, m.CallbacksTotal, m.NotifyFailures,
	)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
