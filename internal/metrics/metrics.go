// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posbuddy_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "posbuddy_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	Ventas = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posbuddy_ventas_total",
		Help: "Completed sales by payment method.",
	}, []string{"metodo"})

	VentasImporte = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posbuddy_ventas_importe_total",
		Help: "Sum of completed sale totals by payment method.",
	}, []string{"metodo"})

	CobrosRechazados = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posbuddy_cobros_rechazados_total",
		Help: "Checkouts that did not produce a sale, by reason.",
	}, []string{"motivo"})

	Jobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posbuddy_jobs_total",
		Help: "Background jobs processed by queue and result (ok, retry, dlq).",
	}, []string{"queue", "result"})

	DLQPendientes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "posbuddy_dlq_pendientes",
		Help: "Entries waiting in each dead letter queue.",
	}, []string{"queue"})
)

// RegistrarVenta records a committed sale.
func RegistrarVenta(metodo string, total decimal.Decimal) {
	Ventas.WithLabelValues(metodo).Inc()
	f, _ := total.Float64()
	VentasImporte.WithLabelValues(metodo).Add(f)
}
