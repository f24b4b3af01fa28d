// Package metrics exposes Prometheus collectors for HTTP traffic and sales.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "celltech"

// Metrics owns a private registry so tests and multiple servers never collide.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec

	SalesRecordedTotal prometheus.Counter
	UnitsSoldTotal     prometheus.Counter
	RevenueTotal       prometheus.Counter
	SaleFailuresTotal  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"handler", "method", "status_code"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"handler", "method", "status_code"},
		),
		SalesRecordedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Total number of sales recorded",
		}),
		UnitsSoldTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_sold_total",
			Help:      "Total number of units sold",
		}),
		RevenueTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Sum of recorded sale amounts",
		}),
		SaleFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sale_failures_total",
				Help:      "Total number of rejected or failed sales",
			},
			[]string{"reason"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records latency and count per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestDuration.WithLabelValues(handler, c.Request.Method, status).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(handler, c.Request.Method, status).Inc()
	}
}

// RecordSale counts a committed sale.
func (m *Metrics) RecordSale(quantity int64, amount decimal.Decimal) {
	m.SalesRecordedTotal.Inc()
	m.UnitsSoldTotal.Add(float64(quantity))
	m.RevenueTotal.Add(amount.InexactFloat64())
}

// RecordSaleFailure counts a sale that did not commit.
func (m *Metrics) RecordSaleFailure(reason string) {
	m.SaleFailuresTotal.WithLabelValues(reason).Inc()
}
