// Package metrics instrumentación Prometheus: métricas HTTP y de ventas sobre un registry propio.
//
//	app.Use(m.Middleware())
//	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "gestion"

// Metrics agrupa los colectores y su registry.
type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	RequestInFlight prometheus.Gauge

	SalesTotal    prometheus.Counter
	SalesAmount   prometheus.Counter
	SaleLines     prometheus.Histogram
	SalesRejected *prometheus.CounterVec
}

// New crea y registra los colectores, más los de runtime de Go y del proceso.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		SalesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "registered_total",
			Help:      "Sales registered successfully.",
		}),
		SalesAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "amount_total",
			Help:      "Sum of registered sale totals.",
		}),
		SaleLines: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "lines",
			Help:      "Number of lines per registered sale.",
			Buckets:   []float64{1, 2, 3, 5, 10, 20},
		}),
		SalesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "rejected_total",
			Help:      "Sale attempts rejected, by reason.",
		}, []string{"reason"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.RequestInFlight,
		m.SalesTotal,
		m.SalesAmount,
		m.SaleLines,
		m.SalesRejected,
	)
	return m
}

// SaleRegistered implementa sales.Recorder.
func (m *Metrics) SaleRegistered(total decimal.Decimal, lines int) {
	m.SalesTotal.Inc()
	m.SalesAmount.Add(total.InexactFloat64())
	m.SaleLines.Observe(float64(lines))
}

// SaleRejected implementa sales.Recorder.
func (m *Metrics) SaleRejected(reason string) {
	m.SalesRejected.WithLabelValues(reason).Inc()
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Middleware Fiber que registra duración, total y requests en curso.
// Se etiqueta con la ruta registrada (/api/sales/:id), no con el path crudo.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.RequestInFlight.Inc()
		defer m.RequestInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		labels := []string{c.Method(), route, strconv.Itoa(status)}
		m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.RequestTotal.WithLabelValues(labels...).Inc()
		return err
	}
}
