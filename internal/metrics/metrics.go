package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	platformobservability "github.com/shestoi/payment-processor/platform/observability"
)

// Исходы обработки платежа (label outcome)
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeGatewayError    = "gateway_error"
)

// Транспорты, через которые пришёл запрос (label transport)
const (
	TransportGRPC = "grpc"
	TransportHTTP = "http"
)

const meterName = "github.com/shestoi/payment-processor/internal/metrics"

// Metrics - Prometheus метрики сервиса на собственном registry.
// Исходы платежей дублируются в OTel counter, который уходит в OTLP.
type Metrics struct {
	registry        *prometheus.Registry
	payments        *prometheus.CounterVec
	paymentDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	otelPayments    metric.Int64Counter
}

// Option настраивает Metrics
type Option func(*options)

type options struct {
	meterProvider metric.MeterProvider
}

// WithMeterProvider задаёт MeterProvider для OTel счётчика (по умолчанию глобальный)
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// New регистрирует метрики сервиса и стандартные go/process collectors
func New(opts ...Option) *Metrics {
	o := options{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	otelPayments, err := o.meterProvider.Meter(meterName).Int64Counter(
		"payment.requests",
		metric.WithDescription("Payment requests by transport and outcome"),
	)
	if err != nil {
		otel.Handle(err)
		otelPayments = noop.Int64Counter{}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry:     reg,
		otelPayments: otelPayments,
		payments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_requests_total",
				Help: "Total number of payment requests by transport and outcome",
			},
			[]string{"transport", "outcome"},
		),
		paymentDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_request_duration_seconds",
				Help:    "Payment processing duration in seconds, gateway call included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"transport"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// ObservePayment учитывает один обработанный платёж
func (m *Metrics) ObservePayment(transport, outcome string, d time.Duration) {
	m.payments.WithLabelValues(transport, outcome).Inc()
	m.paymentDuration.WithLabelValues(transport).Observe(d.Seconds())
	m.otelPayments.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("transport", transport),
		attribute.String("outcome", outcome),
	))
}

// Handler отдаёт метрики в формате Prometheus exposition
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// HTTPMiddleware считает запросы и их длительность; сам /metrics не учитывается
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &platformobservability.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := NormalizePath(r.URL.Path)
		m.httpRequests.WithLabelValues(r.Method, path, strconv.Itoa(rec.Status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// NormalizePath оставляет только первый сегмент пути, чтобы не раздувать кардинальность
func NormalizePath(p string) string {
	p = strings.TrimPrefix(p, "/")
	if idx := strings.Index(p, "/"); idx >= 0 {
		p = p[:idx]
	}
	if p == "" {
		return "root"
	}
	return p
}
