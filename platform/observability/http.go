package observability

import (
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// HTTPMiddleware извлекает trace context из заголовков, создаёт span на запрос
// и кладёт в контекст logger с trace_id/span_id.
func HTTPMiddleware(serviceName string, logger *zap.Logger) func(http.Handler) http.Handler {
	tracer := otel.Tracer(serviceName)
	prop := otel.GetTextMapPropagator()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			route := r.URL.Path
			if r.URL.RawPath != "" {
				route = r.URL.RawPath
			}
			ctx, span := tracer.Start(ctx, "HTTP "+r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
					attribute.String("http.route", route),
				),
			)
			defer span.End()

			ctx = withLogger(ctx, L(ctx, logger))

			wrapped := &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", wrapped.Status))
			if wrapped.Status >= 400 {
				span.SetStatus(codes.Error, strconv.Itoa(wrapped.Status))
			}
		})
	}
}

// StatusRecorder запоминает статус ответа для span'ов и метрик
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (rw *StatusRecorder) WriteHeader(code int) {
	rw.Status = code
	rw.ResponseWriter.WriteHeader(code)
}
