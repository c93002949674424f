package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseGRPCFullMethod(t *testing.T) {
	tests := []struct {
		in      string
		service string
		method  string
	}{
		{in: "/payment.v1.PaymentProcessor/ProcessPayment", service: "payment.v1.PaymentProcessor", method: "ProcessPayment"},
		{in: "payment.v1.PaymentProcessor/ProcessPayment", service: "payment.v1.PaymentProcessor", method: "ProcessPayment"},
		{in: "/NoMethod", service: "NoMethod", method: ""},
		{in: "", service: "", method: ""},
	}
	for _, tt := range tests {
		service, method := parseGRPCFullMethod(tt.in)
		require.Equal(t, tt.service, service, tt.in)
		require.Equal(t, tt.method, method, tt.in)
	}
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInit_EnabledWithoutEndpoint(t *testing.T) {
	_, err := Init(context.Background(), Config{Enabled: true})
	require.Error(t, err)
}

func TestLoggerFromContext_Fallback(t *testing.T) {
	fallback := zap.NewNop()
	require.Same(t, fallback, LoggerFromContext(context.Background(), fallback))
	require.Empty(t, TraceFields(context.Background()))
}

func TestHTTPMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	handler := HTTPMiddleware("payment-test", base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		LoggerFromContext(r.Context(), zap.NewNop()).Info("inside")
		w.WriteHeader(http.StatusBadGateway)
	}))

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "HTTP POST /payments", spans[0].Name())
	require.Equal(t, codes.Error, spans[0].Status().Code)

	entries := logs.FilterMessage("inside").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, spans[0].SpanContext().TraceID().String(), fields["trace_id"])
}
