package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TraceFields возвращает zap-поля trace_id и span_id из контекста, если span есть.
func TraceFields(ctx context.Context) []zap.Field {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}

// L возвращает logger с добавленными trace_id/span_id из ctx, если они есть.
func L(ctx context.Context, base *zap.Logger) *zap.Logger {
	fields := TraceFields(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

type ctxKeyLogger struct{}

func withLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger{}, log)
}

// LoggerFromContext возвращает logger, положенный middleware/interceptor'ом, иначе fallback.
func LoggerFromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(ctxKeyLogger{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return fallback
}
