package grpcapi

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/shestoi/payment-processor/internal/metrics"
	"github.com/shestoi/payment-processor/internal/service"
	platformobservability "github.com/shestoi/payment-processor/platform/observability"
)

// Handler содержит gRPC-обработчики Payment Processor.
// Тонкий слой: protobuf <-> простые типы, ошибки -> gRPC status.
type Handler struct {
	processor *service.PaymentProcessor
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewHandler создаёт новый gRPC handler
func NewHandler(processor *service.PaymentProcessor, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		processor: processor,
		metrics:   m,
		logger:    logger,
	}
}

// ProcessPayment обрабатывает gRPC запрос ProcessPayment
func (h *Handler) ProcessPayment(ctx context.Context, req *wrapperspb.DoubleValue) (*wrapperspb.StringValue, error) {
	logger := platformobservability.LoggerFromContext(ctx, h.logger)
	amount := req.GetValue()
	start := time.Now()

	result, err := h.processor.ProcessPayment(ctx, amount)
	if err != nil {
		st := toStatus(err)
		outcome := metrics.OutcomeGatewayError
		if service.IsInvalidArgument(err) {
			outcome = metrics.OutcomeInvalidArgument
		}
		h.metrics.ObservePayment(metrics.TransportGRPC, outcome, time.Since(start))
		logger.Warn("ProcessPayment failed",
			zap.Float64("amount", amount),
			zap.String("code", st.Code().String()),
			zap.Error(err),
		)
		return nil, st.Err()
	}

	h.metrics.ObservePayment(metrics.TransportGRPC, metrics.OutcomeSuccess, time.Since(start))
	logger.Info("Payment processed", zap.Float64("amount", amount), zap.String("result", result))
	return wrapperspb.String(result), nil
}

// toStatus переводит ошибку процессора в gRPC status.
// Status ошибки провайдера отдаются как есть, остальное - Unknown с исходным текстом.
func toStatus(err error) *status.Status {
	if service.IsInvalidArgument(err) {
		return status.New(codes.InvalidArgument, err.Error())
	}
	if st, ok := status.FromError(err); ok {
		return st
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return status.FromContextError(err)
	}
	return status.New(codes.Unknown, err.Error())
}
