package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/payment-processor/internal/api/http/middleware"
	"github.com/shestoi/payment-processor/internal/metrics"
	"github.com/shestoi/payment-processor/internal/service"
	platformobservability "github.com/shestoi/payment-processor/platform/observability"
)

// Handler содержит HTTP-обработчики Payment Processor
type Handler struct {
	processor *service.PaymentProcessor
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(processor *service.PaymentProcessor, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		processor: processor,
		metrics:   m,
		logger:    logger,
	}
}

// PaymentRequest - тело POST /payments
type PaymentRequest struct {
	Amount *float64 `json:"amount"`
}

// PaymentResponse - успешный ответ POST /payments
type PaymentResponse struct {
	Result string `json:"result"`
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// PostPayments обрабатывает POST /payments - проведение платежа
func (h *Handler) PostPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := platformobservability.LoggerFromContext(ctx, h.logger).With(
		zap.String("request_id", middleware.RequestIDFromContext(ctx)),
	)

	var req PaymentRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		logger.Warn("JSON decode error", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	// тело должно содержать ровно один JSON-объект
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		logger.Warn("Trailing data after JSON body")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: unexpected data after body"})
		return
	}
	if req.Amount == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "amount is required"})
		return
	}

	amount := *req.Amount
	start := time.Now()
	result, err := h.processor.ProcessPayment(ctx, amount)
	if err != nil {
		if service.IsInvalidArgument(err) {
			h.metrics.ObservePayment(metrics.TransportHTTP, metrics.OutcomeInvalidArgument, time.Since(start))
			logger.Info("Payment rejected", zap.Float64("amount", amount), zap.Error(err))
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		h.metrics.ObservePayment(metrics.TransportHTTP, metrics.OutcomeGatewayError, time.Since(start))
		logger.Error("Payment gateway error", zap.Float64("amount", amount), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	h.metrics.ObservePayment(metrics.TransportHTTP, metrics.OutcomeSuccess, time.Since(start))
	logger.Info("Payment processed", zap.Float64("amount", amount), zap.String("result", result))
	writeJSON(w, http.StatusOK, PaymentResponse{Result: result})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
