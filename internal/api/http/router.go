package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shestoi/payment-processor/internal/api/http/middleware"
	"github.com/shestoi/payment-processor/internal/metrics"
	platformhealth "github.com/shestoi/payment-processor/platform/health/http"
	platformobservability "github.com/shestoi/payment-processor/platform/observability"
)

// NewRouter создаёт HTTP роутер Payment Processor.
// readiness - функция готовности для /health (nil - всегда готов).
func NewRouter(handler *Handler, m *metrics.Metrics, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.Recoverer)
	router.Use(platformobservability.HTTPMiddleware("payment-processor", logger))
	router.Use(m.HTTPMiddleware)

	router.Route("/payments", func(r chi.Router) {
		r.Use(middleware.WithRequestID)
		r.Post("/", handler.PostPayments)
	})

	router.Get("/health", platformhealth.Handler(readiness))
	router.Method(http.MethodGet, "/metrics", m.Handler())

	return router
}
