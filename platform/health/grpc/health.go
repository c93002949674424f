package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Health обёртка над стандартным gRPC health service.
// Управляет readiness статусом сервиса.
type Health struct {
	srv *health.Server
}

// New создаёт Health с указанным начальным статусом для всего сервера ("").
func New(initialStatus grpc_health_v1.HealthCheckResponse_ServingStatus) *Health {
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", initialStatus)
	return &Health{srv: healthServer}
}

// Register регистрирует health service на gRPC сервере до Serve.
func (h *Health) Register(grpcSrv grpc.ServiceRegistrar) {
	grpc_health_v1.RegisterHealthServer(grpcSrv, h.srv)
}

// SetServing переводит serviceName ("" - весь сервер) в SERVING.
func (h *Health) SetServing(serviceName string) {
	h.srv.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
}

// SetNotServing переводит serviceName ("" - весь сервер) в NOT_SERVING,
// например в начале graceful shutdown.
func (h *Health) SetNotServing(serviceName string) {
	h.srv.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}

// Serving сообщает, находится ли весь сервер в статусе SERVING.
// Используется HTTP health endpoint'ом как readiness функция.
func (h *Health) Serving() bool {
	resp, err := h.srv.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		return false
	}
	return resp.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING
}
