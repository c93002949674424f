package observability

import "time"

// Config конфигурация OpenTelemetry (traces + metrics + propagator)
type Config struct {
	// Enabled включает экспорт в OTLP collector; при false ставятся noop providers
	Enabled bool
	// OTLPEndpoint адрес OTLP gRPC collector, например "127.0.0.1:4317"
	OTLPEndpoint string
	// SamplingRatio доля семплируемых трасс (0..1)
	SamplingRatio float64
	// ServiceName имя сервиса в resource
	ServiceName string
	// DeploymentEnvironment окружение (local, docker)
	DeploymentEnvironment string
	// ServiceVersion опционально, например из build
	ServiceVersion string
	// MetricInterval период выгрузки метрик, по умолчанию 10s
	MetricInterval time.Duration
}
