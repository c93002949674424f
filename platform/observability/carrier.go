package observability

import (
	"go.opentelemetry.io/otel/propagation"
	"google.golang.org/grpc/metadata"
)

var _ propagation.TextMapCarrier = MetadataCarrier{}

// MetadataCarrier позволяет propagator'у читать и писать trace context
// в gRPC metadata. Работает как с incoming, так и с outgoing metadata.
type MetadataCarrier metadata.MD

// NewMetadataCarrier оборачивает md; nil заменяется пустой metadata,
// чтобы Set не паниковал на Inject
func NewMetadataCarrier(md metadata.MD) MetadataCarrier {
	if md == nil {
		md = metadata.MD{}
	}
	return MetadataCarrier(md)
}

// Get отдаёт первое значение ключа. metadata.MD сама приводит ключ к lowercase,
// поэтому "Traceparent" и "traceparent" равнозначны
func (c MetadataCarrier) Get(key string) string {
	if vals := metadata.MD(c).Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Set заменяет все значения ключа одним value
func (c MetadataCarrier) Set(key, value string) {
	metadata.MD(c).Set(key, value)
}

// Keys перечисляет ключи metadata; propagator'ам TraceContext и Baggage
// они не нужны, но входят в интерфейс carrier'а
func (c MetadataCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
