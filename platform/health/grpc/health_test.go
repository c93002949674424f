package grpc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func TestHealth_Transitions(t *testing.T) {
	h := New(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	require.False(t, h.Serving())

	h.SetServing("")
	require.True(t, h.Serving())

	h.SetNotServing("")
	require.False(t, h.Serving())
}
