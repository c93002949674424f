package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_LocalDefaults(t *testing.T) {
	os.Clearenv()
	t.Setenv("APP_ENV", "local")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvLocal, cfg.AppEnv)
	require.Equal(t, "127.0.0.1:50052", cfg.GRPCAddr)
	require.Equal(t, "127.0.0.1:8082", cfg.HTTPAddr)
	require.False(t, cfg.EnableGRPCReflection)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, GatewayStub, cfg.GatewayMode)
	require.Equal(t, "127.0.0.1:50060", cfg.GatewayAddr)
	require.Equal(t, 3*time.Second, cfg.GatewayTimeout)
	require.False(t, cfg.OTelEnabled)
	require.Equal(t, 1.0, cfg.OTelSamplingRatio)
}

func TestLoad_DockerDefaults(t *testing.T) {
	os.Clearenv()
	t.Setenv("APP_ENV", "docker")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvDocker, cfg.AppEnv)
	require.Equal(t, "0.0.0.0:50052", cfg.GRPCAddr)
	require.Equal(t, "0.0.0.0:8082", cfg.HTTPAddr)
	require.Equal(t, "payment-gateway:50060", cfg.GatewayAddr)
	require.Equal(t, "otel-collector:4317", cfg.OTelEndpoint)
}

func TestLoad_Overrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("GRPC_ADDR", "127.0.0.1:6000")
	t.Setenv("GATEWAY_MODE", "remote")
	t.Setenv("GATEWAY_ADDR", "provider:7000")
	t.Setenv("GATEWAY_TIMEOUT", "750ms")
	t.Setenv("SHUTDOWN_TIMEOUT", "10s")
	t.Setenv("ENABLE_GRPC_REFLECTION", "true")
	t.Setenv("STUB_RESULT", "ok")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvLocal, cfg.AppEnv)
	require.Equal(t, "127.0.0.1:6000", cfg.GRPCAddr)
	require.Equal(t, GatewayRemote, cfg.GatewayMode)
	require.Equal(t, "provider:7000", cfg.GatewayAddr)
	require.Equal(t, 750*time.Millisecond, cfg.GatewayTimeout)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.True(t, cfg.EnableGRPCReflection)
	require.Equal(t, "ok", cfg.StubResult)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown env", key: "APP_ENV", value: "prod"},
		{name: "unknown gateway mode", key: "GATEWAY_MODE", value: "paypal"},
		{name: "bad shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "soon"},
		{name: "zero shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "0s"},
		{name: "sampling ratio above one", key: "OTEL_SAMPLING_RATIO", value: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
