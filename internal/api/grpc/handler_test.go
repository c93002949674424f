package grpcapi

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/shestoi/payment-processor/internal/metrics"
	"github.com/shestoi/payment-processor/internal/service"
	"github.com/shestoi/payment-processor/internal/service/mocks"
	platformobservability "github.com/shestoi/payment-processor/platform/observability"
)

// newTestClient поднимает in-process gRPC сервер с handler'ом поверх gateway
func newTestClient(t *testing.T, gateway service.Gateway) *PaymentProcessorClient {
	t.Helper()

	logger := zap.NewNop()
	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(platformobservability.GRPCUnaryServerInterceptor("payment-test", logger)),
	)
	RegisterPaymentProcessorServer(srv, NewHandler(service.NewPaymentProcessor(gateway), metrics.New(), logger))
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewPaymentProcessorClient(conn)
}

func TestHandler_ProcessPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns gateway result", func(t *testing.T) {
		mockGateway := mocks.NewGateway(t)
		mockGateway.On("RealizePayment", mock.Anything, 100.0).Return("Payment completed successfully", nil).Once()
		client := newTestClient(t, mockGateway)

		resp, err := client.ProcessPayment(ctx, wrapperspb.Double(100.0))

		require.NoError(t, err)
		require.Equal(t, "Payment completed successfully", resp.GetValue())
	})

	t.Run("non-positive amount is InvalidArgument, gateway not called", func(t *testing.T) {
		mockGateway := mocks.NewGateway(t)
		client := newTestClient(t, mockGateway)

		for _, amount := range []float64{0, -10} {
			_, err := client.ProcessPayment(ctx, wrapperspb.Double(amount))

			require.Error(t, err)
			st, ok := status.FromError(err)
			require.True(t, ok)
			require.Equal(t, codes.InvalidArgument, st.Code())
			require.Equal(t, "Invalid value", st.Message())
		}
		mockGateway.AssertNotCalled(t, "RealizePayment", mock.Anything, mock.Anything)
	})

	t.Run("empty request means zero amount", func(t *testing.T) {
		mockGateway := mocks.NewGateway(t)
		client := newTestClient(t, mockGateway)

		_, err := client.ProcessPayment(ctx, &wrapperspb.DoubleValue{})

		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("gateway status error keeps its code", func(t *testing.T) {
		mockGateway := mocks.NewGateway(t)
		mockGateway.On("RealizePayment", mock.Anything, 20.0).
			Return("", status.Error(codes.ResourceExhausted, "limit reached")).Once()
		client := newTestClient(t, mockGateway)

		_, err := client.ProcessPayment(ctx, wrapperspb.Double(20.0))

		st, ok := status.FromError(err)
		require.True(t, ok)
		require.Equal(t, codes.ResourceExhausted, st.Code())
		require.Equal(t, "limit reached", st.Message())
	})

	t.Run("plain gateway error becomes Unknown with the same message", func(t *testing.T) {
		mockGateway := mocks.NewGateway(t)
		mockGateway.On("RealizePayment", mock.Anything, 30.0).Return("", errors.New("card declined")).Once()
		client := newTestClient(t, mockGateway)

		_, err := client.ProcessPayment(ctx, wrapperspb.Double(30.0))

		st, ok := status.FromError(err)
		require.True(t, ok)
		require.Equal(t, codes.Unknown, st.Code())
		require.Equal(t, "card declined", st.Message())
	})
}

func TestToStatus(t *testing.T) {
	require.Equal(t, codes.InvalidArgument, toStatus(&service.InvalidArgumentError{Message: "Invalid value"}).Code())
	require.Equal(t, codes.DeadlineExceeded, toStatus(context.DeadlineExceeded).Code())
	require.Equal(t, codes.Canceled, toStatus(context.Canceled).Code())
	require.Equal(t, codes.Unavailable, toStatus(status.Error(codes.Unavailable, "down")).Code())
	require.Equal(t, codes.Unknown, toStatus(errors.New("boom")).Code())
}
