package remote

import (
	"context"
	"fmt"
	"time"

	platformobservability "github.com/shestoi/payment-processor/platform/observability"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Gateway реализует service.Gateway поверх gRPC вызова внешнего платёжного провайдера.
// Ошибки провайдера (включая gRPC status) возвращаются вызывающему без изменений.
type Gateway struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// New создаёт gateway поверх готового соединения.
// timeout <= 0 означает, что вызов ограничен только контекстом вызывающего.
func New(conn grpc.ClientConnInterface, timeout time.Duration) *Gateway {
	return &Gateway{
		conn:    conn,
		timeout: timeout,
	}
}

// Dial создаёт клиентское соединение к провайдеру с tracing interceptor.
// Соединение ленивое: реальное подключение произойдёт при первом вызове.
func Dial(addr, serviceName string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(platformobservability.GRPCUnaryClientInterceptor(serviceName)),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment gateway client for %s: %w", addr, err)
	}
	return conn, nil
}

// RealizePayment вызывает RealizePayment у провайдера
func (g *Gateway) RealizePayment(ctx context.Context, amount float64) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out := new(wrapperspb.StringValue)
	if err := g.conn.Invoke(ctx, realizePaymentFullMethod, wrapperspb.Double(amount), out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}
