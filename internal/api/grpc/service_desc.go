package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ServiceName - полное имя gRPC сервиса процессора
	ServiceName = "payment.v1.PaymentProcessor"

	processPaymentFullMethod = "/" + ServiceName + "/ProcessPayment"
)

// PaymentProcessorServer - серверный контракт payment.v1.PaymentProcessor.
// Сообщения - well-known wrapper типы: сумма DoubleValue, результат StringValue.
type PaymentProcessorServer interface {
	ProcessPayment(ctx context.Context, in *wrapperspb.DoubleValue) (*wrapperspb.StringValue, error)
}

// RegisterPaymentProcessorServer регистрирует srv на gRPC сервере
func RegisterPaymentProcessorServer(s grpc.ServiceRegistrar, srv PaymentProcessorServer) {
	s.RegisterService(&paymentProcessorServiceDesc, srv)
}

// PaymentProcessorClient - клиент payment.v1.PaymentProcessor
type PaymentProcessorClient struct {
	cc grpc.ClientConnInterface
}

// NewPaymentProcessorClient создаёт клиента поверх соединения
func NewPaymentProcessorClient(cc grpc.ClientConnInterface) *PaymentProcessorClient {
	return &PaymentProcessorClient{cc: cc}
}

// ProcessPayment вызывает payment.v1.PaymentProcessor/ProcessPayment
func (c *PaymentProcessorClient) ProcessPayment(ctx context.Context, in *wrapperspb.DoubleValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, processPaymentFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func processPaymentHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.DoubleValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PaymentProcessorServer).ProcessPayment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: processPaymentFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PaymentProcessorServer).ProcessPayment(ctx, req.(*wrapperspb.DoubleValue))
	}
	return interceptor(ctx, in, info, handler)
}

var paymentProcessorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PaymentProcessorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ProcessPayment",
			Handler:    processPaymentHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}
