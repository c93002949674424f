package remote

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	providerServiceName      = "payment.v1.PaymentGateway"
	realizePaymentFullMethod = "/" + providerServiceName + "/RealizePayment"
)

// RealizeFunc - любая реализация проведения платежа (совпадает с service.Gateway.RealizePayment)
type RealizeFunc func(ctx context.Context, amount float64) (string, error)

// providerServer - серверная сторона контракта провайдера
type providerServer interface {
	RealizePayment(ctx context.Context, in *wrapperspb.DoubleValue) (*wrapperspb.StringValue, error)
}

type providerHandler struct {
	realize RealizeFunc
}

func (h providerHandler) RealizePayment(ctx context.Context, in *wrapperspb.DoubleValue) (*wrapperspb.StringValue, error) {
	result, err := h.realize(ctx, in.GetValue())
	if err != nil {
		return nil, err
	}
	return wrapperspb.String(result), nil
}

// RegisterProvider публикует realize на gRPC сервере как провайдера payment.v1.PaymentGateway.
// Нужен для локальных стендов и тестов Gateway без настоящего провайдера.
func RegisterProvider(s grpc.ServiceRegistrar, realize RealizeFunc) {
	s.RegisterService(&providerServiceDesc, providerHandler{realize: realize})
}

func realizePaymentHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.DoubleValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(providerServer).RealizePayment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: realizePaymentFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(providerServer).RealizePayment(ctx, req.(*wrapperspb.DoubleValue))
	}
	return interceptor(ctx, in, info, handler)
}

var providerServiceDesc = grpc.ServiceDesc{
	ServiceName: providerServiceName,
	HandlerType: (*providerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RealizePayment",
			Handler:    realizePaymentHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}
