package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// parseGRPCFullMethod splits "/package.Service/Method" into serviceName ("package.Service") and method ("Method").
func parseGRPCFullMethod(fullMethod string) (serviceName, method string) {
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	if fullMethod == "" {
		return "", ""
	}
	idx := strings.LastIndex(fullMethod, "/")
	if idx < 0 {
		return fullMethod, ""
	}
	return fullMethod[:idx], fullMethod[idx+1:]
}

func rpcAttributes(fullMethod string) []attribute.KeyValue {
	rpcService, rpcMethod := parseGRPCFullMethod(fullMethod)
	if rpcService == "" {
		rpcService = fullMethod
	}
	if rpcMethod == "" {
		rpcMethod = fullMethod
	}
	return []attribute.KeyValue{
		attribute.String("rpc.system", "grpc"),
		attribute.String("rpc.service", rpcService),
		attribute.String("rpc.method", rpcMethod),
	}
}

func recordRPCError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if st, ok := status.FromError(err); ok {
		span.SetAttributes(attribute.Int("rpc.grpc.status_code", int(st.Code())))
	}
}

// GRPCUnaryServerInterceptor извлекает trace из metadata, создаёт span на RPC
// и кладёт в контекст logger с trace_id/span_id (достаётся через LoggerFromContext).
// logger может быть nil - тогда контекст не дополняется логгером.
func GRPCUnaryServerInterceptor(serviceName string, logger *zap.Logger) grpc.UnaryServerInterceptor {
	tracer := otel.Tracer(serviceName)
	prop := otel.GetTextMapPropagator()
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		ctx = prop.Extract(ctx, NewMetadataCarrier(md))
		ctx, span := tracer.Start(ctx, info.FullMethod,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(rpcAttributes(info.FullMethod)...),
		)
		defer span.End()

		if logger != nil {
			ctx = withLogger(ctx, L(ctx, logger))
		}

		resp, err := handler(ctx, req)
		if err != nil {
			recordRPCError(span, err)
		}
		return resp, err
	}
}

// GRPCUnaryClientInterceptor создаёт client span и инжектит trace в outgoing metadata.
func GRPCUnaryClientInterceptor(serviceName string) grpc.UnaryClientInterceptor {
	tracer := otel.Tracer(serviceName)
	prop := otel.GetTextMapPropagator()
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx, span := tracer.Start(ctx, method,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(rpcAttributes(method)...),
		)
		defer span.End()

		md, ok := metadata.FromOutgoingContext(ctx)
		if !ok {
			md = metadata.MD{}
		} else {
			md = md.Copy()
		}
		prop.Inject(ctx, NewMetadataCarrier(md))
		ctx = metadata.NewOutgoingContext(ctx, md)

		err := invoker(ctx, method, req, reply, cc, opts...)
		if err != nil {
			recordRPCError(span, err)
		}
		return err
	}
}
