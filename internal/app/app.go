package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcapi "github.com/shestoi/payment-processor/internal/api/grpc"
	httpapi "github.com/shestoi/payment-processor/internal/api/http"
	"github.com/shestoi/payment-processor/internal/config"
	"github.com/shestoi/payment-processor/internal/gateway/remote"
	"github.com/shestoi/payment-processor/internal/gateway/stub"
	"github.com/shestoi/payment-processor/internal/metrics"
	"github.com/shestoi/payment-processor/internal/service"
	platformhealth "github.com/shestoi/payment-processor/platform/health/grpc"
	platformlogging "github.com/shestoi/payment-processor/platform/logging"
	platformobservability "github.com/shestoi/payment-processor/platform/observability"
	platformshutdown "github.com/shestoi/payment-processor/platform/shutdown"
)

const serviceName = "payment-processor"

// App содержит все зависимости для запуска и корректного shutdown Payment Processor
type App struct {
	logger       *zap.Logger
	grpcServer   *grpc.Server
	grpcListener net.Listener
	httpServer   *http.Server
	httpListener net.Listener
	health       *platformhealth.Health
	shutdownMgr  *platformshutdown.Manager
	wg           sync.WaitGroup
}

// Build создаёт и связывает все зависимости Payment Processor
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: serviceName,
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: logger: %w", op, err)
	}
	cfg.Log(logger)

	otelShutdown, err := platformobservability.Init(context.Background(), platformobservability.Config{
		Enabled:               cfg.OTelEnabled,
		OTLPEndpoint:          cfg.OTelEndpoint,
		SamplingRatio:         cfg.OTelSamplingRatio,
		ServiceName:           serviceName,
		DeploymentEnvironment: string(cfg.AppEnv),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: observability: %w", op, err)
	}

	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)
	// функции выполняются в обратном порядке: health -> http -> grpc -> gateway -> otel
	shutdownMgr.Add("otel", otelShutdown)

	// при ошибке сборки освобождаем всё, что уже зарегистрировано
	fail := func(err error) (*App, error) {
		shutdownMgr.Shutdown()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	gateway, err := buildGateway(cfg, logger, shutdownMgr)
	if err != nil {
		return fail(fmt.Errorf("gateway: %w", err))
	}

	processor := service.NewPaymentProcessor(gateway)
	m := metrics.New()
	health := platformhealth.New(grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fail(fmt.Errorf("listen grpc %s: %w", cfg.GRPCAddr, err))
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(platformobservability.GRPCUnaryServerInterceptor(serviceName, logger)),
	)
	grpcapi.RegisterPaymentProcessorServer(grpcServer, grpcapi.NewHandler(processor, m, logger))
	health.Register(grpcServer)
	// ServiceDesc написан вручную, без file descriptor: reflection перечисляет
	// payment.v1.PaymentProcessor, но describe для него не работает
	if cfg.EnableGRPCReflection {
		reflection.Register(grpcServer)
		logger.Info("gRPC reflection enabled")
	}
	shutdownMgr.Add("grpc_server", platformshutdown.ShutdownGRPCServer(grpcServer))

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = grpcListener.Close()
		return fail(fmt.Errorf("listen http %s: %w", cfg.HTTPAddr, err))
	}
	router := httpapi.NewRouter(httpapi.NewHandler(processor, m, logger), m, health.Serving, logger)
	httpServer := &http.Server{Handler: router}
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))
	shutdownMgr.Add("health_readiness", platformshutdown.SetHealthNotServing(health))

	logger.Info("Payment Processor configured",
		zap.String("grpc_addr", grpcListener.Addr().String()),
		zap.String("http_addr", httpListener.Addr().String()),
		zap.String("gateway_mode", string(cfg.GatewayMode)),
	)

	return &App{
		logger:       logger,
		grpcServer:   grpcServer,
		grpcListener: grpcListener,
		httpServer:   httpServer,
		httpListener: httpListener,
		health:       health,
		shutdownMgr:  shutdownMgr,
	}, nil
}

// buildGateway выбирает платёжного провайдера по GATEWAY_MODE
func buildGateway(cfg config.Config, logger *zap.Logger, shutdownMgr *platformshutdown.Manager) (service.Gateway, error) {
	switch cfg.GatewayMode {
	case config.GatewayRemote:
		conn, err := remote.Dial(cfg.GatewayAddr, serviceName)
		if err != nil {
			return nil, err
		}
		shutdownMgr.Add("gateway_conn", platformshutdown.CloseConn(conn))
		logger.Info("Using remote payment gateway", zap.String("addr", cfg.GatewayAddr))
		return remote.New(conn, cfg.GatewayTimeout), nil
	case config.GatewayStub:
		logger.Info("Using stub payment gateway")
		return stub.New(cfg.StubResult), nil
	default:
		return nil, fmt.Errorf("unsupported gateway mode: %s", cfg.GatewayMode)
	}
}

// GRPCAddr возвращает фактический адрес gRPC listener'а
func (a *App) GRPCAddr() string {
	return a.grpcListener.Addr().String()
}

// HTTPAddr возвращает фактический адрес HTTP listener'а
func (a *App) HTTPAddr() string {
	return a.httpListener.Addr().String()
}

// Run запускает серверы и блокируется до сигнала shutdown или отмены ctx
func (a *App) Run(ctx context.Context) error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting Payment Processor",
		zap.String("grpc_addr", a.GRPCAddr()),
		zap.String("http_addr", a.HTTPAddr()),
	)

	// падение любого сервера запускает shutdown так же, как сигнал
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	serveErrs := make(chan error, 2)

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		if err := a.grpcServer.Serve(a.grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			a.logger.Error("gRPC server error", zap.Error(err))
			serveErrs <- fmt.Errorf("grpc serve: %w", err)
			cancel()
		}
	}()
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.Serve(a.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
			serveErrs <- fmt.Errorf("http serve: %w", err)
			cancel()
		}
	}()

	a.health.SetServing("")

	a.shutdownMgr.Wait(ctx)

	a.wg.Wait()
	a.logger.Info("Payment Processor stopped")

	select {
	case err := <-serveErrs:
		return err
	default:
		return nil
	}
}
