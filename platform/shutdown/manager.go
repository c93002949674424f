package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Manager управляет graceful shutdown сервиса.
// Ждёт SIGINT/SIGTERM (или отмены контекста) и выполняет зарегистрированные функции
// в обратном порядке регистрации, каждую со своим таймаутом.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger
	funcs   []shutdownFunc
	mu      sync.Mutex
}

type shutdownFunc struct {
	name string
	fn   func(context.Context) error
}

// New создаёт Manager с таймаутом на каждую shutdown функцию
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		timeout: timeout,
		logger:  logger,
		funcs:   make([]shutdownFunc, 0),
	}
}

// Add регистрирует shutdown функцию под именем name
func (m *Manager) Add(name string, fn func(context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = append(m.funcs, shutdownFunc{name: name, fn: fn})
}

// Wait блокируется до SIGINT/SIGTERM или отмены ctx, затем выполняет Shutdown.
func (m *Manager) Wait(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	m.logger.Info("Received shutdown signal, starting graceful shutdown")
	m.Shutdown()
}

// Shutdown выполняет все зарегистрированные функции, последние - первыми.
// Ошибка одной функции не останавливает остальные.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	funcs := make([]shutdownFunc, len(m.funcs))
	copy(funcs, m.funcs)
	m.mu.Unlock()

	for i := len(funcs) - 1; i >= 0; i-- {
		fn := funcs[i]
		m.logger.Info("Executing shutdown function", zap.String("name", fn.name))

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		start := time.Now()
		err := fn.fn(ctx)
		cancel()

		duration := time.Since(start)
		if err != nil {
			m.logger.Error("Shutdown function failed",
				zap.String("name", fn.name),
				zap.Error(err),
				zap.Duration("duration", duration))
		} else {
			m.logger.Info("Shutdown function completed",
				zap.String("name", fn.name),
				zap.Duration("duration", duration))
		}
	}

	m.logger.Info("Graceful shutdown completed")
}

// ShutdownHTTPServer возвращает shutdown функцию для http.Server
func ShutdownHTTPServer(srv interface {
	Shutdown(context.Context) error
}) func(context.Context) error {
	return func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	}
}

// ShutdownGRPCServer возвращает shutdown функцию для gRPC сервера.
// GracefulStop с таймаутом, по истечении - Stop().
func ShutdownGRPCServer(srv interface {
	GracefulStop()
	Stop()
}) func(context.Context) error {
	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()

		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return fmt.Errorf("graceful stop timeout exceeded, forced stop")
		}
	}
}

// CloseConn возвращает shutdown функцию для клиентского соединения (например gRPC к провайдеру)
func CloseConn(conn interface {
	Close() error
}) func(context.Context) error {
	return func(ctx context.Context) error {
		return conn.Close()
	}
}

// SetHealthNotServing возвращает shutdown функцию для установки health в NOT_SERVING
func SetHealthNotServing(health interface {
	SetNotServing(string)
}) func(context.Context) error {
	return func(ctx context.Context) error {
		health.SetNotServing("")
		return nil
	}
}
