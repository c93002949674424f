package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_WaitRunsFunctionsInReverseOrder(t *testing.T) {
	m := New(time.Second, zap.NewNop())

	var order []string
	m.Add("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	m.Add("failing", func(context.Context) error {
		order = append(order, "failing")
		return errors.New("boom")
	})
	m.Add("last", func(context.Context) error {
		order = append(order, "last")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.Wait(ctx)

	require.Equal(t, []string{"last", "failing", "first"}, order)
}

func TestManager_FunctionGetsTimeout(t *testing.T) {
	m := New(20*time.Millisecond, zap.NewNop())

	var gotErr error
	m.Add("slow", func(ctx context.Context) error {
		<-ctx.Done()
		gotErr = ctx.Err()
		return gotErr
	})
	m.Shutdown()

	require.ErrorIs(t, gotErr, context.DeadlineExceeded)
}

type fakeGRPCServer struct {
	block   chan struct{}
	stopped bool
}

func (s *fakeGRPCServer) GracefulStop() { <-s.block }
func (s *fakeGRPCServer) Stop() {
	s.stopped = true
	close(s.block)
}

func TestShutdownGRPCServer_ForcesStopOnTimeout(t *testing.T) {
	srv := &fakeGRPCServer{block: make(chan struct{})}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := ShutdownGRPCServer(srv)(ctx)
	require.Error(t, err)
	require.True(t, srv.stopped)
}
