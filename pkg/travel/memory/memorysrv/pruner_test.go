package memorysrv

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingForgetter struct {
	calls     atomic.Int32
	retention time.Duration
	err       error
}

func (f *countingForgetter) Forget(ctx context.Context, retention time.Duration) (int, error) {
	f.calls.Add(1)
	f.retention = retention
	return 3, f.err
}

func TestRunOnce(t *testing.T) {
	f := &countingForgetter{}
	p := NewPruner(f, 72*time.Hour, time.Minute)

	assert.True(t, p.Enabled())
	assert.Equal(t, 3, p.RunOnce(context.Background()))
	assert.Equal(t, 72*time.Hour, f.retention)

	f.err = errors.New("backend down")
	assert.Zero(t, p.RunOnce(context.Background()))
}

func TestStartDisabledReturnsImmediately(t *testing.T) {
	f := &countingForgetter{}
	p := NewPruner(f, 0, time.Minute)

	done := make(chan struct{})
	go func() {
		p.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled pruner did not return")
	}
	assert.Zero(t, f.calls.Load())
}

func TestStartStopsOnCancel(t *testing.T) {
	f := &countingForgetter{}
	p := NewPruner(f, time.Hour, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return f.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop")
	}
}
