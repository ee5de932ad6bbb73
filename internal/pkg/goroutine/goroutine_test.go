package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestGoAndWait(t *testing.T) {
	m := NewManager(16)

	var count atomic.Int32
	for range 10 {
		m.Go(context.Background(), func(context.Context) error {
			count.Add(1)
			return nil
		})
	}

	if err := m.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got := count.Load(); got != 10 {
		t.Fatalf("ran %d tasks, want 10", got)
	}
}

func TestWaitCollectsErrors(t *testing.T) {
	m := NewManager(2)

	errBoom := errors.New("boom")
	m.Go(context.Background(), func(context.Context) error { return errBoom })
	m.Go(context.Background(), func(context.Context) error { return nil })

	if err := m.Wait(); !errors.Is(err, errBoom) {
		t.Fatalf("wait = %v, want errBoom", err)
	}
}

func TestGoRecoversPanic(t *testing.T) {
	m := NewManager(1)

	m.Go(context.Background(), func(context.Context) error {
		panic("should not crash the process")
	})

	if err := m.Wait(); err != nil {
		t.Fatalf("wait after panic: %v", err)
	}
}

func TestGoAfterWaitIsNoop(t *testing.T) {
	m := NewManager(1)

	if err := m.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	var ran atomic.Bool
	m.Go(context.Background(), func(context.Context) error {
		ran.Store(true)
		return nil
	})

	if ran.Load() {
		t.Fatal("task must not run after the manager is closed")
	}
}
