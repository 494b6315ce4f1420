package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

type failingMedium struct {
	calls int
	err   error
}

func (f *failingMedium) Get(context.Context, string) ([]byte, bool, error) {
	f.calls++
	return nil, false, f.err
}

func (f *failingMedium) Set(context.Context, string, []byte) error {
	f.calls++
	return f.err
}

func TestBreakerPassesThrough(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(NewMemory(), BreakerSettings{Timeout: time.Second}, nil)

	if _, ok, err := b.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want absent without error", ok, err)
	}
	if err := b.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := b.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("Get(k) = %q, %v, %v", v, ok, err)
	}
	if b.State() != gobreaker.StateClosed {
		t.Fatalf("state = %v, want closed", b.State())
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	inner := &failingMedium{err: boom}
	b := NewBreaker(inner, BreakerSettings{MaxFailures: 2, Timeout: time.Minute}, nil)

	for i := 0; i < 2; i++ {
		if err := b.Set(ctx, "k", nil); !errors.Is(err, boom) {
			t.Fatalf("Set #%d error = %v, want %v", i, err, boom)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", b.State())
	}
	if err := b.Set(ctx, "k", nil); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("Set on open breaker error = %v, want ErrOpenState", err)
	}
	if inner.calls != 2 {
		t.Fatalf("inner medium called %d times, want 2", inner.calls)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	var m Memory
	buf := []byte("abc")
	if err := m.Set(ctx, "k", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'x'
	got, _, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored value changed with caller buffer: %q", got)
	}
	if _, ok, _ := m.Get(ctx, "missing"); ok {
		t.Fatal("absent key reported present")
	}
}
