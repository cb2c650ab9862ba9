package worker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/domain"
)

var workerNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubMaterializer struct {
	mu      sync.Mutex
	calls   []time.Time
	created int
	err     error
}

func (s *stubMaterializer) MaterializeDue(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, now)
	return s.created, s.err
}

func (s *stubMaterializer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestRunOncePassesClockTime(t *testing.T) {
	m := &stubMaterializer{created: 3}
	w := NewRecurringWorker(RecurringConfig{
		Materializer: m,
		Clock:        domain.FixedClock{At: workerNow},
		Logger:       zerolog.Nop(),
	})

	if got := w.RunOnce(context.Background()); got != 3 {
		t.Fatalf("expected 3 created, got %d", got)
	}
	if len(m.calls) != 1 || !m.calls[0].Equal(workerNow) {
		t.Fatalf("expected one call at %s, got %v", workerNow, m.calls)
	}
}

func TestRunOnceLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	m := &stubMaterializer{err: errors.New("db down")}
	w := NewRecurringWorker(RecurringConfig{
		Materializer: m,
		Clock:        domain.FixedClock{At: workerNow},
		Logger:       zerolog.New(&buf),
	})

	w.RunOnce(context.Background())

	if !strings.Contains(buf.String(), "db down") {
		t.Fatalf("expected error to be logged, got %s", buf.String())
	}
}

func TestStartRunsImmediatelyAndStopsOnCancel(t *testing.T) {
	m := &stubMaterializer{}
	w := NewRecurringWorker(RecurringConfig{
		Materializer: m,
		Interval:     10 * time.Millisecond,
		Logger:       zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	deadline := time.After(2 * time.Second)
	for m.callCount() < 2 {
		select {
		case <-deadline:
			t.Fatalf("worker did not tick, calls=%d", m.callCount())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestNewRecurringWorkerDefaults(t *testing.T) {
	w := NewRecurringWorker(RecurringConfig{Materializer: &stubMaterializer{}})
	if w.interval != time.Hour {
		t.Fatalf("expected default interval of 1h, got %s", w.interval)
	}
	if _, ok := w.clock.(domain.SystemClock); !ok {
		t.Fatalf("expected system clock by default, got %T", w.clock)
	}
}
