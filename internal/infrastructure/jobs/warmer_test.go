package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestWarmer_RefreshesOnStart(t *testing.T) {
	target := &countingRefresher{}
	w := NewWarmer(target, "@every 1h", zerolog.Nop())
	if err := w.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer w.Stop(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for target.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected an initial refresh")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWarmer_InvalidSchedule(t *testing.T) {
	w := NewWarmer(&countingRefresher{}, "every now and then", zerolog.Nop())
	if err := w.Start(); err == nil {
		t.Fatalf("expected error for invalid schedule")
	}
}

func TestWarmer_RunSurvivesFailure(t *testing.T) {
	target := &countingRefresher{err: errors.New("upstream down")}
	w := NewWarmer(target, "", zerolog.Nop())

	w.run()
	w.run()
	if n := target.calls.Load(); n != 2 {
		t.Fatalf("expected two refresh attempts, got %d", n)
	}
	if w.schedule != DefaultWarmSchedule {
		t.Fatalf("expected default schedule, got %q", w.schedule)
	}
}
