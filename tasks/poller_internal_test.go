package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type scriptedGetter struct {
	script []*Task
	calls  int
	onCall func(call int)
}

func (g *scriptedGetter) Get(ctx context.Context, id uuid.UUID) (*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.calls++
	if g.onCall != nil {
		g.onCall(g.calls)
	}
	i := min(g.calls-1, len(g.script)-1)
	return g.script[i], nil
}

func status(s Status) *Task {
	return &Task{Status: s}
}

func newTestPoller(g Getter, sleeps *int) *Poller {
	p := NewPoller(g, time.Second, nil)
	p.sleep = func(ctx context.Context, d time.Duration) error {
		if d != time.Second {
			return errors.New("unexpected delay")
		}
		*sleeps++
		return ctx.Err()
	}
	return p
}

func TestPoller_Await(t *testing.T) {
	tests := []struct {
		name       string
		script     []*Task
		wantStatus Status
		wantNil    bool
		wantCalls  int
		wantSleeps int
	}{
		{
			name:       "pending pending success",
			script:     []*Task{status(Pending), status(Pending), status(Success)},
			wantStatus: Success,
			wantCalls:  3,
			wantSleeps: 2,
		},
		{
			name:       "immediate failure",
			script:     []*Task{status(Failure)},
			wantStatus: Failure,
			wantCalls:  1,
			wantSleeps: 0,
		},
		{
			name:       "started then success",
			script:     []*Task{status(Started), status(Success)},
			wantStatus: Success,
			wantCalls:  2,
			wantSleeps: 1,
		},
		{
			name:       "unknown state keeps polling",
			script:     []*Task{status("RECEIVED"), status(Failure)},
			wantStatus: Failure,
			wantCalls:  2,
			wantSleeps: 1,
		},
		{
			name:       "not found",
			script:     []*Task{status(Pending), nil},
			wantNil:    true,
			wantCalls:  2,
			wantSleeps: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &scriptedGetter{script: tt.script}
			sleeps := 0
			p := newTestPoller(g, &sleeps)

			task, err := p.Await(context.Background(), uuid.New())
			if err != nil {
				t.Fatalf("Await() error = %v", err)
			}

			if tt.wantNil {
				if task != nil {
					t.Errorf("Await() = %+v, want nil", task)
				}
			} else if task == nil || task.Status != tt.wantStatus {
				t.Errorf("Await() = %+v, want status %s", task, tt.wantStatus)
			}

			if g.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", g.calls, tt.wantCalls)
			}
			if sleeps != tt.wantSleeps {
				t.Errorf("sleeps = %d, want %d", sleeps, tt.wantSleeps)
			}
		})
	}
}

func TestPoller_CancelStopsPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := &scriptedGetter{
		script: []*Task{status(Pending)},
		onCall: func(call int) {
			if call == 2 {
				cancel()
			}
		},
	}
	sleeps := 0
	p := newTestPoller(g, &sleeps)

	task, err := p.Await(ctx, uuid.New())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Await() error = %v, want context.Canceled", err)
	}
	if task != nil {
		t.Errorf("Await() = %+v, want nil", task)
	}
	if g.calls != 2 {
		t.Errorf("calls = %d, want 2", g.calls)
	}
}

func TestPoller_DefaultDelay(t *testing.T) {
	p := NewPoller(&scriptedGetter{}, 0, nil)
	if p.Delay() != DefaultPollDelay {
		t.Errorf("Delay() = %v, want %v", p.Delay(), DefaultPollDelay)
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleep() error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("sleep() did not return promptly")
	}
}
