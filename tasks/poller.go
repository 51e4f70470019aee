package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/paperless/pkg/logging"
)

// DefaultPollDelay is used when a Poller is created with a non-positive delay.
const DefaultPollDelay = 250 * time.Millisecond

// Getter retrieves a task by id, returning nil when it does not exist.
type Getter interface {
	Get(ctx context.Context, id uuid.UUID) (*Task, error)
}

// Poller waits for tasks to reach a terminal status.
type Poller struct {
	tasks  Getter
	delay  time.Duration
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a Poller that waits delay between observations.
func NewPoller(tasks Getter, delay time.Duration, logger *slog.Logger) *Poller {
	if delay <= 0 {
		delay = DefaultPollDelay
	}
	return &Poller{
		tasks:  tasks,
		delay:  delay,
		logger: logging.OrDiscard(logger).With("client", "task_poller"),
		sleep:  sleep,
	}
}

// Delay returns the wait between observations.
func (p *Poller) Delay() time.Duration {
	return p.delay
}

// Await polls task id until it completes or disappears. A nil task with a nil error
// means the server does not know the task. Cancellation returns the context error.
func (p *Poller) Await(ctx context.Context, id uuid.UUID) (*Task, error) {
	for attempt := 1; ; attempt++ {
		task, err := p.tasks.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		if task == nil {
			p.logger.Info("task not found", "task_id", id, "attempts", attempt)
			return nil, nil
		}

		p.logger.Debug("task observed", "task_id", id, "status", task.Status, "attempt", attempt)

		if task.Status.IsCompleted() {
			p.logger.Info("task completed", "task_id", id, "status", task.Status, "attempts", attempt)
			return task, nil
		}

		if err := p.sleep(ctx, p.delay); err != nil {
			return nil, err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
