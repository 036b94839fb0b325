package controller

import (
	"context"
	"time"

	"home_automation/internal/cloud"
	"home_automation/internal/logger"
)

// EventHandler consumes cloud callbacks.
type EventHandler interface {
	Handle(ctx context.Context, ev cloud.Event)
}

// Task is a periodic job run by the Loop. The first run happens one interval
// after start.
type Task struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context)

	due time.Time
}

// Loop is the controller's only goroutine that touches device state. It
// interleaves cloud events with periodic tasks and never runs two callbacks
// at once.
type Loop struct {
	events  <-chan cloud.Event
	handler EventHandler
	tasks   []*Task
	log     *logger.Logger
	now     func() time.Time
}

func NewLoop(events <-chan cloud.Event, handler EventHandler, log *logger.Logger, tasks ...Task) *Loop {
	l := &Loop{events: events, handler: handler, log: log, now: time.Now}
	for i := range tasks {
		t := tasks[i]
		l.tasks = append(l.tasks, &t)
	}
	return l
}

// Run blocks until ctx is cancelled. Cancellation is observed between
// callbacks, never inside one.
func (l *Loop) Run(ctx context.Context) {
	start := l.now()
	for _, t := range l.tasks {
		t.due = start.Add(t.Every)
		l.log.Infow("task_scheduled", "task", t.Name, "every", t.Every.String())
	}

	events := l.events
	for {
		if ctx.Err() != nil {
			l.log.Infow("controller_loop_stopped")
			return
		}

		timer := time.NewTimer(l.untilNext())
		select {
		case <-ctx.Done():
			timer.Stop()
			continue
		case ev, ok := <-events:
			timer.Stop()
			if !ok {
				events = nil
				continue
			}
			l.handler.Handle(ctx, ev)
		case <-timer.C:
		}

		if ctx.Err() == nil {
			l.runDue(ctx)
		}
	}
}

// runDue runs every task whose due time has passed. A task that fell behind
// is rescheduled one interval from now instead of running repeatedly.
func (l *Loop) runDue(ctx context.Context) {
	for _, t := range l.tasks {
		now := l.now()
		if now.Before(t.due) {
			continue
		}
		t.Run(ctx)
		t.due = t.due.Add(t.Every)
		if after := l.now(); !t.due.After(after) {
			t.due = after.Add(t.Every)
		}
	}
}

func (l *Loop) untilNext() time.Duration {
	if len(l.tasks) == 0 {
		return time.Hour
	}
	next := l.tasks[0].due
	for _, t := range l.tasks[1:] {
		if t.due.Before(next) {
			next = t.due
		}
	}
	if d := next.Sub(l.now()); d > 0 {
		return d
	}
	return 0
}
