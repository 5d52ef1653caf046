// Package notify carries user-facing notifications (title, description,
// severity) from the core to whatever presents them.
package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Error   Severity = "error"
)

type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Notifier is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Queue holds pending notifications until a client drains them. When full the
// oldest entry is dropped.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	max   int
}

func NewQueue(max int) *Queue {
	if max <= 0 {
		max = 32
	}
	return &Queue{max: max}
}

func (q *Queue) Notify(_ context.Context, n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == q.max {
		q.items = q.items[1:]
	}
	q.items = append(q.items, n)
}

// Drain returns and clears the pending notifications, oldest first.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Log writes notifications to a logger.
type Log struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) Log {
	return Log{log: log}
}

func (l Log) Notify(_ context.Context, n Notification) {
	ev := l.log.Info()
	if n.Severity == Error {
		ev = l.log.Warn()
	}
	ev.Str("title", n.Title).Str("severity", string(n.Severity)).Msg(n.Description)
}

// Fanout delivers to every notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notification) {
	for _, x := range f {
		x.Notify(ctx, n)
	}
}
