package notify

import (
	"context"
	"log/slog"
	"time"
)

type Type int

const (
	TrapNotification Type = iota
	AlarmNotification
)

func (nt Type) String() string {
	switch nt {
	case TrapNotification:
		return "Trap"
	case AlarmNotification:
		return "Alarm"
	default:
		return "Unknown"
	}
}

// Notification is an operator-facing event, typically a trap hit.
type Notification struct {
	Timestamp time.Time
	Type      Type
	Level     slog.Level
	Source    string
	Message   string
	Fields    map[string]any
}

// Notifier defines the contract for dispatching notifications.
// Implementations of this interface are responsible for formatting and
// dispatching notifications to their respective backends.
// Implementations MUST be safe for concurrent use by multiple goroutines.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// Nop discards every notification. Used when no backend is configured.
type Nop struct{}

func (Nop) Send(context.Context, Notification) error { return nil }
