// Package realtime fans task change events out to subscribed viewers.
// Delivery is at-least-once; ordering is guaranteed only per task, so
// consumers react to any event by reloading the affected task set
// rather than merging deltas.
package realtime

import (
	"context"

	"taskboard.com/taskboard/internal/constants"
)

const (
	EventTaskCreated  = "task_created"
	EventTaskUpdated  = "task_updated"
	EventTaskDeleted  = "task_deleted"
	EventNotification = "notification"
)

type Event struct {
	Type   string               `json:"type"`
	TaskID string               `json:"task_id"`
	Status constants.TaskStatus `json:"status,omitempty"`
	// UserID is set on notification events addressed to one user.
	UserID string `json:"user_id,omitempty"`
}

// Notifier is the ChangeNotifier capability: best-effort publish on
// one side, subscribe with an unsubscribe handle on the other. Either
// a push channel or a database change feed can sit behind it.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(fn func(Event)) (unsubscribe func(), err error)
	Close()
}
