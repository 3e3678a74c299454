// Package kanban implements the view-model side of drag-and-drop
// status changes: the column a card sits in is updated optimistically,
// the lifecycle entry point is invoked remotely, and the card snaps
// back if the server says no.
package kanban

import (
	"context"
	"errors"
	"sync"

	"taskboard.com/taskboard/internal/constants"
	errs "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

// ApplyFunc asks the lifecycle entry point to perform a transition and
// returns the persisted task.
type ApplyFunc func(ctx context.Context, taskID string, target constants.TaskStatus) (*model.Task, error)

// FetchFunc reads the canonical task, used to reconcile after an
// ambiguous outcome.
type FetchFunc func(ctx context.Context, taskID string) (*model.Task, error)

// Board tracks the last confirmed status per task plus any optimistic
// overlay. Moves on the same task serialize behind a per-task lock;
// moves on distinct tasks proceed concurrently.
type Board struct {
	apply ApplyFunc
	fetch FetchFunc

	mu       sync.RWMutex
	statuses map[string]constants.TaskStatus

	locks sync.Map // task id -> *sync.Mutex
}

func NewBoard(apply ApplyFunc, fetch FetchFunc) *Board {
	return &Board{
		apply:    apply,
		fetch:    fetch,
		statuses: make(map[string]constants.TaskStatus),
	}
}

// Load replaces the confirmed snapshot wholesale. This is the reload
// reaction to a change notification: no delta merging.
func (b *Board) Load(tasks []model.Task) {
	next := make(map[string]constants.TaskStatus, len(tasks))
	for i := range tasks {
		next[tasks[i].ID] = tasks[i].Status
	}

	b.mu.Lock()
	b.statuses = next
	b.mu.Unlock()
}

// Status returns the status currently shown for a card, optimistic or
// confirmed.
func (b *Board) Status(taskID string) (constants.TaskStatus, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.statuses[taskID]
	return s, ok
}

// Move performs one drag-drop. The card immediately shows the target
// column; then the remote apply decides. On a definitive rejection the
// card rolls back to the confirmed snapshot. On an ambiguous outcome
// (timeout, transport failure) neither success nor failure is assumed:
// the canonical task is re-fetched and the card shows whatever the
// store says.
//
// A second Move for the same task blocks until the first has resolved,
// so optimistic state is never used as the base of a further write.
func (b *Board) Move(ctx context.Context, taskID string, target constants.TaskStatus) error {
	lock := b.taskLock(taskID)
	lock.Lock()
	defer lock.Unlock()

	b.mu.RLock()
	confirmed, ok := b.statuses[taskID]
	b.mu.RUnlock()
	if !ok {
		return errs.ErrTaskNotFound
	}
	if confirmed == target {
		return nil
	}

	b.setStatus(taskID, target)

	applied, err := b.apply(ctx, taskID, target)
	if err == nil {
		b.setStatus(taskID, applied.Status)
		return nil
	}

	if ambiguous(err) {
		b.reconcile(taskID, confirmed)
		return err
	}

	// Definitive failure: restore the confirmed snapshot.
	b.setStatus(taskID, confirmed)
	return err
}

// reconcile re-reads the canonical task after an unknown outcome. When
// even the fetch fails, the confirmed snapshot is the safest thing to
// show.
func (b *Board) reconcile(taskID string, confirmed constants.TaskStatus) {
	canonical, err := b.fetch(context.Background(), taskID)
	if err != nil {
		b.setStatus(taskID, confirmed)
		return
	}
	b.setStatus(taskID, canonical.Status)
}

func (b *Board) setStatus(taskID string, status constants.TaskStatus) {
	b.mu.Lock()
	b.statuses[taskID] = status
	b.mu.Unlock()
}

func (b *Board) taskLock(taskID string) *sync.Mutex {
	v, _ := b.locks.LoadOrStore(taskID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func ambiguous(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, errs.ErrTransport)
}
