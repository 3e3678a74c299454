package kanban

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"taskboard.com/taskboard/internal/constants"
	errs "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

func pendingTask(id string) model.Task {
	return model.Task{
		ID:       id,
		Title:    "Card " + id,
		Status:   constants.StatusPending,
		Priority: constants.PriorityMedium,
		Deadline: time.Now().Add(24 * time.Hour),
	}
}

func TestMove_ConfirmsOnSuccess(t *testing.T) {
	apply := func(ctx context.Context, taskID string, target constants.TaskStatus) (*model.Task, error) {
		task := pendingTask(taskID)
		task.Status = target
		return &task, nil
	}
	board := NewBoard(apply, nil)
	board.Load([]model.Task{pendingTask("t1")})

	if err := board.Move(context.Background(), "t1", constants.StatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, _ := board.Status("t1")
	if status != constants.StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", status)
	}
}

func TestMove_RollsBackOnRejection(t *testing.T) {
	apply := func(ctx context.Context, taskID string, target constants.TaskStatus) (*model.Task, error) {
		return nil, errs.InvalidTransition("cannot move task from PENDING to APPROVED")
	}
	board := NewBoard(apply, nil)
	board.Load([]model.Task{pendingTask("t1")})

	err := board.Move(context.Background(), "t1", constants.StatusApproved)
	if !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}

	status, _ := board.Status("t1")
	if status != constants.StatusPending {
		t.Errorf("expected rollback to PENDING, got %s", status)
	}
}

func TestMove_UnknownTask(t *testing.T) {
	board := NewBoard(nil, nil)

	err := board.Move(context.Background(), "ghost", constants.StatusInProgress)
	if !errors.Is(err, errs.ErrTaskNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestMove_SameColumnIsNoOp(t *testing.T) {
	var calls atomic.Int32
	apply := func(ctx context.Context, taskID string, target constants.TaskStatus) (*model.Task, error) {
		calls.Add(1)
		return nil, nil
	}
	board := NewBoard(apply, nil)
	board.Load([]model.Task{pendingTask("t1")})

	if err := board.Move(context.Background(), "t1", constants.StatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("apply should not be invoked for a same-column drop, got %d calls", calls.Load())
	}
}

func TestMove_AmbiguousOutcomeReconciles(t *testing.T) {
	apply := func(ctx context.Context, taskID string, target constants.TaskStatus) (*model.Task, error) {
		return nil, errs.Transport("request timed out")
	}
	// The store says the write actually landed.
	fetch := func(ctx context.Context, taskID string) (*model.Task, error) {
		task := pendingTask(taskID)
		task.Status = constants.StatusInProgress
		return &task, nil
	}
	board := NewBoard(apply, fetch)
	board.Load([]model.Task{pendingTask("t1")})

	err := board.Move(context.Background(), "t1", constants.StatusInProgress)
	if !errors.Is(err, errs.ErrTransport) {
		t.Fatalf("expected transport error to surface, got %v", err)
	}

	status, _ := board.Status("t1")
	if status != constants.StatusInProgress {
		t.Errorf("expected canonical IN_PROGRESS after reconcile, got %s", status)
	}
}

func TestMove_AmbiguousOutcomeFetchFails(t *testing.T) {
	apply := func(ctx context.Context, taskID string, target constants.TaskStatus) (*model.Task, error) {
		return nil, errs.Transport("request timed out")
	}
	fetch := func(ctx context.Context, taskID string) (*model.Task, error) {
		return nil, errs.Transport("still down")
	}
	board := NewBoard(apply, fetch)
	board.Load([]model.Task{pendingTask("t1")})

	_ = board.Move(context.Background(), "t1", constants.StatusInProgress)

	status, _ := board.Status("t1")
	if status != constants.StatusPending {
		t.Errorf("expected fallback to confirmed PENDING, got %s", status)
	}
}

func TestMove_SerializesPerTask(t *testing.T) {
	var inFlight atomic.Int32
	var maxInFlight atomic.Int32
	release := make(chan struct{})

	apply := func(ctx context.Context, taskID string, target constants.TaskStatus) (*model.Task, error) {
		n := inFlight.Add(1)
		if n > maxInFlight.Load() {
			maxInFlight.Store(n)
		}
		<-release
		inFlight.Add(-1)

		task := pendingTask(taskID)
		task.Status = target
		return &task, nil
	}
	board := NewBoard(apply, nil)
	board.Load([]model.Task{pendingTask("t1")})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = board.Move(context.Background(), "t1", constants.StatusInProgress)
	}()
	go func() {
		defer wg.Done()
		// Queues behind the first move; by the time it runs the card is
		// IN_PROGRESS, so this becomes the next forward step.
		_ = board.Move(context.Background(), "t1", constants.StatusSubmitted)
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if maxInFlight.Load() != 1 {
		t.Errorf("moves on the same task overlapped: max in flight %d", maxInFlight.Load())
	}
}

func TestMove_DistinctTasksRunConcurrently(t *testing.T) {
	started := make(chan string, 2)
	release := make(chan struct{})

	apply := func(ctx context.Context, taskID string, target constants.TaskStatus) (*model.Task, error) {
		started <- taskID
		<-release

		task := pendingTask(taskID)
		task.Status = target
		return &task, nil
	}
	board := NewBoard(apply, nil)
	board.Load([]model.Task{pendingTask("t1"), pendingTask("t2")})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = board.Move(context.Background(), "t1", constants.StatusInProgress)
	}()
	go func() {
		defer wg.Done()
		_ = board.Move(context.Background(), "t2", constants.StatusInProgress)
	}()

	// Both applies must start without either finishing.
	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("moves on distinct tasks blocked each other")
		}
	}
	close(release)
	wg.Wait()
}
