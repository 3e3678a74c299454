package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	errs "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

type TimerService struct {
	tasks   *repository.TaskRepository
	entries *repository.TimeEntryRepository
	clock   func() time.Time
}

func NewTimerService(tasks *repository.TaskRepository, entries *repository.TimeEntryRepository) *TimerService {
	return &TimerService{
		tasks:   tasks,
		entries: entries,
		clock:   time.Now,
	}
}

// StartTimer opens a time entry for the actor on the task. A user may
// have at most one open entry across all tasks; starting while one is
// open fails and leaves the open entry untouched.
func (s *TimerService) StartTimer(ctx context.Context, taskID string, actor model.Actor) (*model.TimeEntry, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}

	open, err := s.entries.FindOpenByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, errs.ErrTimerAlreadyRunning
	}

	entry := &model.TimeEntry{
		ID:      uuid.NewString(),
		TaskID:  taskID,
		UserID:  actor.ID,
		StartAt: s.clock(),
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// StopTimer closes the actor's open entry on the task, deriving the
// duration from the wall clock.
func (s *TimerService) StopTimer(ctx context.Context, taskID string, actor model.Actor) (*model.TimeEntry, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}

	entry, err := s.entries.FindOpenByTaskAndUser(ctx, taskID, actor.ID)
	if err != nil {
		return nil, err
	}

	if err := s.entries.Close(ctx, entry, s.clock()); err != nil {
		return nil, err
	}
	return entry, nil
}

// TimeSheet is the actor's time spent on one task. Totals count closed
// entries only; a running entry shows up in the list without one.
type TimeSheet struct {
	Entries      []model.TimeEntry `json:"entries"`
	TotalSeconds int64             `json:"total_seconds"`
	TotalHours   string            `json:"total_hours"`
}

// ActiveTimer is the actor's currently running entry, annotated with
// the task title so a client can render it without a second fetch.
type ActiveTimer struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	StartAt   time.Time `json:"start_at"`
}

func (s *TimerService) ListEntries(ctx context.Context, taskID string, actor model.Actor) (*TimeSheet, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByTaskAndUser(ctx, taskID, actor.ID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.TimeEntry{}
	}

	var total int64
	for i := range entries {
		if entries[i].Open() {
			continue
		}
		total += entries[i].DurationSec
	}
	return &TimeSheet{
		Entries:      entries,
		TotalSeconds: total,
		TotalHours:   fmt.Sprintf("%.2f", float64(total)/3600),
	}, nil
}

// ActiveTimer returns the actor's running entry, or nil when none is
// open.
func (s *TimerService) ActiveTimer(ctx context.Context, actor model.Actor) (*ActiveTimer, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}

	entry, err := s.entries.FindOpenByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	task, err := s.tasks.FindByID(ctx, entry.TaskID)
	if err != nil {
		return nil, err
	}
	return &ActiveTimer{
		ID:        entry.ID,
		TaskID:    entry.TaskID,
		TaskTitle: task.Title,
		StartAt:   entry.StartAt,
	}, nil
}
