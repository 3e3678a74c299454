package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"taskboard.com/taskboard/internal/constants"
	errs "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/lifecycle"
	"taskboard.com/taskboard/internal/logging"
	model "taskboard.com/taskboard/internal/models"
	"taskboard.com/taskboard/internal/realtime"
	repository "taskboard.com/taskboard/internal/repositories"
)

// TaskService is the single mutation path for tasks. Every status
// change goes through the lifecycle engine and a conditional update;
// nothing else in the repo ever sets a lifecycle timestamp.
type TaskService struct {
	repo     *repository.TaskRepository
	users    *repository.UserRepository
	notifier realtime.Notifier
	clock    func() time.Time
}

func NewTaskService(
	repo *repository.TaskRepository,
	users *repository.UserRepository,
	notifier realtime.Notifier,
) *TaskService {
	return &TaskService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		clock:    time.Now,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    constants.TaskPriority
	Deadline    time.Time
	AssignedTo  *string
}

type EditTaskInput struct {
	Title       *string
	Description *string
	Priority    *constants.TaskPriority
	Deadline    *time.Time
	AssignedTo  *string
}

type ListTasksFilter struct {
	AssignedToMe bool
	Query        string
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput, actor model.Actor) (*model.Task, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	if !actor.CanManage() {
		return nil, errs.ErrForbidden
	}
	if in.Title == "" {
		return nil, errs.Validation("title is required")
	}
	if in.Deadline.IsZero() {
		return nil, errs.Validation("deadline is required")
	}
	if in.Priority == "" {
		in.Priority = constants.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, errs.Validation("unknown priority")
	}
	if in.AssignedTo != nil {
		if _, err := s.users.FindByID(ctx, *in.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      constants.StatusPending,
		Priority:    in.Priority,
		Deadline:    in.Deadline,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   actor.ID,
		Version:     1,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.Event{
		Type:   realtime.EventTaskCreated,
		TaskID: task.ID,
		Status: task.Status,
	})
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string, actor model.Actor) (*model.Task, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter ListTasksFilter, actor model.Actor) ([]model.Task, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}

	repoFilter := repository.ListFilter{Query: filter.Query}
	if filter.AssignedToMe {
		repoFilter.AssignedTo = actor.ID
	}
	// Workers only ever search their own tasks.
	if filter.Query != "" && actor.Role == constants.RoleWorker {
		repoFilter.AssignedTo = actor.ID
	}
	if filter.Query != "" && len(filter.Query) < 2 {
		return []model.Task{}, nil
	}

	return s.repo.List(ctx, repoFilter)
}

// ChangeStatus is the lifecycle entry point. The transition is
// validated against the snapshot we read, persisted conditionally on
// that snapshot's version, and retried once against a fresh read when
// a concurrent writer got there first.
func (s *TaskService) ChangeStatus(ctx context.Context, taskID string, requested constants.TaskStatus, actor model.Actor) (*model.Task, error) {
	updated, err := s.changeStatusOnce(ctx, taskID, requested, actor)
	if errors.Is(err, errs.ErrConcurrentUpdate) {
		updated, err = s.changeStatusOnce(ctx, taskID, requested, actor)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.Event{
		Type:   realtime.EventTaskUpdated,
		TaskID: updated.ID,
		Status: updated.Status,
	})
	return updated, nil
}

func (s *TaskService) changeStatusOnce(ctx context.Context, taskID string, requested constants.TaskStatus, actor model.Actor) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	next, err := lifecycle.Apply(task, requested, actor, s.clock())
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTransition(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// EditTask changes descriptive fields only. It is independent of
// status and never touches lifecycle timestamps.
func (s *TaskService) EditTask(ctx context.Context, taskID string, in EditTaskInput, actor model.Actor) (*model.Task, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}

	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanEditFields(task, actor) {
		return nil, errs.ErrForbidden
	}

	next := task.Clone()
	if in.Title != nil {
		if *in.Title == "" {
			return nil, errs.Validation("title must not be empty")
		}
		next.Title = *in.Title
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, errs.Validation("unknown priority")
		}
		next.Priority = *in.Priority
	}
	if in.Deadline != nil {
		next.Deadline = *in.Deadline
	}
	if in.AssignedTo != nil {
		if _, err := s.users.FindByID(ctx, *in.AssignedTo); err != nil {
			return nil, err
		}
		next.AssignedTo = in.AssignedTo
	}

	if err := s.repo.UpdateFields(ctx, next); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.Event{
		Type:   realtime.EventTaskUpdated,
		TaskID: next.ID,
		Status: next.Status,
	})
	return next, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID string, actor model.Actor) error {
	if !actor.Authenticated() {
		return errs.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}

	s.publish(ctx, realtime.Event{
		Type:   realtime.EventTaskDeleted,
		TaskID: taskID,
	})
	return nil
}

// publish is best-effort: the store already holds the truth and the
// next reload will surface it, so a failed publish is logged, never
// returned.
func (s *TaskService) publish(ctx context.Context, event realtime.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		logging.Logger.WithError(err).WithField("task_id", event.TaskID).
			Warn("failed to publish change event")
	}
}
