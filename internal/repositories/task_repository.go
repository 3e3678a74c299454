package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard.com/taskboard/internal/constants"
	errs "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListFilter narrows List; zero value means everything.
type ListFilter struct {
	AssignedTo string
	Query      string
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ListFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")

	if filter.AssignedTo != "" {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var tasks []model.Task
	err := query.Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListCreatedBetween(ctx context.Context, from, to *time.Time) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	var tasks []model.Task
	err := query.Find(&tasks).Error
	return tasks, err
}

// ListOverdue returns tasks past deadline that are not APPROVED.
func (r *TaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("status != ? AND deadline < ?", constants.StatusApproved, now).
		Find(&tasks).Error
	return tasks, err
}

// ListDueWithin returns tasks whose deadline falls inside
// [now, now+window] and that have not been submitted, approved or
// cancelled yet.
func (r *TaskRepository) ListDueWithin(ctx context.Context, now time.Time, window time.Duration) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []constants.TaskStatus{
			constants.StatusSubmitted,
			constants.StatusApproved,
			constants.StatusCancelled,
		}).
		Where("deadline >= ? AND deadline <= ?", now, now.Add(window)).
		Find(&tasks).Error
	return tasks, err
}

// UpdateTransition persists a status change conditionally on the
// version the caller read. A lost race leaves zero rows affected and
// returns ErrConcurrentUpdate instead of clobbering a newer row; this
// is what keeps "set timestamp if not already set" atomic per task.
func (r *TaskRepository) UpdateTransition(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"status":       task.Status,
			"started_at":   task.StartedAt,
			"submitted_at": task.SubmittedAt,
			"approved_at":  task.ApprovedAt,
			"version":      gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrConcurrentUpdate
	}

	task.Version++
	return nil
}

// UpdateFields persists descriptive field edits under the same
// optimistic lock. Lifecycle timestamps are deliberately not part of
// the update set.
func (r *TaskRepository) UpdateFields(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"priority":    task.Priority,
			"deadline":    task.Deadline,
			"assigned_to": task.AssignedTo,
			"version":     gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrConcurrentUpdate
	}

	task.Version++
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrTaskNotFound
	}
	return nil
}
