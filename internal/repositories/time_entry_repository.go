package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	errs "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) Create(ctx context.Context, entry *model.TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindOpenByUser returns the user's running entry, if any. At most one
// can be open at a time; the service rejects a new start while it is.
func (r *TimeEntryRepository) FindOpenByUser(ctx context.Context, userID string) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND end_at IS NULL", userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *TimeEntryRepository) FindOpenByTaskAndUser(ctx context.Context, taskID, userID string) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ? AND end_at IS NULL", taskID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNoOpenTimer
		}
		return nil, err
	}
	return &entry, nil
}

// Close stops an entry conditionally on it still being open, so two
// concurrent stops cannot both stamp it.
func (r *TimeEntryRepository) Close(ctx context.Context, entry *model.TimeEntry, endAt time.Time) error {
	durationSec := int64(endAt.Sub(entry.StartAt).Seconds())

	res := r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("id = ? AND end_at IS NULL", entry.ID).
		Updates(map[string]interface{}{
			"end_at":       endAt,
			"duration_sec": durationSec,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNoOpenTimer
	}

	entry.EndAt = &endAt
	entry.DurationSec = durationSec
	return nil
}

// ListByTaskAndUser returns the user's entries on the task, newest
// first. Time sheets are personal; nobody reads another user's entries.
func (r *TimeEntryRepository) ListByTaskAndUser(ctx context.Context, taskID, userID string) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Order("start_at desc").
		Find(&entries).Error
	return entries, err
}
