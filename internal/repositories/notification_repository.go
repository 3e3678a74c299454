package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	model "taskboard.com/taskboard/internal/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("read", true).Error
}

// ExistsRecent reports whether a notification of this kind for this
// task and user was created after cutoff, to keep repeated sweeps from
// spamming the same alert.
func (r *NotificationRepository) ExistsRecent(ctx context.Context, userID, taskID, kind string, cutoff time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND task_id = ? AND type = ? AND created_at > ?", userID, taskID, kind, cutoff).
		Count(&count).Error
	return count > 0, err
}
