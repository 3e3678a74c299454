package services

import (
	"context"

	errs "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, actor model.Actor) ([]model.Notification, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, actor.ID)
}

// MarkRead marks the actor's own notifications; ids belonging to other
// users are silently skipped by the ownership filter.
func (s *NotificationService) MarkRead(ctx context.Context, ids []string, actor model.Actor) error {
	if !actor.Authenticated() {
		return errs.ErrUnauthenticated
	}
	return s.repo.MarkRead(ctx, actor.ID, ids)
}
