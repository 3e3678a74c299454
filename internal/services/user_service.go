package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskboard.com/taskboard/internal/constants"
	errs "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

// UserService covers the small admin surface over worker identities.
// The identity provider owns authentication; this only manages the
// directory the task board references.
type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

type CreateWorkerInput struct {
	Name  string
	Email string
	Role  constants.Role
}

func (s *UserService) CreateWorker(ctx context.Context, in CreateWorkerInput, actor model.Actor) (*model.User, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	if in.Name == "" {
		return nil, errs.Validation("name is required")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, errs.Validation("a valid email is required")
	}
	if in.Role == "" {
		in.Role = constants.RoleWorker
	}
	if !in.Role.Valid() {
		return nil, errs.Validation("unknown role")
	}

	user := &model.User{
		ID:    uuid.NewString(),
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListWorkers(ctx context.Context, actor model.Actor) ([]model.User, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	if !actor.CanManage() {
		return nil, errs.ErrForbidden
	}
	return s.repo.ListWorkers(ctx)
}
