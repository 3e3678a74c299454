package services

import (
	"context"
	"time"

	errs "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/metrics"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

// MetricsService loads the current task and worker sets and hands them
// to the pure metrics engine. The engine itself never sees the store.
type MetricsService struct {
	tasks *repository.TaskRepository
	users *repository.UserRepository
	clock func() time.Time
}

func NewMetricsService(tasks *repository.TaskRepository, users *repository.UserRepository) *MetricsService {
	return &MetricsService{
		tasks: tasks,
		users: users,
		clock: time.Now,
	}
}

func (s *MetricsService) GetKPIs(ctx context.Context, actor model.Actor) (metrics.KPIs, error) {
	report, err := s.report(ctx, actor)
	if err != nil {
		return metrics.KPIs{}, err
	}
	return report.KPIs, nil
}

func (s *MetricsService) GetChartData(ctx context.Context, actor model.Actor) (metrics.Charts, error) {
	report, err := s.report(ctx, actor)
	if err != nil {
		return metrics.Charts{}, err
	}
	return report.Charts, nil
}

func (s *MetricsService) report(ctx context.Context, actor model.Actor) (metrics.Report, error) {
	if !actor.Authenticated() {
		return metrics.Report{}, errs.ErrUnauthenticated
	}
	if !actor.CanManage() {
		return metrics.Report{}, errs.ErrForbidden
	}

	tasks, err := s.tasks.List(ctx, repository.ListFilter{})
	if err != nil {
		return metrics.Report{}, err
	}
	workers, err := s.users.ListWorkers(ctx)
	if err != nil {
		return metrics.Report{}, err
	}

	return metrics.Compute(tasks, workers, s.clock()), nil
}
