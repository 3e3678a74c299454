package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"taskboard.com/taskboard/internal/logging"
	"taskboard.com/taskboard/internal/metrics"
	model "taskboard.com/taskboard/internal/models"
	"taskboard.com/taskboard/internal/realtime"
	repository "taskboard.com/taskboard/internal/repositories"
)

// DeadlineService periodically classifies tasks as overdue or at-risk
// and alerts their assignees. The push channel sits behind a circuit
// breaker so a dead broker cannot stall the sweep; the persisted
// notification is the source of truth either way.
type DeadlineService struct {
	tasks         *repository.TaskRepository
	notifications *repository.NotificationRepository
	notifier      realtime.Notifier
	breaker       *gobreaker.CircuitBreaker
	atRiskWindow  time.Duration
	clock         func() time.Time
}

type SweepResult struct {
	Overdue int
	AtRisk  int
}

func NewDeadlineService(
	tasks *repository.TaskRepository,
	notifications *repository.NotificationRepository,
	notifier realtime.Notifier,
	atRiskWindow time.Duration,
) *DeadlineService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "deadline-notifier",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("circuit breaker %s changed from %s to %s", name, from, to)
		},
	})

	return &DeadlineService{
		tasks:         tasks,
		notifications: notifications,
		notifier:      notifier,
		breaker:       breaker,
		atRiskWindow:  atRiskWindow,
		clock:         time.Now,
	}
}

// Run sweeps on a fixed interval until the context is cancelled.
func (s *DeadlineService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				logging.Logger.WithError(err).Error("deadline sweep failed")
			}
		case <-ctx.Done():
			return
		}
	}
}

// SweepOnce runs one pass: overdue tasks first, then tasks coming up
// on their deadline. Each (task, assignee, kind) alerts at most once
// per day, so repeated sweeps stay quiet.
func (s *DeadlineService) SweepOnce(ctx context.Context) (SweepResult, error) {
	now := s.clock()
	var result SweepResult

	overdue, err := s.tasks.ListOverdue(ctx, now)
	if err != nil {
		return result, err
	}
	result.Overdue = len(overdue)
	for i := range overdue {
		s.alert(ctx, &overdue[i], model.NotificationOverdue, now)
	}

	atRisk, err := s.tasks.ListDueWithin(ctx, now, s.atRiskWindow)
	if err != nil {
		return result, err
	}
	for i := range atRisk {
		t := &atRisk[i]
		// ListDueWithin already excludes submitted/approved/cancelled;
		// the classifier stays the single definition regardless.
		if !metrics.AtRisk(t, now, s.atRiskWindow) {
			continue
		}
		result.AtRisk++
		s.alert(ctx, t, model.NotificationAtRisk, now)
	}

	logging.Logger.WithField("overdue", result.Overdue).
		WithField("at_risk", result.AtRisk).
		Info("deadline sweep finished")
	return result, nil
}

func (s *DeadlineService) alert(ctx context.Context, task *model.Task, kind string, now time.Time) {
	if task.AssignedTo == nil {
		return
	}
	userID := *task.AssignedTo

	seen, err := s.notifications.ExistsRecent(ctx, userID, task.ID, kind, now.Add(-24*time.Hour))
	if err != nil {
		logging.Logger.WithError(err).Warn("failed to check notification history")
		return
	}
	if seen {
		return
	}

	n := &model.Notification{
		ID:     uuid.NewString(),
		UserID: userID,
		Type:   kind,
		TaskID: task.ID,
	}
	switch kind {
	case model.NotificationOverdue:
		n.Title = fmt.Sprintf("Task %q is overdue", task.Title)
		n.Body = fmt.Sprintf("The deadline for this task was %s", task.Deadline.Format("2006-01-02"))
	case model.NotificationAtRisk:
		n.Title = fmt.Sprintf("Task %q is due soon", task.Title)
		n.Body = fmt.Sprintf("The deadline for this task is %s", task.Deadline.Format("2006-01-02 15:04"))
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		logging.Logger.WithError(err).WithField("task_id", task.ID).
			Error("failed to persist notification")
		return
	}

	s.push(ctx, realtime.Event{
		Type:   realtime.EventNotification,
		TaskID: task.ID,
		UserID: userID,
	})
}

func (s *DeadlineService) push(ctx context.Context, event realtime.Event) {
	if s.notifier == nil {
		return
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.notifier.Publish(ctx, event)
	})
	if err != nil {
		logging.Logger.WithError(err).WithField("task_id", event.TaskID).
			Warn("push notification skipped")
	}
}
