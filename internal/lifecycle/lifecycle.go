// Package lifecycle holds the task status state machine: which
// transitions are legal, who may request them, and which timestamp
// each one stamps. It is pure; persistence and event fan-out belong to
// the service layer.
package lifecycle

import (
	"fmt"
	"time"

	"taskboard.com/taskboard/internal/constants"
	errs "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

// CanTransition reports whether the status graph permits from -> to,
// independent of who asks. Legal moves are single forward steps along
// PENDING -> IN_PROGRESS -> SUBMITTED -> APPROVED, plus CANCELLED from
// any non-terminal status.
func CanTransition(from, to constants.TaskStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from.Terminal() {
		return false
	}
	if to == constants.StatusCancelled {
		return true
	}
	return to.Rank() == from.Rank()+1
}

// Apply validates the requested transition against the graph and the
// actor's role, then returns a copy of the task with the new status
// and, where the transition has one, its timestamp stamped. The input
// task is never mutated. Timestamps already set are left untouched, so
// replaying a transition can never overwrite one.
func Apply(task *model.Task, requested constants.TaskStatus, actor model.Actor, now time.Time) (*model.Task, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	if !requested.Valid() {
		return nil, errs.InvalidTransition(fmt.Sprintf("unknown status %q", string(requested)))
	}
	if !CanTransition(task.Status, requested) {
		return nil, errs.InvalidTransition(
			fmt.Sprintf("cannot move task from %s to %s", task.Status, requested),
		)
	}
	if err := authorize(task, requested, actor); err != nil {
		return nil, err
	}

	next := task.Clone()
	next.Status = requested
	stamp(next, requested, now)
	return next, nil
}

// authorize applies the role rules on top of an already graph-legal
// transition. Admins and managers may perform any of them; a worker
// must be the assignee and may only advance into IN_PROGRESS or
// SUBMITTED.
func authorize(task *model.Task, requested constants.TaskStatus, actor model.Actor) error {
	if actor.CanManage() {
		return nil
	}
	if actor.Role != constants.RoleWorker {
		return errs.ErrForbidden
	}
	if task.AssignedTo == nil || *task.AssignedTo != actor.ID {
		return errs.ErrForbidden
	}
	switch requested {
	case constants.StatusInProgress, constants.StatusSubmitted:
		return nil
	}
	return errs.ErrForbidden
}

// stamp records the time the task first reached a status. Set-once: a
// non-nil field is never overwritten, which keeps duplicate deliveries
// and retries harmless.
func stamp(task *model.Task, reached constants.TaskStatus, now time.Time) {
	switch reached {
	case constants.StatusInProgress:
		if task.StartedAt == nil {
			task.StartedAt = &now
		}
	case constants.StatusSubmitted:
		if task.SubmittedAt == nil {
			task.SubmittedAt = &now
		}
	case constants.StatusApproved:
		if task.ApprovedAt == nil {
			task.ApprovedAt = &now
		}
	}
}

// CanEditFields reports whether the actor may change descriptive
// fields (title, description, priority, deadline, assignee). Edits are
// independent of status and never touch lifecycle timestamps.
func CanEditFields(task *model.Task, actor model.Actor) bool {
	if !actor.Authenticated() {
		return false
	}
	return actor.CanManage() || task.CreatedBy == actor.ID
}
