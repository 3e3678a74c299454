package validators

import (
	"time"

	"taskboard.com/taskboard/internal/constants"
	dto "taskboard.com/taskboard/internal/data_models"
	errs "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/services"
)

// ValidateCreateTaskRequest turns the wire payload into a typed
// service input. Enum values are normalized here, at the boundary, so
// only canonical forms exist further in.
func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) (services.CreateTaskInput, error) {
	var in services.CreateTaskInput

	if r.Title == "" {
		return in, errs.Validation("title is required")
	}
	if r.Deadline == "" {
		return in, errs.Validation("deadline is required")
	}

	deadline, err := time.Parse(time.RFC3339, r.Deadline)
	if err != nil {
		return in, errs.Validation("deadline must be an RFC 3339 timestamp")
	}

	priority := constants.PriorityMedium
	if r.Priority != "" {
		p, ok := constants.ParsePriority(r.Priority)
		if !ok {
			return in, errs.Validation("unknown priority")
		}
		priority = p
	}

	in = services.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    priority,
		Deadline:    deadline,
		AssignedTo:  r.AssignedTo,
	}
	return in, nil
}

// ValidateEditTaskRequest parses a partial edit; only fields present
// in the payload make it into the input.
func ValidateEditTaskRequest(r *dto.EditTaskRequest) (services.EditTaskInput, error) {
	var in services.EditTaskInput

	in.Title = r.Title
	in.Description = r.Description
	in.AssignedTo = r.AssignedTo

	if r.Priority != nil {
		p, ok := constants.ParsePriority(*r.Priority)
		if !ok {
			return in, errs.Validation("unknown priority")
		}
		in.Priority = &p
	}
	if r.Deadline != nil {
		deadline, err := time.Parse(time.RFC3339, *r.Deadline)
		if err != nil {
			return in, errs.Validation("deadline must be an RFC 3339 timestamp")
		}
		in.Deadline = &deadline
	}
	return in, nil
}
