package models

import (
	"time"

	"taskboard.com/taskboard/internal/constants"
)

type Task struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	Title       string                 `gorm:"not null" json:"title"`
	Description string                 `json:"description"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority    constants.TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`
	Deadline    time.Time              `gorm:"not null;index" json:"deadline"`
	AssignedTo  *string                `gorm:"size:36;index" json:"assigned_to,omitempty"`
	CreatedBy   string                 `gorm:"size:36;not null" json:"created_by"`
	StartedAt   *time.Time             `json:"started_at,omitempty"`
	SubmittedAt *time.Time             `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time             `json:"approved_at,omitempty"`
	Version     uint                   `gorm:"not null;default:1" json:"-"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// Clone returns a copy safe to mutate without touching the original.
func (t *Task) Clone() *Task {
	cp := *t
	return &cp
}
