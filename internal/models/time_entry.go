package models

import "time"

type TimeEntry struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	TaskID      string     `gorm:"size:36;not null;index" json:"task_id"`
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	StartAt     time.Time  `gorm:"not null" json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	DurationSec int64      `json:"duration_sec"`
}

// Open reports whether the entry is still running.
func (e *TimeEntry) Open() bool {
	return e.EndAt == nil
}
