package models

import "time"

const (
	NotificationOverdue = "deadline_overdue"
	NotificationAtRisk  = "deadline_at_risk"
)

type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Type      string    `gorm:"type:varchar(30);not null" json:"type"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `json:"body"`
	TaskID    string    `gorm:"size:36;index" json:"task_id"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
