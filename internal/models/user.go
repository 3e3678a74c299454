package models

import (
	"time"

	"taskboard.com/taskboard/internal/constants"
)

// User identities are created by the identity provider boundary; tasks
// reference them but never own them.
type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Role      constants.Role `gorm:"type:varchar(10);not null" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}
