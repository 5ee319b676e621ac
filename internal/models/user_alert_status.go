package models

import (
	"time"

	"gorm.io/gorm"
)

// UserAlertStatus tracks the interaction of a specific user with a specific
// alert. At most one row exists per (user, alert) pair; the row is created
// lazily on the first read or snooze action.
type UserAlertStatus struct {
	gorm.Model

	UserID  uint `gorm:"not null;uniqueIndex:idx_user_alert"`
	AlertID uint `gorm:"not null;uniqueIndex:idx_user_alert"`

	Status       string `gorm:"not null;default:UNREAD"` // "UNREAD", "READ"
	SnoozedUntil *time.Time

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Alert Alert `gorm:"foreignKey:AlertID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
