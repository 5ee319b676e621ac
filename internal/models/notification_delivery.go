package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationDelivery is an append-only log of every notification sent.
// Rows are written once by the reminder orchestrator and never updated;
// the analytics dashboard is their only reader.
type NotificationDelivery struct {
	gorm.Model

	AlertID uint   `gorm:"not null;index"`
	UserID  uint   `gorm:"not null;index"`
	Channel string `gorm:"not null"` // e.g. "IN_APP", "EMAIL"
	SentAt  time.Time

	// Relationships
	Alert Alert `gorm:"foreignKey:AlertID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
