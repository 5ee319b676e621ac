package models

import (
	"time"

	"gorm.io/gorm"
)

type Alert struct {
	gorm.Model

	Title       string `gorm:"not null;index"`
	MessageBody string `gorm:"not null"`
	Severity    string `gorm:"not null;default:INFO"` // "INFO", "WARNING", "CRITICAL"

	StartTime  time.Time `gorm:"not null"`
	ExpiryTime *time.Time

	ReminderEnabled bool `gorm:"default:true"`
	IsArchived      bool `gorm:"default:false"`

	// Visibility: org-wide OR team targets OR user targets
	IsOrgWide bool `gorm:"default:false"`

	CreatedByID uint `gorm:"index"`

	// Relationships
	CreatedBy    User              `gorm:"foreignKey:CreatedByID"`
	TargetUsers  []User            `gorm:"many2many:alert_target_users"`
	TargetTeams  []Team            `gorm:"many2many:alert_target_teams"`
	UserStatuses []UserAlertStatus `gorm:"foreignKey:AlertID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
