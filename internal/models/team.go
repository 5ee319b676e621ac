package models

import "gorm.io/gorm"

type Team struct {
	gorm.Model

	Name string `gorm:"uniqueIndex;not null"`

	// Relationships
	Members []User `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
