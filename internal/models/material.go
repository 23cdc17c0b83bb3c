package models

import "gorm.io/gorm"

type Material struct {
	gorm.Model

	Name  string  `gorm:"not null"`
	Price float64 `gorm:"not null"`

	// Relationships
	UsageEntries []MaterialUsage `gorm:"foreignKey:MaterialID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
