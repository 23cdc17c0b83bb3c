package models

import "gorm.io/gorm"

type MaterialUsage struct {
	gorm.Model

	HallID uint `gorm:"not null;index"`
	// MaterialID is nullable: deleting a catalog material keeps the usage
	// entry around with an absent reference.
	MaterialID *uint `gorm:"index"`
	// Quantity may be zero or negative (corrections are entered as
	// negative amounts).
	Quantity int `gorm:"not null"`

	// Relationships
	Hall     Hall      `gorm:"foreignKey:HallID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Material *Material `gorm:"foreignKey:MaterialID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
