package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Username     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
	IsActive     bool   `gorm:"not null;default:true"`

	// Relationships
	Halls []Hall `gorm:"foreignKey:SalesmanID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
