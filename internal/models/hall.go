package models

import "gorm.io/gorm"

type Hall struct {
	gorm.Model

	// SalesmanID is nullable: deleting the owning user orphans the hall
	// instead of deleting it.
	SalesmanID      *uint    `gorm:"index"`
	Length          float64  `gorm:"not null"`
	Width           float64  `gorm:"not null"`
	PoleHeight      float64  `gorm:"not null"`
	RoofSlope       int      `gorm:"not null"`
	CalculatedValue *float64

	// Relationships
	Salesman     *User           `gorm:"foreignKey:SalesmanID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	UsageEntries []MaterialUsage `gorm:"foreignKey:HallID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
