package models

import (
	"time"

	"gorm.io/gorm"
)

// Unit is a measurement unit attached to every quantity ("unit", "g", "kg",
// "L", "mL"). The planner never converts between units.
type Unit struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"unique;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
