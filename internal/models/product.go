package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null"`
	CategoryID *uint          `json:"category_id" gorm:"index"`
	TypeID     *uint          `json:"type_id" gorm:"index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// Sentinel labels used whenever a classification axis is missing or a
// referenced product no longer exists. The plan never carries nulls.
const (
	UncategorizedLabel  = "Uncategorized"
	UntypedLabel        = "Untyped"
	UnknownProductLabel = "unknown product"
)
