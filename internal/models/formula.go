package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Formula is a named recipe bundle sized per guest.
type Formula struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	TypeTag   string         `json:"type_tag" gorm:"default:'non-brunch'"` // brunch, non-brunch
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// FormulaLine is one per-person ingredient of a formula. At most one line per
// (formula, product) pair.
type FormulaLine struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	FormulaID        uint            `json:"formula_id" gorm:"not null;uniqueIndex:idx_formula_product"`
	ProductID        uint            `json:"product_id" gorm:"not null;uniqueIndex:idx_formula_product"`
	QuantityPerGuest decimal.Decimal `json:"quantity_per_guest" gorm:"type:decimal(12,3);not null"`
	UnitID           uint            `json:"unit_id" gorm:"not null"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type FormulaTypeTag string

const (
	FormulaBrunch    FormulaTypeTag = "brunch"
	FormulaNonBrunch FormulaTypeTag = "non-brunch"
)
