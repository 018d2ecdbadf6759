package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ClientName   string         `json:"client_name" gorm:"not null"`
	Headcount    int            `json:"headcount" gorm:"default:1"`
	WithService  bool           `json:"with_service" gorm:"default:false"`
	DeliveryDate time.Time      `json:"delivery_date" gorm:"not null;index"`
	DeliveryTime string         `json:"delivery_time"` // HH:MM, sorts lexically
	Notes        string         `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// OrderExtraProduct is a product attached directly to an order, independent of
// any formula. At most one line per (order, product).
type OrderExtraProduct struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;uniqueIndex:idx_order_product"`
	ProductID uint            `json:"product_id" gorm:"not null;uniqueIndex:idx_order_product"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);not null"`
	UnitID    uint            `json:"unit_id" gorm:"not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OrderFormula records that a formula was applied to an order at a specific
// headcount. The exploded product lines are never persisted; they are
// recomputed from the formula's lines scaled by FinalizedHeadcount.
// RecommendedHeadcount is kept only as an audit trail of the suggestion.
type OrderFormula struct {
	ID                   uint            `json:"id" gorm:"primaryKey"`
	OrderID              uint            `json:"order_id" gorm:"not null;index"`
	FormulaID            uint            `json:"formula_id" gorm:"not null;index"`
	RecommendedHeadcount decimal.Decimal `json:"recommended_headcount" gorm:"type:decimal(12,3)"`
	FinalizedHeadcount   decimal.Decimal `json:"finalized_headcount" gorm:"type:decimal(12,3)"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
