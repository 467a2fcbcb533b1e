package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceCalculation is one internal audit step of a quotation's pricing run.
// It exists for traceability and dispute resolution and is never exposed on
// any customer-facing projection.
type PriceCalculation struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuotationID     uuid.UUID        `gorm:"column:quotation_id;type:uuid;not null;index"`
	Step            string           `gorm:"column:step;not null"`
	ComponentName   string           `gorm:"column:component_name;not null"`
	Formula         string           `gorm:"column:formula;not null"`
	InputValues     string           `gorm:"column:input_values;type:jsonb;not null;default:'{}'"`
	BaseValue       *decimal.Decimal `gorm:"column:base_value;type:numeric(12,2)"`
	RateApplied     *decimal.Decimal `gorm:"column:rate_applied;type:numeric(12,6)"`
	Multiplier      *decimal.Decimal `gorm:"column:multiplier;type:numeric(12,6)"`
	CalculatedValue decimal.Decimal  `gorm:"column:calculated_value;type:numeric(12,2);not null"`
	Notes           *string          `gorm:"column:notes"`
	StepOrder       int              `gorm:"column:step_order;not null"`
	CalculatedAt    time.Time        `gorm:"column:calculated_at;autoCreateTime"`
}
