package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// QuotationItem is one breakdown line of a quotation. Display order is stable
// and significant; discount totals are negative.
type QuotationItem struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuotationID  uuid.UUID          `gorm:"column:quotation_id;type:uuid;not null;index"`
	Category     enums.ItemCategory `gorm:"column:category;type:text;not null"`
	Name         string             `gorm:"column:name;not null"`
	Description  string             `gorm:"column:description"`
	Quantity     decimal.Decimal    `gorm:"column:quantity;type:numeric(12,2);not null;default:1"`
	UnitPrice    *decimal.Decimal   `gorm:"column:unit_price;type:numeric(12,2)"`
	TotalPrice   decimal.Decimal    `gorm:"column:total_price;type:numeric(12,2);not null"`
	DisplayOrder int                `gorm:"column:display_order;not null"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
}
