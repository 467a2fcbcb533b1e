package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// RateTable is an override row consulted before the compiled default rates.
// Route-specific rates (ocean freight, voyage charter) only exist here; there
// is no generic fallback for them.
type RateTable struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ServiceType enums.ServiceType  `gorm:"column:service_type;type:text;not null;index:idx_rate_lookup"`
	Category    enums.RateCategory `gorm:"column:category;type:text;not null;index:idx_rate_lookup"`
	FromLoc     *string            `gorm:"column:from_loc;index:idx_rate_lookup"`
	ToLoc       *string            `gorm:"column:to_loc;index:idx_rate_lookup"`
	SizeClass   *string            `gorm:"column:size_class;index:idx_rate_lookup"`
	Rate        decimal.Decimal    `gorm:"column:rate;type:numeric(12,6);not null"`
	Currency    enums.Currency     `gorm:"column:currency;type:text;not null;default:'USD'"`
	IsActive    bool               `gorm:"column:is_active;not null;default:true"`
	ValidFrom   time.Time          `gorm:"column:valid_from;not null"`
	ValidTo     *time.Time         `gorm:"column:valid_to"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
