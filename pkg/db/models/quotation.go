package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// Quotation is the priced offer produced from a service request. Once sent,
// only the status/response fields may change; the monetary totals are the
// frozen contract with the customer.
type Quotation struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteCode   string            `gorm:"column:quote_code;not null;uniqueIndex"`
	RequestID   uuid.UUID         `gorm:"column:request_id;type:uuid;not null;index"`
	CustomerID  uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index"`
	EmployeeID  *uuid.UUID        `gorm:"column:employee_id;type:uuid"`
	ServiceType enums.ServiceType `gorm:"column:service_type;type:text;not null"`
	Status      enums.QuoteStatus `gorm:"column:status;type:text;not null;default:'DRAFT'"`

	BasePrice       decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null"`
	TotalSurcharges decimal.Decimal `gorm:"column:total_surcharges;type:numeric(12,2);not null;default:0"`
	TotalDiscounts  decimal.Decimal `gorm:"column:total_discounts;type:numeric(12,2);not null;default:0"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	TaxAmount       decimal.Decimal `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	FinalAmount     decimal.Decimal `gorm:"column:final_amount;type:numeric(12,2);not null"`
	Currency        enums.Currency  `gorm:"column:currency;type:text;not null;default:'USD'"`

	PriceOverridden         bool             `gorm:"column:price_overridden;not null;default:false"`
	OverrideReason          *string          `gorm:"column:override_reason"`
	OriginalCalculatedPrice *decimal.Decimal `gorm:"column:original_calculated_price;type:numeric(12,2)"`

	QuoteDate  time.Time `gorm:"column:quote_date;not null"`
	ValidUntil time.Time `gorm:"column:valid_until;not null"`

	ServiceInputData string `gorm:"column:service_input_data;type:jsonb;not null"`

	SentAt               *time.Time              `gorm:"column:sent_at"`
	CustomerResponse     *enums.CustomerResponse `gorm:"column:customer_response;type:text"`
	CustomerResponseDate *time.Time              `gorm:"column:customer_response_date"`
	CustomerNotes        *string                 `gorm:"column:customer_notes"`

	Items []QuotationItem    `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	Steps []PriceCalculation `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
