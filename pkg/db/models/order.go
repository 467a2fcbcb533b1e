package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// Order is materialized from exactly one accepted quotation. The unique index
// on QuotationID is what enforces the 1:1 rule under concurrent accepts. It
// carries a copy of the totals and breakdown frozen at acceptance time.
type Order struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderCode   string              `gorm:"column:order_code;not null;uniqueIndex"`
	QuotationID uuid.UUID           `gorm:"column:quotation_id;type:uuid;not null;uniqueIndex:idx_orders_quotation_id"`
	CustomerID  uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	EmployeeID  *uuid.UUID          `gorm:"column:employee_id;type:uuid"`
	ServiceType enums.ServiceType   `gorm:"column:service_type;type:text;not null"`
	Status      enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'PENDING'"`
	Payment     enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'UNPAID'"`

	BasePrice       decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null"`
	TotalSurcharges decimal.Decimal `gorm:"column:total_surcharges;type:numeric(12,2);not null;default:0"`
	TotalDiscounts  decimal.Decimal `gorm:"column:total_discounts;type:numeric(12,2);not null;default:0"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	TaxAmount       decimal.Decimal `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	FinalAmount     decimal.Decimal `gorm:"column:final_amount;type:numeric(12,2);not null"`
	PaidAmount      decimal.Decimal `gorm:"column:paid_amount;type:numeric(12,2);not null;default:0"`
	Currency        enums.Currency  `gorm:"column:currency;type:text;not null;default:'USD'"`

	ServiceData   string  `gorm:"column:service_data;type:jsonb;not null"`
	CustomerNotes *string `gorm:"column:customer_notes"`

	OrderDate   time.Time  `gorm:"column:order_date;not null"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
