package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// CustomerView is the customer-safe projection of an order: final amount and
// payment position only. There are no fields for the copied breakdown or the
// intermediate totals; do not add any.
type CustomerView struct {
	OrderCode         string              `json:"order_code"`
	ServiceType       enums.ServiceType   `json:"service_type"`
	Status            enums.OrderStatus   `json:"status"`
	PaymentStatus     enums.PaymentStatus `json:"payment_status"`
	FinalAmount       decimal.Decimal     `json:"final_amount"`
	PaidAmount        decimal.Decimal     `json:"paid_amount"`
	OutstandingAmount decimal.Decimal     `json:"outstanding_amount"`
	Currency          enums.Currency      `json:"currency"`
	OrderDate         time.Time           `json:"order_date"`
	ConfirmedAt       *time.Time          `json:"confirmed_at,omitempty"`
	CompletedAt       *time.Time          `json:"completed_at,omitempty"`
	CancelledAt       *time.Time          `json:"cancelled_at,omitempty"`
}

// ToCustomerView projects an order for its customer.
func ToCustomerView(o *models.Order) CustomerView {
	return CustomerView{
		OrderCode:         o.OrderCode,
		ServiceType:       o.ServiceType,
		Status:            o.Status,
		PaymentStatus:     o.Payment,
		FinalAmount:       o.FinalAmount,
		PaidAmount:        o.PaidAmount,
		OutstandingAmount: o.FinalAmount.Sub(o.PaidAmount),
		Currency:          o.Currency,
		OrderDate:         o.OrderDate,
		ConfirmedAt:       o.ConfirmedAt,
		CompletedAt:       o.CompletedAt,
		CancelledAt:       o.CancelledAt,
	}
}
