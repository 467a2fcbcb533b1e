package quotations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// CustomerView is the customer-safe projection of a quotation. It has no
// fields for breakdown items, calculation steps, or the intermediate totals,
// so no serialization path can leak them. Do not add such fields here; the
// internal projection is InternalView.
type CustomerView struct {
	QuoteCode            string                  `json:"quote_code"`
	ServiceType          enums.ServiceType       `json:"service_type"`
	Status               enums.QuoteStatus       `json:"status"`
	QuoteDate            time.Time               `json:"quote_date"`
	ValidUntil           time.Time               `json:"valid_until"`
	FinalAmount          decimal.Decimal         `json:"final_amount"`
	Currency             enums.Currency          `json:"currency"`
	CanAccept            bool                    `json:"can_accept"`
	CanReject            bool                    `json:"can_reject"`
	CustomerResponse     *enums.CustomerResponse `json:"customer_response,omitempty"`
	CustomerResponseDate *time.Time              `json:"customer_response_date,omitempty"`
	CustomerNotes        *string                 `json:"customer_notes,omitempty"`
}

// ItemView is one breakdown line on the internal projection.
type ItemView struct {
	Category     enums.ItemCategory `json:"category"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Quantity     decimal.Decimal    `json:"quantity"`
	UnitPrice    *decimal.Decimal   `json:"unit_price,omitempty"`
	TotalPrice   decimal.Decimal    `json:"total_price"`
	DisplayOrder int                `json:"display_order"`
}

// StepView is one audit record on the internal projection.
type StepView struct {
	Step            string           `json:"step"`
	ComponentName   string           `json:"component_name"`
	Formula         string           `json:"formula"`
	InputValues     string           `json:"input_values"`
	BaseValue       *decimal.Decimal `json:"base_value,omitempty"`
	RateApplied     *decimal.Decimal `json:"rate_applied,omitempty"`
	Multiplier      *decimal.Decimal `json:"multiplier,omitempty"`
	CalculatedValue decimal.Decimal  `json:"calculated_value"`
	Notes           *string          `json:"notes,omitempty"`
	StepOrder       int              `json:"step_order"`
}

// InternalView is the staff projection: every total, item, step and override
// audit field.
type InternalView struct {
	ID                      uuid.UUID               `json:"id"`
	QuoteCode               string                  `json:"quote_code"`
	RequestID               uuid.UUID               `json:"request_id"`
	CustomerID              uuid.UUID               `json:"customer_id"`
	EmployeeID              *uuid.UUID              `json:"employee_id,omitempty"`
	ServiceType             enums.ServiceType       `json:"service_type"`
	Status                  enums.QuoteStatus       `json:"status"`
	BasePrice               decimal.Decimal         `json:"base_price"`
	TotalSurcharges         decimal.Decimal         `json:"total_surcharges"`
	TotalDiscounts          decimal.Decimal         `json:"total_discounts"`
	Subtotal                decimal.Decimal         `json:"subtotal"`
	TaxAmount               decimal.Decimal         `json:"tax_amount"`
	FinalAmount             decimal.Decimal         `json:"final_amount"`
	Currency                enums.Currency          `json:"currency"`
	PriceOverridden         bool                    `json:"price_overridden"`
	OverrideReason          *string                 `json:"override_reason,omitempty"`
	OriginalCalculatedPrice *decimal.Decimal        `json:"original_calculated_price,omitempty"`
	QuoteDate               time.Time               `json:"quote_date"`
	ValidUntil              time.Time               `json:"valid_until"`
	ServiceInputData        string                  `json:"service_input_data"`
	SentAt                  *time.Time              `json:"sent_at,omitempty"`
	CustomerResponse        *enums.CustomerResponse `json:"customer_response,omitempty"`
	CustomerResponseDate    *time.Time              `json:"customer_response_date,omitempty"`
	CustomerNotes           *string                 `json:"customer_notes,omitempty"`
	Items                   []ItemView              `json:"items"`
	Steps                   []StepView              `json:"steps"`
}

// ToCustomerView projects a quotation for its customer. Eligibility flags are
// computed against now so the client never re-derives the validity window.
func ToCustomerView(q *models.Quotation, now time.Time) CustomerView {
	return CustomerView{
		QuoteCode:            q.QuoteCode,
		ServiceType:          q.ServiceType,
		Status:               q.Status,
		QuoteDate:            q.QuoteDate,
		ValidUntil:           q.ValidUntil,
		FinalAmount:          q.FinalAmount,
		Currency:             q.Currency,
		CanAccept:            q.Status == enums.QuoteStatusSent && !now.After(q.ValidUntil),
		CanReject:            q.Status != enums.QuoteStatusRejected,
		CustomerResponse:     q.CustomerResponse,
		CustomerResponseDate: q.CustomerResponseDate,
		CustomerNotes:        q.CustomerNotes,
	}
}

// ToInternalView projects everything for staff.
func ToInternalView(q *models.Quotation) InternalView {
	view := InternalView{
		ID:                      q.ID,
		QuoteCode:               q.QuoteCode,
		RequestID:               q.RequestID,
		CustomerID:              q.CustomerID,
		EmployeeID:              q.EmployeeID,
		ServiceType:             q.ServiceType,
		Status:                  q.Status,
		BasePrice:               q.BasePrice,
		TotalSurcharges:         q.TotalSurcharges,
		TotalDiscounts:          q.TotalDiscounts,
		Subtotal:                q.Subtotal,
		TaxAmount:               q.TaxAmount,
		FinalAmount:             q.FinalAmount,
		Currency:                q.Currency,
		PriceOverridden:         q.PriceOverridden,
		OverrideReason:          q.OverrideReason,
		OriginalCalculatedPrice: q.OriginalCalculatedPrice,
		QuoteDate:               q.QuoteDate,
		ValidUntil:              q.ValidUntil,
		ServiceInputData:        q.ServiceInputData,
		SentAt:                  q.SentAt,
		CustomerResponse:        q.CustomerResponse,
		CustomerResponseDate:    q.CustomerResponseDate,
		CustomerNotes:           q.CustomerNotes,
		Items:                   make([]ItemView, 0, len(q.Items)),
		Steps:                   make([]StepView, 0, len(q.Steps)),
	}
	for _, item := range q.Items {
		view.Items = append(view.Items, ItemView{
			Category:     item.Category,
			Name:         item.Name,
			Description:  item.Description,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
			DisplayOrder: item.DisplayOrder,
		})
	}
	for _, step := range q.Steps {
		view.Steps = append(view.Steps, StepView{
			Step:            step.Step,
			ComponentName:   step.ComponentName,
			Formula:         step.Formula,
			InputValues:     step.InputValues,
			BaseValue:       step.BaseValue,
			RateApplied:     step.RateApplied,
			Multiplier:      step.Multiplier,
			CalculatedValue: step.CalculatedValue,
			Notes:           step.Notes,
			StepOrder:       step.StepOrder,
		})
	}
	return view
}
