package controllers

import (
	"io"
	"net/http"

	"github.com/vuminhhai/seaquote-backend/api/responses"
	"github.com/vuminhhai/seaquote-backend/internal/pricing"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/logger"
)

// publicEstimate is the anonymous projection: a single number, no breakdown.
type publicEstimate struct {
	ServiceType enums.ServiceType `json:"service_type"`
	FinalAmount string            `json:"final_amount"`
	Currency    enums.Currency    `json:"currency"`
}

type estimateItem struct {
	Category     enums.ItemCategory `json:"category"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Quantity     string             `json:"quantity"`
	UnitPrice    *string            `json:"unit_price,omitempty"`
	TotalPrice   string             `json:"total_price"`
	DisplayOrder int                `json:"display_order"`
}

type estimateStep struct {
	Step            string  `json:"step"`
	ComponentName   string  `json:"component_name"`
	Formula         string  `json:"formula"`
	InputValues     string  `json:"input_values"`
	CalculatedValue string  `json:"calculated_value"`
	Notes           *string `json:"notes,omitempty"`
	StepOrder       int     `json:"step_order"`
}

type estimateBreakdown struct {
	BasePrice       string         `json:"base_price"`
	TotalSurcharges string         `json:"total_surcharges"`
	TotalDiscounts  string         `json:"total_discounts"`
	Subtotal        string         `json:"subtotal"`
	TaxAmount       string         `json:"tax_amount"`
	FinalAmount     string         `json:"final_amount"`
	Currency        enums.Currency `json:"currency"`
	Items           []estimateItem `json:"items"`
	Steps           []estimateStep `json:"steps"`
}

func toEstimateBreakdown(result *pricing.Result) estimateBreakdown {
	out := estimateBreakdown{
		BasePrice:       result.BasePrice.StringFixed(2),
		TotalSurcharges: result.TotalSurcharges.StringFixed(2),
		TotalDiscounts:  result.TotalDiscounts.StringFixed(2),
		Subtotal:        result.Subtotal.StringFixed(2),
		TaxAmount:       result.TaxAmount.StringFixed(2),
		FinalAmount:     result.FinalAmount.StringFixed(2),
		Currency:        result.Currency,
		Items:           make([]estimateItem, 0, len(result.Items)),
		Steps:           make([]estimateStep, 0, len(result.Steps)),
	}
	for _, item := range result.Items {
		entry := estimateItem{
			Category:     item.Category,
			Name:         item.Name,
			Description:  item.Description,
			Quantity:     item.Quantity.String(),
			TotalPrice:   item.TotalPrice.StringFixed(2),
			DisplayOrder: item.DisplayOrder,
		}
		if item.UnitPrice != nil {
			unit := item.UnitPrice.StringFixed(2)
			entry.UnitPrice = &unit
		}
		out.Items = append(out.Items, entry)
	}
	for _, step := range result.Steps {
		out.Steps = append(out.Steps, estimateStep{
			Step:            step.Step,
			ComponentName:   step.ComponentName,
			Formula:         step.Formula,
			InputValues:     step.InputValues,
			CalculatedValue: step.CalculatedValue.String(),
			Notes:           step.Notes,
			StepOrder:       step.StepOrder,
		})
	}
	return out
}

// EstimateAgency prices a quick port-call estimate for anonymous visitors.
func EstimateAgency(calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calculator unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
			return
		}

		result, err := calc.Calculate(r.Context(), enums.ServiceTypeShippingAgency, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, publicEstimate{
			ServiceType: enums.ServiceTypeShippingAgency,
			FinalAmount: result.FinalAmount.StringFixed(2),
			Currency:    result.Currency,
		})
	}
}

// EstimateAgencyDisbursement runs the itemized port tariff account for staff.
func EstimateAgencyDisbursement(calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calculator unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
			return
		}

		req, err := pricing.DecodeAgencyRequest(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := calc.AgencyDisbursement(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toEstimateBreakdown(result))
	}
}
