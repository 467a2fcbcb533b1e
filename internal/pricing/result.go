package pricing

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

// Item is one customer-relevant breakdown line. Discount totals are negative.
type Item struct {
	Category     enums.ItemCategory
	Name         string
	Description  string
	Quantity     decimal.Decimal
	UnitPrice    *decimal.Decimal
	TotalPrice   decimal.Decimal
	DisplayOrder int
}

// Step is one internal audit record of how a value was derived.
type Step struct {
	Step            string
	ComponentName   string
	Formula         string
	InputValues     string
	BaseValue       *decimal.Decimal
	RateApplied     *decimal.Decimal
	Multiplier      *decimal.Decimal
	CalculatedValue decimal.Decimal
	Notes           *string
	StepOrder       int
}

// Result is the in-flight computation every calculator appends into. It is
// append-only: calculators track their own running subtotals and never read
// back appended lines.
type Result struct {
	BasePrice       decimal.Decimal
	TotalSurcharges decimal.Decimal
	TotalDiscounts  decimal.Decimal
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	FinalAmount     decimal.Decimal
	Currency        enums.Currency
	Items           []Item
	Steps           []Step

	nextDisplay int
	nextStep    int
}

func newResult() *Result {
	return &Result{
		Currency:    enums.CurrencyUSD,
		nextDisplay: 1,
		nextStep:    1,
	}
}

func (r *Result) addItem(category enums.ItemCategory, name, description string,
	quantity decimal.Decimal, unitPrice *decimal.Decimal, totalPrice decimal.Decimal) {
	r.Items = append(r.Items, Item{
		Category:     category,
		Name:         name,
		Description:  description,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalPrice:   totalPrice,
		DisplayOrder: r.nextDisplay,
	})
	r.nextDisplay++
}

func (r *Result) addStep(step, component, formula string, inputs map[string]any,
	baseValue, rateApplied, multiplier *decimal.Decimal, calculated decimal.Decimal, notes *string) {
	r.Steps = append(r.Steps, Step{
		Step:            step,
		ComponentName:   component,
		Formula:         formula,
		InputValues:     encodeInputs(inputs),
		BaseValue:       baseValue,
		RateApplied:     rateApplied,
		Multiplier:      multiplier,
		CalculatedValue: calculated,
		Notes:           notes,
		StepOrder:       r.nextStep,
	})
	r.nextStep++
}

// noteFallbackRate records an audit step whenever a last-resort rate was used,
// so imprecise quotes stay traceable.
func (r *Result) noteFallbackRate(key RateKey, rate decimal.Decimal) {
	note := "last-resort rate applied; no override or default entry matched"
	r.addStep("RATE_FALLBACK", "Rate Lookup "+key.Category.String(), "FALLBACK_CONSTANT",
		map[string]any{
			"service":  key.Service.String(),
			"category": key.Category.String(),
			"from":     key.From,
			"to":       key.To,
			"size":     key.Size,
		},
		nil, &rate, nil, rate, &note)
}

// finalize fixes the totals and verifies the reconciliation invariants:
// subtotal = base + surcharges - discounts, final = subtotal + tax, and each
// category total equals the sum of its breakdown lines.
func (r *Result) finalize(basePrice, totalSurcharges, totalDiscounts, taxAmount decimal.Decimal) error {
	r.BasePrice = basePrice
	r.TotalSurcharges = totalSurcharges
	r.TotalDiscounts = totalDiscounts
	r.Subtotal = basePrice.Add(totalSurcharges).Sub(totalDiscounts)
	r.TaxAmount = taxAmount
	r.FinalAmount = r.Subtotal.Add(taxAmount)
	return r.reconcile()
}

func (r *Result) reconcile() error {
	sums := map[enums.ItemCategory]decimal.Decimal{}
	for _, item := range r.Items {
		sums[item.Category] = sums[item.Category].Add(item.TotalPrice)
	}

	checks := []struct {
		name string
		want decimal.Decimal
		got  decimal.Decimal
	}{
		{"base price", r.BasePrice, sums[enums.ItemCategoryBasePrice]},
		{"surcharges", r.TotalSurcharges, sums[enums.ItemCategorySurcharge]},
		// Discount lines are negative; the running total is positive.
		{"discounts", r.TotalDiscounts.Neg(), sums[enums.ItemCategoryDiscount]},
	}
	for _, check := range checks {
		if !check.want.Equal(check.got) {
			return pkgerrors.New(pkgerrors.CodeInternal,
				fmt.Sprintf("breakdown reconciliation failed: %s total %s != item sum %s",
					check.name, check.want, check.got))
		}
	}

	for _, item := range r.Items {
		if item.Category == enums.ItemCategoryTax {
			continue
		}
		if !r.hasStepWithValue(item.TotalPrice) {
			return pkgerrors.New(pkgerrors.CodeInternal,
				fmt.Sprintf("audit trail diverged: no step for item %q (%s)", item.Name, item.TotalPrice))
		}
	}
	return nil
}

func (r *Result) hasStepWithValue(value decimal.Decimal) bool {
	for _, step := range r.Steps {
		if step.CalculatedValue.Equal(value) {
			return true
		}
	}
	return false
}

func encodeInputs(inputs map[string]any) string {
	if len(inputs) == 0 {
		return "{}"
	}
	// json.Marshal sorts map keys, keeping the serialized snapshot stable
	// across runs.
	raw, err := json.Marshal(inputs)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func ptr(v decimal.Decimal) *decimal.Decimal {
	return &v
}

// one is the unit quantity used on single-line fee items.
var one = money.FromInt(1)
