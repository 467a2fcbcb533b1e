package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
)

func wantAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", label, got, want)
	}
}

func findItem(t *testing.T, result *Result, name string) Item {
	t.Helper()
	for _, item := range result.Items {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("no breakdown item named %q", name)
	return Item{}
}

func assertReconciled(t *testing.T, result *Result) {
	t.Helper()

	sums := map[enums.ItemCategory]decimal.Decimal{}
	for _, item := range result.Items {
		sums[item.Category] = sums[item.Category].Add(item.TotalPrice)
	}
	if !sums[enums.ItemCategoryBasePrice].Equal(result.BasePrice) {
		t.Fatalf("base price %s != item sum %s", result.BasePrice, sums[enums.ItemCategoryBasePrice])
	}
	if !sums[enums.ItemCategorySurcharge].Equal(result.TotalSurcharges) {
		t.Fatalf("surcharges %s != item sum %s", result.TotalSurcharges, sums[enums.ItemCategorySurcharge])
	}
	if !sums[enums.ItemCategoryDiscount].Equal(result.TotalDiscounts.Neg()) {
		t.Fatalf("discounts %s != item sum %s", result.TotalDiscounts.Neg(), sums[enums.ItemCategoryDiscount])
	}

	subtotal := result.BasePrice.Add(result.TotalSurcharges).Sub(result.TotalDiscounts)
	if !result.Subtotal.Equal(subtotal) {
		t.Fatalf("subtotal %s, want %s", result.Subtotal, subtotal)
	}
	if !result.FinalAmount.Equal(subtotal.Add(result.TaxAmount)) {
		t.Fatalf("final amount %s, want %s", result.FinalAmount, subtotal.Add(result.TaxAmount))
	}

	for _, item := range result.Items {
		if item.Category == enums.ItemCategoryTax {
			continue
		}
		found := false
		for _, step := range result.Steps {
			if step.CalculatedValue.Equal(item.TotalPrice) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("item %q has no calculation step with value %s", item.Name, item.TotalPrice)
		}
	}
}

func TestLogisticsDefaultRates(t *testing.T) {
	calc := NewCalculator(nil)
	result, err := calc.Logistics(context.Background(), LogisticsRequest{
		LoadingPort:     "HAIPHONG",
		DischargingPort: "SINGAPORE",
		Container20:     3,
		Container40:     2,
	})
	if err != nil {
		t.Fatal(err)
	}

	// 3×300 + 2×500 ocean freight, 480 THC each end, 230 documentation,
	// 440 inland each end.
	wantAmount(t, "base price", result.BasePrice, "3970")
	// BAF is 10% of the 1900 ocean freight.
	wantAmount(t, "surcharges", result.TotalSurcharges, "190")
	// 5 containers: 5% of 4160.
	wantAmount(t, "discounts", result.TotalDiscounts, "208")
	wantAmount(t, "tax", result.TaxAmount, "0")
	wantAmount(t, "subtotal", result.Subtotal, "3952")
	wantAmount(t, "final amount", result.FinalAmount, "3952")

	wantAmount(t, "ocean freight 20ft", findItem(t, result, "Ocean Freight 20ft").TotalPrice, "900")
	wantAmount(t, "ocean freight 40ft", findItem(t, result, "Ocean Freight 40ft").TotalPrice, "1000")
	wantAmount(t, "BAF", findItem(t, result, "BAF (10%)").TotalPrice, "190")
	wantAmount(t, "volume discount", findItem(t, result, "Volume Discount (5%)").TotalPrice, "-208")

	assertReconciled(t, result)
}

func TestLogisticsVolumeDiscountThreshold(t *testing.T) {
	calc := NewCalculator(nil)
	result, err := calc.Logistics(context.Background(), LogisticsRequest{
		LoadingPort:     "HAIPHONG",
		DischargingPort: "SINGAPORE",
		Container20:     2,
		Container40:     2,
	})
	if err != nil {
		t.Fatal(err)
	}

	wantAmount(t, "discounts", result.TotalDiscounts, "0")
	for _, item := range result.Items {
		if item.Category == enums.ItemCategoryDiscount {
			t.Fatalf("4 containers must not produce a discount line, got %q", item.Name)
		}
	}
	assertReconciled(t, result)
}

func TestLogisticsSkipsZeroQuantitySizes(t *testing.T) {
	calc := NewCalculator(nil)
	result, err := calc.Logistics(context.Background(), LogisticsRequest{
		LoadingPort:     "HAIPHONG",
		DischargingPort: "SINGAPORE",
		Container20:     0,
		Container40:     1,
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, item := range result.Items {
		if item.Name == "Ocean Freight 20ft" {
			t.Fatal("zero 20ft containers must not produce an ocean freight line")
		}
	}
	wantAmount(t, "ocean freight 40ft", findItem(t, result, "Ocean Freight 40ft").TotalPrice, "500")
	assertReconciled(t, result)
}

func TestAgencyQuickEstimate(t *testing.T) {
	calc := NewCalculator(nil)
	result, err := calc.Agency(context.Background(), AgencyRequest{
		PortOfCall: "HAIPHONG",
		GRT:        8000,
		DWT:        15000,
		LOA:        180,
	})
	if err != nil {
		t.Fatal(err)
	}

	// 500 × 1.5 GRT factor, 800 × 1.5 DWT factor, 300 × 1.6 LOA factor.
	wantAmount(t, "port dues", findItem(t, result, "Port Dues").TotalPrice, "750")
	wantAmount(t, "agency fee", findItem(t, result, "Agency Fee").TotalPrice, "1200")
	wantAmount(t, "pilotage", findItem(t, result, "Pilotage Service").TotalPrice, "480")
	wantAmount(t, "final amount", result.FinalAmount, "2430")

	wantAmount(t, "surcharges", result.TotalSurcharges, "0")
	wantAmount(t, "discounts", result.TotalDiscounts, "0")
	wantAmount(t, "tax", result.TaxAmount, "0")
	assertReconciled(t, result)
}

func TestCharteringDefaults(t *testing.T) {
	calc := NewCalculator(nil)
	result, err := calc.Chartering(context.Background(), CharteringRequest{
		LoadingPort:     "HAIPHONG",
		DischargingPort: "SINGAPORE",
	})
	if err != nil {
		t.Fatal(err)
	}

	wantAmount(t, "voyage charter", findItem(t, result, "Voyage Charter").TotalPrice, "15000")
	// Brokerage is 2.5% of the voyage rate.
	wantAmount(t, "brokerage", findItem(t, result, "Brokerage Fee").TotalPrice, "375")
	wantAmount(t, "final amount", result.FinalAmount, "15375")
	assertReconciled(t, result)
}

func TestCalculateDeterministic(t *testing.T) {
	calc := NewCalculator(nil)
	payload := []byte(`{"loading_port":"HAIPHONG","discharging_port":"SINGAPORE","container_20":3,"container_40":2}`)

	first, err := calc.Calculate(context.Background(), enums.ServiceTypeFreightForwarding, payload)
	if err != nil {
		t.Fatal(err)
	}
	second, err := calc.Calculate(context.Background(), enums.ServiceTypeFreightForwarding, payload)
	if err != nil {
		t.Fatal(err)
	}

	if !first.FinalAmount.Equal(second.FinalAmount) {
		t.Fatalf("final amounts differ: %s vs %s", first.FinalAmount, second.FinalAmount)
	}
	if len(first.Items) != len(second.Items) || len(first.Steps) != len(second.Steps) {
		t.Fatalf("breakdown shapes differ: %d/%d items, %d/%d steps",
			len(first.Items), len(second.Items), len(first.Steps), len(second.Steps))
	}
	for i := range first.Items {
		if first.Items[i].Name != second.Items[i].Name ||
			!first.Items[i].TotalPrice.Equal(second.Items[i].TotalPrice) ||
			first.Items[i].DisplayOrder != second.Items[i].DisplayOrder {
			t.Fatalf("item %d differs between runs: %+v vs %+v", i, first.Items[i], second.Items[i])
		}
	}
	for i := range first.Steps {
		if first.Steps[i].Step != second.Steps[i].Step ||
			first.Steps[i].InputValues != second.Steps[i].InputValues ||
			!first.Steps[i].CalculatedValue.Equal(second.Steps[i].CalculatedValue) {
			t.Fatalf("step %d differs between runs: %+v vs %+v", i, first.Steps[i], second.Steps[i])
		}
	}
}

func TestCalculateRejectsUnknownService(t *testing.T) {
	calc := NewCalculator(nil)
	_, err := calc.Calculate(context.Background(), enums.ServiceType("TOWAGE"), []byte(`{}`))
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestCalculateRejectsInvalidPayload(t *testing.T) {
	calc := NewCalculator(nil)
	cases := []struct {
		name    string
		service enums.ServiceType
		payload string
	}{
		{"malformed json", enums.ServiceTypeFreightForwarding, `{"loading_port":`},
		{"missing route", enums.ServiceTypeFreightForwarding, `{"container_20":1}`},
		{"negative containers", enums.ServiceTypeFreightForwarding,
			`{"loading_port":"HAIPHONG","discharging_port":"SINGAPORE","container_20":-1}`},
		{"unknown port", enums.ServiceTypeShippingAgency,
			`{"port_of_call":"DANANG","grt":8000,"dwt":15000,"loa":180,"arrival_date":"2026-03-01T08:00:00Z","departure_date":"2026-03-04T08:00:00Z"}`},
		{"zero vessel metrics", enums.ServiceTypeShippingAgency,
			`{"port_of_call":"HAIPHONG","grt":0,"dwt":15000,"loa":180,"arrival_date":"2026-03-01T08:00:00Z","departure_date":"2026-03-04T08:00:00Z"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Calculate(context.Background(), tc.service, []byte(tc.payload))
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestLogisticsFallbackRateIsAudited(t *testing.T) {
	// An override source that errors for nothing but matches nothing either,
	// combined with a size class absent from the default table, lands on the
	// last-resort constant.
	rates := NewRates(nil)
	calc := &Calculator{rates: rates}
	result := newResult()

	rate, err := calc.resolveRate(context.Background(), result, RateKey{
		Service:  enums.ServiceTypeFreightForwarding,
		Category: enums.RateCategoryOceanFreight,
		Size:     "45",
	})
	if err != nil {
		t.Fatal(err)
	}
	wantAmount(t, "fallback rate", rate, "100")

	if len(result.Steps) != 1 || result.Steps[0].Step != "RATE_FALLBACK" {
		t.Fatalf("want one RATE_FALLBACK audit step, got %+v", result.Steps)
	}
	if result.Steps[0].Notes == nil {
		t.Fatal("fallback audit step must carry a note")
	}
}

func TestStayDaysMinimumOne(t *testing.T) {
	arrival := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	req := AgencyRequest{ArrivalDate: arrival, DepartureDate: arrival.Add(6 * time.Hour)}
	if got := req.StayDays(); got != 1 {
		t.Fatalf("StayDays = %d, want 1 for a same-day call", got)
	}
	req.DepartureDate = arrival.Add(72 * time.Hour)
	if got := req.StayDays(); got != 3 {
		t.Fatalf("StayDays = %d, want 3", got)
	}
}
