package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
)

func haiphongCall() AgencyRequest {
	return AgencyRequest{
		PortOfCall:    "HAIPHONG",
		VesselName:    "MV PACIFIC STAR",
		GRT:           8000,
		DWT:           15000,
		LOA:           180,
		ArrivalDate:   time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC),
	}
}

func TestAgencyDisbursementHaiphong(t *testing.T) {
	calc := NewCalculator(nil)
	result, err := calc.AgencyDisbursement(context.Background(), haiphongCall())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Items) != 13 {
		t.Fatalf("disbursement account has %d items, want 13", len(result.Items))
	}
	for _, item := range result.Items {
		if item.Category != enums.ItemCategoryBasePrice {
			t.Fatalf("item %q has category %s, want base price", item.Name, item.Category)
		}
	}

	// 8000 GRT × 0.025 × 3 days.
	wantAmount(t, "tonnage fee", findItem(t, result, "Tonnage Fee").TotalPrice, "600")
	// 8000 GRT × 0.12.
	wantAmount(t, "navigation due", findItem(t, result, "Navigation Due").TotalPrice, "960")
	// 400 + 8000 × 0.08 + 20nm × 50.
	wantAmount(t, "pilotage", findItem(t, result, "Pilotage").TotalPrice, "2040")
	// 2 tugs × 350/h × 2.5h × 2 operations.
	wantAmount(t, "tug assistance", findItem(t, result, "Tug Assistance Charge").TotalPrice, "3500")
	// (200 + 180m × 3.0) × 2 operations.
	wantAmount(t, "moor/unmoor", findItem(t, result, "Moor/Unmooring Charge").TotalPrice, "1480")
	// 15000 DWT × 0.018 × 72h.
	wantAmount(t, "berth due", findItem(t, result, "Berth Due").TotalPrice, "19440")
	wantAmount(t, "anchorage", findItem(t, result, "Anchorage Fees").TotalPrice, "0")
	// 300 + 20 crew × 25.
	wantAmount(t, "quarantine fee", findItem(t, result, "Quarantine Fee").TotalPrice, "800")
	// 5% of 600 + 960 + 19440.
	wantAmount(t, "ocean freight tax", findItem(t, result, "Ocean Freight Tax").TotalPrice, "1050")
	wantAmount(t, "quarantine transport",
		findItem(t, result, "Transport for Entry Quarantine Formality").TotalPrice, "150")
	// 15000 DWT is within the 30000 limit.
	wantAmount(t, "over-DWT berthing",
		findItem(t, result, "Berthing Application to B.4 (Over DWT)").TotalPrice, "0")
	wantAmount(t, "clearance", findItem(t, result, "Clearance Fees").TotalPrice, "530")
	// 150 + 3 days × 30.
	wantAmount(t, "garbage removal", findItem(t, result, "Garbage Removal Fee").TotalPrice, "240")

	wantAmount(t, "final amount", result.FinalAmount, "30790")
	wantAmount(t, "surcharges", result.TotalSurcharges, "0")
	wantAmount(t, "discounts", result.TotalDiscounts, "0")
	wantAmount(t, "tax", result.TaxAmount, "0")

	if len(result.Steps) != 13 {
		t.Fatalf("disbursement account has %d steps, want 13", len(result.Steps))
	}
	assertReconciled(t, result)
}

func TestAgencyDisbursementOverDWTSurcharge(t *testing.T) {
	calc := NewCalculator(nil)
	req := haiphongCall()
	req.PortOfCall = "HOCHIMINH"
	req.DWT = 50000

	result, err := calc.AgencyDisbursement(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	// 600 fixed + 10000 excess × 0.06.
	wantAmount(t, "over-DWT berthing",
		findItem(t, result, "Berthing Application to B.4 (Over DWT)").TotalPrice, "1200")
	assertReconciled(t, result)
}

func TestAgencyDisbursementPortTariffsDiffer(t *testing.T) {
	calc := NewCalculator(nil)
	hcm := haiphongCall()
	hcm.PortOfCall = "HOCHIMINH"

	hph, err := calc.AgencyDisbursement(context.Background(), haiphongCall())
	if err != nil {
		t.Fatal(err)
	}
	result, err := calc.AgencyDisbursement(context.Background(), hcm)
	if err != nil {
		t.Fatal(err)
	}

	// 8000 GRT × 0.028 × 3 days.
	wantAmount(t, "tonnage fee", findItem(t, result, "Tonnage Fee").TotalPrice, "672")
	if result.FinalAmount.Equal(hph.FinalAmount) {
		t.Fatal("the two port tariffs must not price identically")
	}
}

func TestAgencyDisbursementRejectsUnknownPort(t *testing.T) {
	calc := NewCalculator(nil)
	req := haiphongCall()
	req.PortOfCall = "DANANG"
	if _, err := calc.AgencyDisbursement(context.Background(), req); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestAgencyDisbursementDeterministic(t *testing.T) {
	calc := NewCalculator(nil)
	first, err := calc.AgencyDisbursement(context.Background(), haiphongCall())
	if err != nil {
		t.Fatal(err)
	}
	second, err := calc.AgencyDisbursement(context.Background(), haiphongCall())
	if err != nil {
		t.Fatal(err)
	}
	if !first.FinalAmount.Equal(second.FinalAmount) {
		t.Fatalf("final amounts differ: %s vs %s", first.FinalAmount, second.FinalAmount)
	}
	for i := range first.Steps {
		if first.Steps[i].InputValues != second.Steps[i].InputValues {
			t.Fatalf("step %d input snapshots differ between runs", i)
		}
	}
}
