package pricing

import (
	"math"
	"testing"

	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
)

func TestGRTFactorBands(t *testing.T) {
	cases := []struct {
		grt  int
		want string
	}{
		{0, "0.5"},
		{999, "0.5"},
		{1000, "1"},
		{4999, "1"},
		{5000, "1.5"},
		{9999, "1.5"},
		{10000, "2"},
		{49999, "2"},
		{50000, "3"},
		{120000, "3"},
	}
	for _, tc := range cases {
		got, err := GRTFactor(tc.grt)
		if err != nil {
			t.Fatalf("GRTFactor(%d): %v", tc.grt, err)
		}
		if got.String() != tc.want {
			t.Fatalf("GRTFactor(%d) = %s, want %s", tc.grt, got, tc.want)
		}
	}
}

func TestDWTFactorBands(t *testing.T) {
	cases := []struct {
		dwt  int
		want string
	}{
		{0, "1"},
		{4999, "1"},
		{5000, "1.2"},
		{9999, "1.2"},
		{10000, "1.5"},
		{49999, "1.5"},
		{50000, "2"},
		{99999, "2"},
		{100000, "2.5"},
	}
	for _, tc := range cases {
		got, err := DWTFactor(tc.dwt)
		if err != nil {
			t.Fatalf("DWTFactor(%d): %v", tc.dwt, err)
		}
		if got.String() != tc.want {
			t.Fatalf("DWTFactor(%d) = %s, want %s", tc.dwt, got, tc.want)
		}
	}
}

func TestLOAFactorBands(t *testing.T) {
	cases := []struct {
		loa  float64
		want string
	}{
		{0, "1"},
		{99.9, "1"},
		{100, "1.3"},
		{149.9, "1.3"},
		{150, "1.6"},
		{199.9, "1.6"},
		{200, "2"},
		{299.9, "2"},
		{300, "2.5"},
		{400, "2.5"},
	}
	for _, tc := range cases {
		got, err := LOAFactor(tc.loa)
		if err != nil {
			t.Fatalf("LOAFactor(%v): %v", tc.loa, err)
		}
		if got.String() != tc.want {
			t.Fatalf("LOAFactor(%v) = %s, want %s", tc.loa, got, tc.want)
		}
	}
}

func TestPilotageRateBands(t *testing.T) {
	cases := []struct {
		grt  int
		want string
	}{
		{10000, "0.08"},
		{10001, "0.1"},
		{30000, "0.1"},
		{30001, "0.12"},
		{50000, "0.12"},
		{50001, "0.15"},
	}
	for _, tc := range cases {
		got, err := PilotageRate(tc.grt)
		if err != nil {
			t.Fatalf("PilotageRate(%d): %v", tc.grt, err)
		}
		if got.String() != tc.want {
			t.Fatalf("PilotageRate(%d) = %s, want %s", tc.grt, got, tc.want)
		}
	}
}

func TestEstimatedCrewBands(t *testing.T) {
	cases := []struct {
		dwt  int
		want int
	}{
		{9999, 15},
		{10000, 20},
		{30000, 20},
		{30001, 25},
		{50000, 25},
		{50001, 30},
	}
	for _, tc := range cases {
		got, err := EstimatedCrew(tc.dwt)
		if err != nil {
			t.Fatalf("EstimatedCrew(%d): %v", tc.dwt, err)
		}
		if got != tc.want {
			t.Fatalf("EstimatedCrew(%d) = %d, want %d", tc.dwt, got, tc.want)
		}
	}
}

func TestTugCount(t *testing.T) {
	cases := []struct {
		loa  float64
		dwt  int
		want int
	}{
		{90, 5000, 1},
		{120, 19999, 2},
		{120, 20000, 3},
		{180, 29999, 2},
		{180, 30000, 3},
		{220, 10000, 3},
		{260, 10000, 4},
	}
	for _, tc := range cases {
		got, err := TugCount(tc.loa, tc.dwt)
		if err != nil {
			t.Fatalf("TugCount(%v, %d): %v", tc.loa, tc.dwt, err)
		}
		if got != tc.want {
			t.Fatalf("TugCount(%v, %d) = %d, want %d", tc.loa, tc.dwt, got, tc.want)
		}
	}
}

func TestTierResolversRejectBadInputs(t *testing.T) {
	if _, err := GRTFactor(-1); !pkgerrors.IsCode(err, pkgerrors.CodeFormulaInput) {
		t.Fatalf("GRTFactor(-1): want formula input error, got %v", err)
	}
	if _, err := DWTFactor(-1); !pkgerrors.IsCode(err, pkgerrors.CodeFormulaInput) {
		t.Fatalf("DWTFactor(-1): want formula input error, got %v", err)
	}
	if _, err := LOAFactor(-0.1); !pkgerrors.IsCode(err, pkgerrors.CodeFormulaInput) {
		t.Fatalf("LOAFactor(-0.1): want formula input error, got %v", err)
	}
	if _, err := LOAFactor(math.NaN()); !pkgerrors.IsCode(err, pkgerrors.CodeFormulaInput) {
		t.Fatalf("LOAFactor(NaN): want formula input error, got %v", err)
	}
	if _, err := LOAFactor(math.Inf(1)); !pkgerrors.IsCode(err, pkgerrors.CodeFormulaInput) {
		t.Fatalf("LOAFactor(+Inf): want formula input error, got %v", err)
	}
	if _, err := TugCount(100, -5); !pkgerrors.IsCode(err, pkgerrors.CodeFormulaInput) {
		t.Fatalf("TugCount(100, -5): want formula input error, got %v", err)
	}
	if _, err := EstimatedCrew(-1); !pkgerrors.IsCode(err, pkgerrors.CodeFormulaInput) {
		t.Fatalf("EstimatedCrew(-1): want formula input error, got %v", err)
	}
}

func TestVolumeDiscountEligible(t *testing.T) {
	if VolumeDiscountEligible(4) {
		t.Fatal("4 containers must not qualify for the volume discount")
	}
	if !VolumeDiscountEligible(5) {
		t.Fatal("5 containers must qualify for the volume discount")
	}
}
