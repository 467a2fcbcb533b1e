package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

// Tier resolvers map a continuous vessel metric onto a banded multiplier.
// Bands are contiguous and exhaustive: boundaries are inclusive-below
// (`< upper`) and the final band is unbounded above. Inputs below the lowest
// threshold take the lowest band. Negative or non-finite inputs are rejected
// before any accumulation starts.

// GRTFactor returns the port dues multiplier for a gross register tonnage.
func GRTFactor(grt int) (decimal.Decimal, error) {
	if grt < 0 {
		return decimal.Zero, formulaInput("grt", grt)
	}
	switch {
	case grt < 1000:
		return money.MustParse("0.5"), nil
	case grt < 5000:
		return decimal.NewFromInt(1), nil
	case grt < 10000:
		return money.MustParse("1.5"), nil
	case grt < 50000:
		return money.MustParse("2.0"), nil
	default:
		return money.MustParse("3.0"), nil
	}
}

// DWTFactor returns the agency fee multiplier for a deadweight tonnage.
func DWTFactor(dwt int) (decimal.Decimal, error) {
	if dwt < 0 {
		return decimal.Zero, formulaInput("dwt", dwt)
	}
	switch {
	case dwt < 5000:
		return decimal.NewFromInt(1), nil
	case dwt < 10000:
		return money.MustParse("1.2"), nil
	case dwt < 50000:
		return money.MustParse("1.5"), nil
	case dwt < 100000:
		return money.MustParse("2.0"), nil
	default:
		return money.MustParse("2.5"), nil
	}
}

// LOAFactor returns the pilotage multiplier for a vessel length overall.
func LOAFactor(loa float64) (decimal.Decimal, error) {
	if err := checkLOA(loa); err != nil {
		return decimal.Zero, err
	}
	switch {
	case loa < 100:
		return decimal.NewFromInt(1), nil
	case loa < 150:
		return money.MustParse("1.3"), nil
	case loa < 200:
		return money.MustParse("1.6"), nil
	case loa < 300:
		return money.MustParse("2.0"), nil
	default:
		return money.MustParse("2.5"), nil
	}
}

// TugCount returns how many tugs a vessel of the given length and deadweight
// requires per operation.
func TugCount(loa float64, dwt int) (int, error) {
	if err := checkLOA(loa); err != nil {
		return 0, err
	}
	if dwt < 0 {
		return 0, formulaInput("dwt", dwt)
	}
	switch {
	case loa < 100:
		return 1, nil
	case loa < 150:
		if dwt < 20000 {
			return 2, nil
		}
		return 3, nil
	case loa < 200:
		if dwt < 30000 {
			return 2, nil
		}
		return 3, nil
	case loa < 250:
		return 3, nil
	default:
		return 4, nil
	}
}

// PilotageRate returns the per-GRT pilotage rate band.
func PilotageRate(grt int) (decimal.Decimal, error) {
	if grt < 0 {
		return decimal.Zero, formulaInput("grt", grt)
	}
	switch {
	case grt <= 10000:
		return money.MustParse("0.08"), nil
	case grt <= 30000:
		return money.MustParse("0.10"), nil
	case grt <= 50000:
		return money.MustParse("0.12"), nil
	default:
		return money.MustParse("0.15"), nil
	}
}

// EstimatedCrew estimates crew headcount from deadweight, used by the
// quarantine fee.
func EstimatedCrew(dwt int) (int, error) {
	if dwt < 0 {
		return 0, formulaInput("dwt", dwt)
	}
	switch {
	case dwt < 10000:
		return 15, nil
	case dwt <= 30000:
		return 20, nil
	case dwt <= 50000:
		return 25, nil
	default:
		return 30, nil
	}
}

// volumeDiscountThreshold is the container count at which the volume discount
// applies.
const volumeDiscountThreshold = 5

// VolumeDiscountEligible reports whether a shipment of totalContainers
// qualifies for the volume discount.
func VolumeDiscountEligible(totalContainers int) bool {
	return totalContainers >= volumeDiscountThreshold
}

func checkLOA(loa float64) error {
	if loa < 0 || math.IsNaN(loa) || math.IsInf(loa, 0) {
		return pkgerrors.New(pkgerrors.CodeFormulaInput,
			fmt.Sprintf("loa out of domain: %v", loa))
	}
	return nil
}

func formulaInput(name string, value int) error {
	return pkgerrors.New(pkgerrors.CodeFormulaInput,
		fmt.Sprintf("%s out of domain: %d", name, value))
}
