package enums

import "fmt"

// RateCategory names a fee line within a service family's rate table.
type RateCategory string

const (
	RateCategoryOceanFreight    RateCategory = "OCEAN_FREIGHT"
	RateCategoryTHC             RateCategory = "THC"
	RateCategoryInlandTransport RateCategory = "INLAND_TRANSPORT"
	RateCategoryDocumentation   RateCategory = "DOCUMENTATION"
	RateCategoryPortDues        RateCategory = "PORT_DUES"
	RateCategoryAgencyFee       RateCategory = "AGENCY_FEE"
	RateCategoryPilotage        RateCategory = "PILOTAGE"
	RateCategoryVoyageCharter   RateCategory = "VOYAGE_CHARTER"
	RateCategoryBrokerage       RateCategory = "BROKERAGE"
)

var validRateCategories = []RateCategory{
	RateCategoryOceanFreight,
	RateCategoryTHC,
	RateCategoryInlandTransport,
	RateCategoryDocumentation,
	RateCategoryPortDues,
	RateCategoryAgencyFee,
	RateCategoryPilotage,
	RateCategoryVoyageCharter,
	RateCategoryBrokerage,
}

// String implements fmt.Stringer.
func (r RateCategory) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RateCategory.
func (r RateCategory) IsValid() bool {
	for _, candidate := range validRateCategories {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRateCategory converts raw input into a RateCategory.
func ParseRateCategory(value string) (RateCategory, error) {
	for _, candidate := range validRateCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rate category %q", value)
}
