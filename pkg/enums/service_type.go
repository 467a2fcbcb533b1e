package enums

import "fmt"

// ServiceType discriminates the logistics service families the company quotes.
type ServiceType string

const (
	ServiceTypeFreightForwarding ServiceType = "FREIGHT_FORWARDING"
	ServiceTypeShippingAgency    ServiceType = "SHIPPING_AGENCY"
	ServiceTypeChartering        ServiceType = "CHARTERING"
)

var validServiceTypes = []ServiceType{
	ServiceTypeFreightForwarding,
	ServiceTypeShippingAgency,
	ServiceTypeChartering,
}

// String implements fmt.Stringer.
func (s ServiceType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceType.
func (s ServiceType) IsValid() bool {
	for _, candidate := range validServiceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceType converts raw input into a ServiceType.
func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service type %q", value)
}
