package enums

import "fmt"

// CustomerResponse records how a customer answered a sent quotation.
type CustomerResponse string

const (
	CustomerResponseAccepted CustomerResponse = "ACCEPTED"
	CustomerResponseRejected CustomerResponse = "REJECTED"
)

var validCustomerResponses = []CustomerResponse{
	CustomerResponseAccepted,
	CustomerResponseRejected,
}

// String implements fmt.Stringer.
func (c CustomerResponse) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerResponse.
func (c CustomerResponse) IsValid() bool {
	for _, candidate := range validCustomerResponses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerResponse converts raw input into a CustomerResponse.
func ParseCustomerResponse(value string) (CustomerResponse, error) {
	for _, candidate := range validCustomerResponses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer response %q", value)
}
