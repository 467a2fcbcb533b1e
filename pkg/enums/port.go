package enums

import (
	"fmt"
	"strings"
)

// Port enumerates the ports of call the agency disbursement tariffs cover.
// Every rate in the detailed agency calculation is port-specific, so unknown
// ports are rejected at validation rather than silently defaulted.
type Port string

const (
	PortHaiphong  Port = "HAIPHONG"
	PortHoChiMinh Port = "HOCHIMINH"
)

var validPorts = []Port{
	PortHaiphong,
	PortHoChiMinh,
}

// String implements fmt.Stringer.
func (p Port) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Port.
func (p Port) IsValid() bool {
	for _, candidate := range validPorts {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePort converts raw input into a Port, case-insensitively.
func ParsePort(value string) (Port, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validPorts {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid port of call %q", value)
}
