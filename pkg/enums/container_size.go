package enums

import "fmt"

// ContainerSize is the size class used by container-rated fee categories.
type ContainerSize string

const (
	ContainerSize20 ContainerSize = "20"
	ContainerSize40 ContainerSize = "40"
)

var validContainerSizes = []ContainerSize{
	ContainerSize20,
	ContainerSize40,
}

// String implements fmt.Stringer.
func (c ContainerSize) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ContainerSize.
func (c ContainerSize) IsValid() bool {
	for _, candidate := range validContainerSizes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContainerSize converts raw input into a ContainerSize.
func ParseContainerSize(value string) (ContainerSize, error) {
	for _, candidate := range validContainerSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid container size %q", value)
}
