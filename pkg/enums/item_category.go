package enums

import "fmt"

// ItemCategory classifies a price breakdown line. Discount line totals are
// stored negative; the category is what reconciliation sums group by.
type ItemCategory string

const (
	ItemCategoryBasePrice ItemCategory = "BASE_PRICE"
	ItemCategorySurcharge ItemCategory = "SURCHARGE"
	ItemCategoryDiscount  ItemCategory = "DISCOUNT"
	ItemCategoryTax       ItemCategory = "TAX"
)

var validItemCategories = []ItemCategory{
	ItemCategoryBasePrice,
	ItemCategorySurcharge,
	ItemCategoryDiscount,
	ItemCategoryTax,
}

// String implements fmt.Stringer.
func (i ItemCategory) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemCategory.
func (i ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemCategory converts raw input into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}
