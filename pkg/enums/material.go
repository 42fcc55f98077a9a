package enums

import "fmt"

// MaterialCategory represents the canonical listing categories.
type MaterialCategory string

const (
	MaterialCategoryFood         MaterialCategory = "food"
	MaterialCategoryConstruction MaterialCategory = "construction"
	MaterialCategoryAgricultural MaterialCategory = "agricultural"
	MaterialCategoryIndustrial   MaterialCategory = "industrial"
	MaterialCategoryTextiles     MaterialCategory = "textiles"
	MaterialCategoryChemicals    MaterialCategory = "chemicals"
	MaterialCategoryOther        MaterialCategory = "other"
)

var validMaterialCategories = []MaterialCategory{
	MaterialCategoryFood,
	MaterialCategoryConstruction,
	MaterialCategoryAgricultural,
	MaterialCategoryIndustrial,
	MaterialCategoryTextiles,
	MaterialCategoryChemicals,
	MaterialCategoryOther,
}

// String implements fmt.Stringer.
func (c MaterialCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MaterialCategory.
func (c MaterialCategory) IsValid() bool {
	for _, candidate := range validMaterialCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMaterialCategory converts raw input into a MaterialCategory.
func ParseMaterialCategory(value string) (MaterialCategory, error) {
	for _, candidate := range validMaterialCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid material category %q", value)
}

// MaterialUnit defines the available units for pricing and quantities.
type MaterialUnit string

const (
	MaterialUnitKg    MaterialUnit = "kg"
	MaterialUnitLiter MaterialUnit = "liter"
	MaterialUnitPiece MaterialUnit = "piece"
	MaterialUnitMeter MaterialUnit = "meter"
	MaterialUnitTon   MaterialUnit = "ton"
)

var validMaterialUnits = []MaterialUnit{
	MaterialUnitKg,
	MaterialUnitLiter,
	MaterialUnitPiece,
	MaterialUnitMeter,
	MaterialUnitTon,
}

// String implements fmt.Stringer.
func (u MaterialUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known MaterialUnit.
func (u MaterialUnit) IsValid() bool {
	for _, candidate := range validMaterialUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseMaterialUnit converts raw input into a MaterialUnit.
func ParseMaterialUnit(value string) (MaterialUnit, error) {
	for _, candidate := range validMaterialUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid material unit %q", value)
}
