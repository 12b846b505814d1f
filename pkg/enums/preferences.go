package enums

import "fmt"

// CartSortMethod orders the cart item list.
type CartSortMethod string

const (
	CartSortSequential   CartSortMethod = "sequential"
	CartSortAlphabetical CartSortMethod = "alphabetical"
)

var validCartSortMethods = []CartSortMethod{
	CartSortSequential,
	CartSortAlphabetical,
}

// IsValid reports whether the value matches the canonical sort method enum.
func (c CartSortMethod) IsValid() bool {
	for _, candidate := range validCartSortMethods {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartSortMethod converts the raw string to CartSortMethod.
func ParseCartSortMethod(value string) (CartSortMethod, error) {
	for _, candidate := range validCartSortMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart sort method %q", value)
}

// ProductViewMode switches the catalog between card and list rendering.
type ProductViewMode string

const (
	ProductViewCard ProductViewMode = "card"
	ProductViewList ProductViewMode = "list"
)

var validProductViewModes = []ProductViewMode{
	ProductViewCard,
	ProductViewList,
}

// IsValid reports whether the value matches the canonical view mode enum.
func (p ProductViewMode) IsValid() bool {
	for _, candidate := range validProductViewModes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductViewMode converts the raw string to ProductViewMode.
func ParseProductViewMode(value string) (ProductViewMode, error) {
	for _, candidate := range validProductViewModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product view mode %q", value)
}
