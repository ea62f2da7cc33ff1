package classification

import (
	"fmt"
	"strings"

	"packhouse/internal/pkg/errs"
)

// Category is a size bucket product is sorted into.
type Category int

const (
	UnknownCategory Category = iota
	XL
	L
	M
	S
)

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{XL, L, M, S}
}

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		UnknownCategory: "Unknown",
		XL:              "XL",
		L:               "L",
		M:               "M",
		S:               "S",
	}
}

// ParseCategory accepts the category name in any case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}

	return UnknownCategory, errs.NewValueIsInvalidErrorWithCause(
		"category is invalid", fmt.Errorf("%q is not one of XL, L, M, S", s))
}

func (c Category) Validate() error {
	if c < XL || c > S {
		return errs.NewValueIsInvalidErrorWithCause("category is invalid", fmt.Errorf("%d is not a valid category", c))
	}

	return nil
}

func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}

	return "Unknown"
}
