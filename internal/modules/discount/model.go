// README: Passenger categories and discount rules.
package discount

import (
	"strings"

	"farerail/internal/types"
)

type Category string

const (
	CategoryRegular     Category = "regular"
	CategoryStudent     Category = "student"
	CategorySeniorOrPWD Category = "senior_or_pwd"
)

var Categories = []Category{CategoryRegular, CategoryStudent, CategorySeniorOrPWD}

// ParseCategory accepts the wire names used by clients. "senior" and "pwd" share a rule.
func ParseCategory(v string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "regular":
		return CategoryRegular, true
	case "student":
		return CategoryStudent, true
	case "senior", "pwd", "senior_or_pwd":
		return CategorySeniorOrPWD, true
	}
	return "", false
}

// WireName is the value clients send for the category.
func (c Category) WireName() string {
	if c == CategorySeniorOrPWD {
		return "senior"
	}
	return string(c)
}

type Rule struct {
	Category Category
	Rate     types.Rate
}
