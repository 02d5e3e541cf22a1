// README: Discount policy maps a passenger category to its network-wide rate.
package discount

import (
	"errors"
	"fmt"
	"slices"

	"farerail/internal/types"
)

var (
	ErrUnknownCategory  = errors.New("unknown passenger category")
	ErrInvalidRate      = errors.New("discount rate must be in [0, 1)")
	ErrConflictingRules = errors.New("conflicting discount rules")
)

type Policy struct {
	rates map[Category]types.Rate
}

// NewPolicy builds a policy from rules. Categories without a rule get rate 0.
// Repeated rules for one category are accepted only when they agree.
func NewPolicy(rules []Rule) (*Policy, error) {
	p := &Policy{rates: make(map[Category]types.Rate, len(Categories))}
	for _, c := range Categories {
		p.rates[c] = 0
	}
	seen := make(map[Category]bool, len(rules))
	for _, r := range rules {
		if !slices.Contains(Categories, r.Category) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, r.Category)
		}
		if !r.Rate.Valid() {
			return nil, fmt.Errorf("%w: %s has %v", ErrInvalidRate, r.Category, r.Rate.Fraction())
		}
		if r.Category == CategoryRegular && r.Rate != 0 {
			return nil, fmt.Errorf("%w: regular passengers carry no discount", ErrInvalidRate)
		}
		if seen[r.Category] && p.rates[r.Category] != r.Rate {
			return nil, fmt.Errorf("%w: %s", ErrConflictingRules, r.Category)
		}
		seen[r.Category] = true
		p.rates[r.Category] = r.Rate
	}
	return p, nil
}

func (p *Policy) DiscountRate(c Category) (types.Rate, error) {
	r, ok := p.rates[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return r, nil
}

// Rules lists one rule per category in Categories order.
func (p *Policy) Rules() []Rule {
	out := make([]Rule, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, Rule{Category: c, Rate: p.rates[c]})
	}
	return out
}
