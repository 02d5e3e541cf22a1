package discount

import (
	"errors"
	"testing"

	"farerail/internal/types"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"regular":       CategoryRegular,
		"Student":       CategoryStudent,
		"senior":        CategorySeniorOrPWD,
		"pwd":           CategorySeniorOrPWD,
		"senior_or_pwd": CategorySeniorOrPWD,
	}
	for in, want := range cases {
		got, ok := ParseCategory(in)
		if !ok || got != want {
			t.Errorf("ParseCategory(%q) = %q,%v want %q", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "child", "vip"} {
		if _, ok := ParseCategory(in); ok {
			t.Errorf("ParseCategory(%q) should fail", in)
		}
	}
	if CategorySeniorOrPWD.WireName() != "senior" || CategoryStudent.WireName() != "student" {
		t.Error("unexpected wire names")
	}
}

func TestPolicyRates(t *testing.T) {
	p, err := NewPolicy([]Rule{
		{Category: CategoryStudent, Rate: types.RateFromFraction(0.2)},
		{Category: CategorySeniorOrPWD, Rate: types.RateFromFraction(0.5)},
		// the same rule arriving twice (senior and pwd rows) collapses
		{Category: CategorySeniorOrPWD, Rate: types.RateFromFraction(0.5)},
	})
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	want := map[Category]types.Rate{CategoryRegular: 0, CategoryStudent: 2000, CategorySeniorOrPWD: 5000}
	for c, rate := range want {
		got, err := p.DiscountRate(c)
		if err != nil || got != rate {
			t.Errorf("DiscountRate(%s) = %d,%v want %d", c, got, err, rate)
		}
	}
	if _, err := p.DiscountRate("vip"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
	if rules := p.Rules(); len(rules) != 3 || rules[0].Category != CategoryRegular {
		t.Errorf("Rules() = %+v", rules)
	}
}

func TestPolicyMissingRuleIsZero(t *testing.T) {
	p, err := NewPolicy(nil)
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	if r, _ := p.DiscountRate(CategoryStudent); r != 0 {
		t.Errorf("expected 0, got %d", r)
	}
}

func TestPolicyRejects(t *testing.T) {
	cases := []struct {
		name  string
		rules []Rule
		want  error
	}{
		{"rate of one", []Rule{{Category: CategoryStudent, Rate: 10000}}, ErrInvalidRate},
		{"negative rate", []Rule{{Category: CategoryStudent, Rate: -1}}, ErrInvalidRate},
		{"discounted regular", []Rule{{Category: CategoryRegular, Rate: 100}}, ErrInvalidRate},
		{"conflict", []Rule{{Category: CategoryStudent, Rate: 2000}, {Category: CategoryStudent, Rate: 5000}}, ErrConflictingRules},
		{"unknown category", []Rule{{Category: "vip", Rate: 100}}, ErrUnknownCategory},
	}
	for _, tc := range cases {
		if _, err := NewPolicy(tc.rules); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
