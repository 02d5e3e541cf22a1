package types

import "testing"

func TestMoneyString(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1040, "10.40"},
		{1500, "15.00"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		m := Money{Amount: tc.amount, Currency: DefaultCurrency}
		if got := m.String(); got != tc.want {
			t.Errorf("String(%d) = %s, want %s", tc.amount, got, tc.want)
		}
		b, _ := m.MarshalJSON()
		if string(b) != tc.want {
			t.Errorf("MarshalJSON(%d) = %s, want %s", tc.amount, b, tc.want)
		}
	}
}

func TestPeso(t *testing.T) {
	if got := Peso(13).Amount; got != 1300 {
		t.Errorf("Peso(13) = %d", got)
	}
	if got := Peso(0.1 + 0.2).Amount; got != 30 {
		t.Errorf("Peso(0.1+0.2) = %d", got)
	}
}

func TestDiscountedRoundsHalfUp(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		rate   Rate
		want   int64
	}{
		{"no discount", 1500, 0, 1500},
		{"20% of 13.00", 1300, 2000, 1040},
		{"50% of 0.25 rounds up", 25, 5000, 13},
		{"50% of 0.23 rounds up from .5", 23, 5000, 12},
		{"20% of 0.03 rounds down", 3, 2000, 2},
		{"33.33% of 10.00", 1000, 3333, 667},
		{"zero base", 0, 5000, 0},
	}
	for _, tc := range cases {
		got := Money{Amount: tc.amount, Currency: DefaultCurrency}.Discounted(tc.rate)
		if got.Amount != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got.Amount, tc.want)
		}
		if got.Currency != DefaultCurrency {
			t.Errorf("%s: currency %q dropped", tc.name, got.Currency)
		}
	}
}

func TestRate(t *testing.T) {
	r := RateFromFraction(0.2)
	if r != 2000 {
		t.Fatalf("RateFromFraction(0.2) = %d", r)
	}
	if r.Fraction() != 0.2 {
		t.Errorf("Fraction() = %v", r.Fraction())
	}
	b, _ := r.MarshalJSON()
	if string(b) != "0.2" {
		t.Errorf("MarshalJSON = %s", b)
	}
	b, _ = Rate(0).MarshalJSON()
	if string(b) != "0" {
		t.Errorf("zero MarshalJSON = %s", b)
	}

	valid := map[Rate]bool{0: true, 5000: true, 9999: true, 10000: false, -1: false}
	for rate, want := range valid {
		if rate.Valid() != want {
			t.Errorf("Rate(%d).Valid() = %v, want %v", rate, !want, want)
		}
	}
}
