package station

import (
	"errors"
	"testing"
)

func fixture() []Station {
	return []Station{
		{ID: 2, Name: "EDSA", Line: LineLRT1, Order: 1},
		{ID: 1, Name: "Baclaran", Line: LineLRT1, Order: 0},
		{ID: 10, Name: "Recto", Line: LineLRT2, Order: 0},
		{ID: 20, Name: "North Avenue", Line: LineMRT3, Order: 0},
		{ID: 21, Name: "Quezon Avenue", Line: LineMRT3, Order: 1},
	}
}

func TestParseLine(t *testing.T) {
	cases := []struct {
		in   string
		want Line
		ok   bool
	}{
		{"LRT1", LineLRT1, true},
		{"lrt1", LineLRT1, true},
		{" lrt-2 ", LineLRT2, true},
		{"MRT3", LineMRT3, true},
		{"LRT9", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseLine(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseLine(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRegistryList(t *testing.T) {
	r, err := NewRegistry(fixture())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	got := r.List(LineLRT1)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("LRT1 order = %+v", got)
	}

	unknown := r.List(Line("LRT9"))
	if unknown == nil || len(unknown) != 0 {
		t.Fatalf("expected empty non-nil slice for unknown line, got %#v", unknown)
	}

	all := r.All()
	if len(all) != 5 || all[0].Line != LineLRT1 || all[len(all)-1].ID != 21 {
		t.Fatalf("All() = %+v", all)
	}
	if r.Count(LineMRT3) != 2 || r.Len() != 5 {
		t.Errorf("Count/Len mismatch: %d %d", r.Count(LineMRT3), r.Len())
	}
}

func TestRegistryListIsACopy(t *testing.T) {
	r, _ := NewRegistry(fixture())
	got := r.List(LineLRT1)
	got[0].Name = "mutated"
	if s, _ := r.Lookup(1); s.Name != "Baclaran" {
		t.Fatalf("registry mutated through List: %q", s.Name)
	}
	if again := r.List(LineLRT1); again[0].Name != "Baclaran" {
		t.Fatalf("registry mutated through List: %q", again[0].Name)
	}
}

func TestRegistryOrderTieBreaksOnID(t *testing.T) {
	r, err := NewRegistry([]Station{
		{ID: 9, Name: "B", Line: LineLRT2},
		{ID: 4, Name: "A", Line: LineLRT2},
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	got := r.List(LineLRT2)
	if got[0].ID != 4 || got[1].ID != 9 {
		t.Fatalf("expected id tie-break, got %+v", got)
	}
}

func TestRegistryRejects(t *testing.T) {
	cases := []struct {
		name     string
		stations []Station
		want     error
	}{
		{"duplicate id across lines", []Station{{ID: 1, Name: "A", Line: LineLRT1}, {ID: 1, Name: "B", Line: LineMRT3}}, ErrDuplicateID},
		{"zero id", []Station{{ID: 0, Name: "A", Line: LineLRT1}}, ErrInvalidStation},
		{"blank name", []Station{{ID: 1, Name: "  ", Line: LineLRT1}}, ErrInvalidStation},
		{"unknown line", []Station{{ID: 1, Name: "A", Line: "LRT9"}}, ErrInvalidStation},
	}
	for _, tc := range cases {
		if _, err := NewRegistry(tc.stations); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
