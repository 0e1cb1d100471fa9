package extract

import (
	"testing"
)

func intVal(v *int) any {
	if v == nil {
		return "<nil>"
	}
	return *v
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"€ 309,900.-", 309900},
		{"€ 12.500", 12500},
		{"1.234,56", 1234.56},
		{"15000", 15000},
		{"15,5", 15.5},
		{"VB", 0},
		{"vb", 0},
		{"not deductible", 0},
		{"Δε Διατίθεται", 0},
		{"", 0},
		{"price on request", 0},
		{"€€ 7.990", 7990},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseOptionalAmount(t *testing.T) {
	if got := ParseOptionalAmount("not deductible"); got != nil {
		t.Fatalf("expected nil for literal, got %v", *got)
	}
	if got := ParseOptionalAmount(""); got != nil {
		t.Fatalf("expected nil for empty, got %v", *got)
	}
	got := ParseOptionalAmount("€ 10.000")
	if got == nil || *got != 10000 {
		t.Fatalf("expected 10000, got %v", got)
	}
}

func TestUnitNumber(t *testing.T) {
	if got := UnitNumber("20 310 km", "km"); got == nil || *got != 20310 {
		t.Fatalf("expected 20310, got %v", got)
	}
	if got := UnitNumber("126.250 km", "km"); got == nil || *got != 126250 {
		t.Fatalf("expected 126250, got %v", got)
	}
	if got := UnitNumber("490 kW (666 hp)", "kW"); got == nil || *got != 490 {
		t.Fatalf("expected 490, got %v", got)
	}
	if got := UnitNumber("166 PS", "kW", "PS"); got == nil || *got != 166 {
		t.Fatalf("expected 166 via PS fallback, got %v", got)
	}
	if got := UnitNumber("214.550 χλμ", "χλμ"); got == nil || *got != 214550 {
		t.Fatalf("expected 214550, got %v", got)
	}
	// Composite info lines must not bleed neighboring fields into the run.
	if got := UnitNumber("3/2004, 214.550 χλμ, 1.364 cc, 90 bhp, Βενζίνη", "χλμ"); got == nil || *got != 214550 {
		t.Fatalf("expected 214550 from composite line, got %v", intVal(got))
	}
	if got := UnitNumber("1 234 567 km", "km"); got == nil || *got != 1234567 {
		t.Fatalf("expected 1234567, got %v", intVal(got))
	}
	if got := UnitNumber("20310 km", "km"); got == nil || *got != 20310 {
		t.Fatalf("expected 20310 ungrouped, got %v", intVal(got))
	}
	if got := UnitNumber("no units here", "km"); got != nil {
		t.Fatalf("expected nil, got %d", *got)
	}
	if got := UnitNumber("90 bhp", "bhp"); got == nil || *got != 90 {
		t.Fatalf("expected 90, got %v", got)
	}
}

func TestYearOf(t *testing.T) {
	cases := []struct {
		in   string
		want int // 0 means expect nil
	}{
		{"03/2004", 2004},
		{"2004", 2004},
		{"15/06/2019", 2019},
		{"Juni 2004", 2004},
		{"NC", 0},
		{"", 0},
		{"First Registration", 0},
	}
	for _, tc := range cases {
		got := YearOf(tc.in)
		if tc.want == 0 {
			if got != nil {
				t.Fatalf("YearOf(%q) = %d, want nil", tc.in, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Fatalf("YearOf(%q) = %v, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMainModel(t *testing.T) {
	if got := MainModel("A4 TFSI quattro"); got != "A4" {
		t.Fatalf("expected A4, got %q", got)
	}
	if got := MainModel("   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestSplitTitle(t *testing.T) {
	brand, rest := SplitTitle("Audi A4 TFSI quattro")
	if brand != "Audi" || rest != "A4 TFSI quattro" {
		t.Fatalf("unexpected split: %q / %q", brand, rest)
	}
	brand, rest = SplitTitle("")
	if brand != "" || rest != "" {
		t.Fatalf("expected empty split, got %q / %q", brand, rest)
	}
}

func TestPlainText(t *testing.T) {
	if got := PlainText("<p>Leather seats</p>"); got != "Leather seats" {
		t.Fatalf("expected markup stripped, got %q", got)
	}
	if got := PlainText("  plain already  "); got != "plain already" {
		t.Fatalf("expected trimmed passthrough, got %q", got)
	}
}

func TestSplitWords(t *testing.T) {
	got := SplitWords("Year 2004 Kilometer 120000 Fuel type Diesel", "Year", "Kilometer", "Fuel", "type")
	want := []string{"2004", "120000", "Diesel"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestDoorsFromTags(t *testing.T) {
	if got := DoorsFromTags([]string{"Leather", "5 doors"}); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := DoorsFromTags([]string{"5 πόρτες"}); got != 5 {
		t.Fatalf("expected 5 from Greek tag, got %d", got)
	}
	if got := DoorsFromTags([]string{"Leather"}); got != 4 {
		t.Fatalf("expected default 4, got %d", got)
	}
	if got := DoorsFromTags(nil); got != 4 {
		t.Fatalf("expected default 4 for nil, got %d", got)
	}
}

func TestLeadingInt(t *testing.T) {
	if got := LeadingInt("166 PS"); got == nil || *got != 166 {
		t.Fatalf("expected 166, got %v", got)
	}
	if got := LeadingInt("none"); got != nil {
		t.Fatalf("expected nil, got %d", *got)
	}
}
