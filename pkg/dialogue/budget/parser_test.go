package budget

import "testing"

func TestParse(t *testing.T) {
	const rate = 0.60

	tests := []struct {
		name   string
		text   string
		want   *Constraint
	}{
		{"empty text", "", nil},
		{"no numbers", "something cheap", nil},
		{"under keyword", "under 50000", &Constraint{Kind: Below, Max: 50000, MaxNative: 30000}},
		{"below keyword", "below 80000 yen", &Constraint{Kind: Below, Max: 80000, MaxNative: 48000}},
		{"less than", "less than 120000", &Constraint{Kind: Below, Max: 120000, MaxNative: 72000}},
		{"over keyword", "over 30000", &Constraint{Kind: Above, Min: 30000, MinNative: 18000}},
		{"at least", "at least 90000", &Constraint{Kind: Above, Min: 90000, MinNative: 54000}},
		{"around keyword", "around 80000", &Constraint{Kind: Around, Min: 64000, Max: 96000, Target: 80000, MinNative: 38400, MaxNative: 57600}},
		{"about keyword", "about 50000", &Constraint{Kind: Around, Min: 40000, Max: 60000, Target: 50000, MinNative: 24000, MaxNative: 36000}},
		{"bare number defaults to below", "50000", &Constraint{Kind: Below, Max: 50000, MaxNative: 30000}},
		{"k suffix", "under 80k", &Constraint{Kind: Below, Max: 80000, MaxNative: 48000}},
		{"fractional k suffix", "around 75.5k", &Constraint{Kind: Around, Min: 60400, Max: 90600, Target: 75500, MinNative: 36240, MaxNative: 54360}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text, rate)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
			if got == nil {
				return
			}
			if *got != *tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAllows(t *testing.T) {
	below := Parse("under 50000", 0.60)
	if !below.Allows(49999) || !below.Allows(50000) || below.Allows(50001) {
		t.Error("below constraint boundary wrong")
	}

	above := Parse("over 30000", 0.60)
	if above.Allows(29999) || !above.Allows(30000) {
		t.Error("above constraint boundary wrong")
	}

	around := Parse("around 80000", 0.60)
	if around.Allows(63999) || !around.Allows(64000) || !around.Allows(96000) || around.Allows(96001) {
		t.Error("around constraint boundary wrong")
	}

	var none *Constraint
	if !none.Allows(123456) {
		t.Error("nil constraint must allow everything")
	}
}
