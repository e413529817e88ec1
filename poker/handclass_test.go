package poker

import (
	"errors"
	"testing"
)

func TestClassifyCoversAllCombinations(t *testing.T) {
	t.Parallel()
	counts := make(map[HandClass]int)
	pairs := 0

	for i := range 52 {
		for j := i + 1; j < 52; j++ {
			a := Card(1) << i
			b := Card(1) << j
			h, err := NewHoleCards(a, b)
			if err != nil {
				t.Fatal(err)
			}
			c := Classify(h)
			if !c.Valid() {
				t.Fatalf("Classify(%s) returned invalid class %+v", h, c)
			}
			swapped := Classify(MustHoleCards(b, a))
			if swapped != c {
				t.Fatalf("Classify not symmetric for %s: %s vs %s", h, c, swapped)
			}
			counts[c]++
			if c.Kind == Pair {
				pairs++
			}
		}
	}

	if len(counts) != NumHandClasses {
		t.Fatalf("Expected %d classes, got %d", NumHandClasses, len(counts))
	}
	for c, n := range counts {
		if n != c.NumCombos() {
			t.Errorf("%s: expected %d combos, got %d", c, c.NumCombos(), n)
		}
	}
	if pairs != 78 {
		t.Errorf("Expected 78 pair combos, got %d", pairs)
	}
}

func TestClassifyExamples(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  string
	}{
		{"AsKd", "AKo"},
		{"KdAs", "AKo"},
		{"AhKh", "AKs"},
		{"7c7d", "77"},
		{"2c3c", "32s"},
		{"Td9s", "T9o"},
	}
	for _, tt := range tests {
		h, err := ParseHoleCards(tt.cards)
		if err != nil {
			t.Fatal(err)
		}
		if got := h.Class().String(); got != tt.want {
			t.Errorf("Classify(%s) = %s, want %s", tt.cards, got, tt.want)
		}
	}
}

func TestHandClassIndexIsBijective(t *testing.T) {
	t.Parallel()
	all := AllHandClasses()
	if len(all) != NumHandClasses {
		t.Fatalf("Expected %d classes, got %d", NumHandClasses, len(all))
	}

	var suited, offsuit, pairs int
	seen := make(map[HandClass]bool)
	for i, c := range all {
		if !c.Valid() {
			t.Errorf("index %d: invalid class %+v", i, c)
		}
		if c.Index() != i {
			t.Errorf("%s: Index() = %d, want %d", c, c.Index(), i)
		}
		if seen[c] {
			t.Errorf("duplicate class %s", c)
		}
		seen[c] = true
		switch c.Kind {
		case Pair:
			pairs++
		case Suited:
			suited++
		case Offsuit:
			offsuit++
		}
	}
	if pairs != 13 || suited != 78 || offsuit != 78 {
		t.Errorf("got %d pairs, %d suited, %d offsuit", pairs, suited, offsuit)
	}

	if got := ClassAt(0, 0).String(); got != "AA" {
		t.Errorf("top-left cell = %s, want AA", got)
	}
	if got := ClassAt(0, 1).String(); got != "AKs" {
		t.Errorf("cell (0,1) = %s, want AKs", got)
	}
	if got := ClassAt(1, 0).String(); got != "AKo" {
		t.Errorf("cell (1,0) = %s, want AKo", got)
	}
	if got := ClassAt(12, 12).String(); got != "22" {
		t.Errorf("bottom-right cell = %s, want 22", got)
	}
}

func TestParseHandClass(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    HandClass
		wantErr bool
	}{
		{input: "AA", want: NewPair(Ace)},
		{input: "AKs", want: HandClass{Kind: Suited, High: Ace, Low: King}},
		{input: "KAs", want: HandClass{Kind: Suited, High: Ace, Low: King}},
		{input: "T9o", want: HandClass{Kind: Offsuit, High: Ten, Low: Nine}},
		{input: "AK", wantErr: true},
		{input: "77s", wantErr: true},
		{input: "AKx", wantErr: true},
		{input: "1A", wantErr: true},
		{input: "akS", wantErr: true},
		{input: "A", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseHandClass(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHandClass(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHandClass(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHandClassCombos(t *testing.T) {
	t.Parallel()
	for _, c := range AllHandClasses() {
		combos := c.Combos()
		if len(combos) != c.NumCombos() {
			t.Fatalf("%s: %d combos, want %d", c, len(combos), c.NumCombos())
		}
		for _, h := range combos {
			if h.Class() != c {
				t.Errorf("%s: combo %s classifies as %s", c, h, h.Class())
			}
		}
	}
}

func TestParsePosition(t *testing.T) {
	t.Parallel()
	for _, p := range Positions {
		got, err := ParsePosition(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePosition(%q) = %v, %v", p.String(), got, err)
		}
	}
	if got, err := ParsePosition(" btn "); err != nil || got != BTN {
		t.Errorf("ParsePosition should be case-insensitive, got %v, %v", got, err)
	}
	for _, bad := range []string{"BB", "HJ", ""} {
		if _, err := ParsePosition(bad); err == nil {
			t.Errorf("ParsePosition(%q) should fail", bad)
		}
	}
}

func TestPositionUnmarshalText(t *testing.T) {
	t.Parallel()
	var p Position
	if err := p.UnmarshalText([]byte("co")); err != nil || p != CO {
		t.Errorf("UnmarshalText(co) = %v, %v", p, err)
	}
	if err := p.UnmarshalText([]byte("BB")); !errors.Is(err, ErrUnknownPosition) {
		t.Errorf("UnmarshalText(BB) error = %v, want ErrUnknownPosition", err)
	}
	if p != CO {
		t.Errorf("failed UnmarshalText should leave the value unchanged, got %v", p)
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()
	for input, want := range map[string]Action{"r": Raise, "RAISE": Raise, "f": Fold, "fold": Fold} {
		got, err := ParseAction(input)
		if err != nil || got != want {
			t.Errorf("ParseAction(%q) = %v, %v", input, got, err)
		}
	}
	if _, err := ParseAction("call"); err == nil {
		t.Error("call is not an opening action")
	}
}
