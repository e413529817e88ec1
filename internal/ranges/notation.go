// Package ranges parses range notation and builds the per-position
// strategy table consulted by the trainer.
package ranges

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lox/preflop-trainer/poker"
)

// Range maps hand classes to the frequency with which they are raised.
// Classes that are absent are always folded.
type Range map[poker.HandClass]float64

// token is one parsed element of a range string, before "+" expansion.
type token struct {
	class poker.HandClass
	plus  bool
	freq  float64
}

// Parse turns a comma-separated range string such as
// "22+, A3s+, KTo+, K6s:0.5" into a Range. Parsing is all-or-nothing: the
// first bad token fails the whole string with a *ParseError. When two tokens
// cover the same class the later one wins.
func Parse(notation string) (Range, error) {
	r := make(Range)

	for raw := range strings.SplitSeq(notation, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		tok, err := parseToken(raw)
		if err != nil {
			return nil, err
		}
		for _, class := range tok.expand() {
			r[class] = tok.freq
		}
	}

	return r, nil
}

// MustParse is Parse for range literals known to be valid.
func MustParse(notation string) Range {
	r, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return r
}

// parseToken parses `<HandSpec>[+][:<frequency>]`.
func parseToken(raw string) (token, error) {
	body, freqStr, hasFreq := strings.Cut(raw, ":")
	body = strings.TrimSpace(body)

	tok := token{freq: 1.0}
	if hasFreq {
		freq, err := parseFrequency(raw, strings.TrimSpace(freqStr))
		if err != nil {
			return token{}, err
		}
		tok.freq = freq
	}

	if rest, ok := strings.CutSuffix(body, "+"); ok {
		tok.plus = true
		body = rest
	}

	if len(body) < 2 || len(body) > 3 {
		return token{}, malformed(raw, "hand must be 2 or 3 characters, got %q", body)
	}

	a, ok := poker.ParseRank(body[0])
	if !ok {
		return token{}, malformed(raw, "invalid rank %q", body[0])
	}
	b, ok := poker.ParseRank(body[1])
	if !ok {
		return token{}, malformed(raw, "invalid rank %q", body[1])
	}

	if len(body) == 2 {
		if a != b {
			return token{}, malformed(raw, "unpaired hand needs an s or o suffix")
		}
		tok.class = poker.NewPair(a)
		return tok, nil
	}

	if a == b {
		return token{}, malformed(raw, "pocket pair cannot be suited or offsuit")
	}
	switch body[2] {
	case 's':
		tok.class = poker.NewSuited(a, b)
	case 'o':
		tok.class = poker.NewOffsuit(a, b)
	default:
		return token{}, malformed(raw, "invalid suffix %q, want s or o", body[2])
	}
	return tok, nil
}

func parseFrequency(raw, s string) (float64, error) {
	freq, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed(raw, "invalid frequency %q", s)
	}
	if math.IsNaN(freq) || freq < 0 || freq > 1 {
		return 0, &ParseError{
			Token:  raw,
			Reason: fmt.Sprintf("%s is not within [0, 1]", s),
			Err:    ErrFrequencyOutOfRange,
		}
	}
	return freq, nil
}

// expand lists the classes a token covers. "RR+" runs from RR up to AA;
// "XYs+" and "XYo+" keep X and raise Y up to one below X.
func (t token) expand() []poker.HandClass {
	if !t.plus {
		return []poker.HandClass{t.class}
	}

	var classes []poker.HandClass
	if t.class.Kind == poker.Pair {
		for r := t.class.High; r <= poker.Ace; r++ {
			classes = append(classes, poker.NewPair(r))
		}
		return classes
	}

	for low := t.class.Low; low < t.class.High; low++ {
		classes = append(classes, poker.HandClass{Kind: t.class.Kind, High: t.class.High, Low: low})
	}
	return classes
}

// Frequency returns the raise frequency of class, 0 when absent.
func (r Range) Frequency(class poker.HandClass) float64 {
	return r[class]
}

// Classes returns the classes with a non-zero frequency in chart order.
func (r Range) Classes() []poker.HandClass {
	var classes []poker.HandClass
	for _, c := range poker.AllHandClasses() {
		if r[c] > 0 {
			classes = append(classes, c)
		}
	}
	return classes
}

// Coverage returns the share of all 1326 starting combinations raised,
// weighting each class by its frequency.
func (r Range) Coverage() float64 {
	var combos float64
	for c, freq := range r {
		combos += freq * float64(c.NumCombos())
	}
	return combos / 1326
}

// String renders the range as one token per class in chart order.
func (r Range) String() string {
	classes := r.Classes()
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		freq := r[c]
		if freq == 1 {
			parts = append(parts, c.String())
			continue
		}
		parts = append(parts, c.String()+":"+strconv.FormatFloat(freq, 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}
