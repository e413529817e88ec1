package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/preflop-trainer/internal/randutil"
	"github.com/lox/preflop-trainer/poker"
)

// chiSquare returns the chi-square statistic of observed counts against a
// uniform expectation.
func chiSquare(counts []int, total int) float64 {
	expected := float64(total) / float64(len(counts))
	var stat float64
	for _, c := range counts {
		d := float64(c) - expected
		stat += d * d / expected
	}
	return stat
}

func TestGeneratorDealsValidScenarios(t *testing.T) {
	g := NewGenerator(randutil.New(1))
	for range 1000 {
		s := g.Next()
		require.True(t, s.Position.Valid())
		require.True(t, s.Cards.Valid())
		a, b := s.Cards.Cards()
		require.NotEqual(t, a, b)
		require.GreaterOrEqual(t, s.Roll, 0)
		require.Less(t, s.Roll, RollRange)
	}
}

func TestGeneratorIsDeterministicForSeed(t *testing.T) {
	a := NewGenerator(randutil.New(7))
	b := NewGenerator(randutil.New(7))
	for range 50 {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestGeneratorUniformity(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	const perCombo = 200
	const rounds = 1326 * perCombo

	g := NewGenerator(randutil.New(20240601))
	combos := make(map[poker.Hand]int, 1326)
	positions := make([]int, poker.NumPositions)
	// Position x hand kind contingency table for independence.
	var joint [poker.NumPositions][3]int

	for range rounds {
		s := g.Next()
		combos[s.Cards.Hand()]++
		positions[s.Position]++
		joint[s.Position][s.Class().Kind]++
	}

	require.Len(t, combos, 1326, "every two-card combination must be dealt")
	counts := make([]int, 0, len(combos))
	for _, n := range combos {
		counts = append(counts, n)
	}

	// df = 1325: mean 1325, sd ~51.5. Allow six standard deviations.
	assert.Less(t, chiSquare(counts, rounds), 1325+6*51.5)
	// df = 4: p(chi2 > 25) < 0.0001.
	assert.Less(t, chiSquare(positions, rounds), 25.0)

	kindShare := [3]float64{78.0 / 1326, 312.0 / 1326, 936.0 / 1326}
	var stat float64
	for pos := range poker.NumPositions {
		for kind := range 3 {
			expected := float64(positions[pos]) * kindShare[kind]
			d := float64(joint[pos][kind]) - expected
			stat += d * d / expected
		}
	}
	// df = 8: p(chi2 > 35) < 0.0001.
	assert.Less(t, stat, 35.0)
}

func TestWithPositions(t *testing.T) {
	g := NewGenerator(randutil.New(3), WithPositions(poker.BTN, poker.SB, poker.BTN))
	assert.Equal(t, []poker.Position{poker.BTN, poker.SB}, g.Positions())

	seen := map[poker.Position]int{}
	for range 500 {
		seen[g.Next().Position]++
	}
	assert.Len(t, seen, 2)
	assert.Positive(t, seen[poker.BTN])
	assert.Positive(t, seen[poker.SB])

	all := NewGenerator(randutil.New(3), WithPositions())
	assert.Len(t, all.Positions(), poker.NumPositions)
}

func TestWithFocusFavoursMixedHands(t *testing.T) {
	table := mustTable(t, map[poker.Position]string{poker.CO: "22+, K6s:0.5"})
	g := NewGenerator(randutil.New(11), WithPositions(poker.CO), WithFocus(table))

	k6s := poker.NewSuited(poker.King, poker.Six)
	hits := 0
	const rounds = 20000
	for range rounds {
		s := g.Next()
		require.True(t, s.Cards.Valid())
		if s.Class() == k6s {
			hits++
		}
	}

	// Weight 5000 against 13*50 + 155*20 = 3750 for everything else.
	share := float64(hits) / rounds
	assert.InDelta(t, 5000.0/8750.0, share, 0.03)
}
