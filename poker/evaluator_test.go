package poker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func mustCards(t *testing.T, ranks []string) []Card {
	t.Helper()
	cards := make([]Card, len(ranks))
	for i, r := range ranks {
		cards[i] = NewCard(r)
	}
	return cards
}

func TestEvaluateCategories(t *testing.T) {
	testCases := []struct {
		name     string
		cards    []string
		expected Category
	}{
		{
			name:     "straight flush",
			cards:    []string{"9s", "Ts", "Js", "Qs", "Ks", "2h", "3d"},
			expected: StraightFlush,
		},
		{
			name:     "four of a kind",
			cards:    []string{"9s", "9h", "9d", "9c", "Ks", "2h", "3d"},
			expected: FourOfAKind,
		},
		{
			name:     "full house",
			cards:    []string{"9s", "9h", "9d", "Kc", "Ks", "2h", "3d"},
			expected: FullHouse,
		},
		{
			name:     "flush",
			cards:    []string{"9s", "2s", "5s", "Ks", "8s", "2h", "3d"},
			expected: Flush,
		},
		{
			name:     "straight",
			cards:    []string{"9s", "Th", "Jd", "Qc", "Ks", "2h", "3d"},
			expected: Straight,
		},
		{
			name:     "wheel straight, ace low",
			cards:    []string{"As", "2h", "3d", "4c", "5s", "Kh", "Qd"},
			expected: Straight,
		},
		{
			name:     "three of a kind",
			cards:    []string{"9s", "9h", "9d", "Kc", "2s", "5h", "3d"},
			expected: ThreeOfAKind,
		},
		{
			name:     "two pair",
			cards:    []string{"9s", "9h", "Kd", "Kc", "2s", "5h", "3d"},
			expected: TwoPair,
		},
		{
			name:     "pair",
			cards:    []string{"9s", "9h", "Kd", "Qc", "2s", "5h", "3d"},
			expected: Pair,
		},
		{
			name:     "high card",
			cards:    []string{"9s", "Jh", "Kd", "Qc", "2s", "5h", "3d"},
			expected: HighCard,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ranking := Evaluate(mustCards(t, tc.cards))
			assert.Equal(t, tc.expected, ranking.Category)
		})
	}
}

func TestWheelRanksBelowSixHighStraight(t *testing.T) {
	wheel := Evaluate(mustCards(t, []string{"As", "2h", "3d", "4c", "5s", "9h", "Kd"}))
	sixHigh := Evaluate(mustCards(t, []string{"2s", "3h", "4d", "5c", "6s", "9h", "Kd"}))

	assert.Equal(t, Straight, wheel.Category)
	assert.Equal(t, Straight, sixHigh.Category)
	assert.Negative(t, wheel.Compare(sixHigh), "expected wheel straight to rank below 2-6 straight")
}

func TestEvaluateBreaksTiesByKicker(t *testing.T) {
	pairAceKicker := Evaluate(mustCards(t, []string{"9s", "9h", "Ad", "Kc", "2s", "5h", "3d"}))
	pairQueenKicker := Evaluate(mustCards(t, []string{"9s", "9h", "Qd", "Kc", "2s", "5h", "3d"}))

	assert.Positive(t, pairAceKicker.Compare(pairQueenKicker), "expected ace-kicker pair to beat queen-kicker pair")
}

func TestEvaluatePanicsOnTooFewCards(t *testing.T) {
	assert.Panics(t, func() {
		Evaluate(mustCards(t, []string{"9s", "9h"}))
	})
}

func TestEvaluateFullHouseKickersRankTripsBeforePair(t *testing.T) {
	nines := Evaluate(mustCards(t, []string{"9s", "9h", "9d", "Kc", "Ks", "2h", "3d"}))
	kings := Evaluate(mustCards(t, []string{"Ks", "Kh", "Kd", "9c", "9s", "2h", "3d"}))

	want := HandRanking{Category: FullHouse, Kickers: [5]int32{11, 7, -1, -1, -1}}
	if diff := cmp.Diff(want, kings); diff != "" {
		t.Errorf("kings-full ranking mismatch (-want +got):\n%s", diff)
	}
	assert.Positive(t, kings.Compare(nines), "kings full of nines should beat nines full of kings")
}
