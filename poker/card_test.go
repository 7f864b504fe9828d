package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCardRoundTripsThroughString(t *testing.T) {
	for _, s := range []string{"2c", "Th", "Jd", "Qs", "Ks", "Ac"} {
		c := NewCard(s)
		assert.Equal(t, s, c.String())
	}
}

func TestCardOrderingByRank(t *testing.T) {
	assert.Less(t, NewCard("2c").Rank(), NewCard("Ah").Rank())
}

func TestNewCardPanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() {
		NewCard("xx")
	})
}
