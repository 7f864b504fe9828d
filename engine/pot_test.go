package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectBetsFromSingleLevelNoSidePot(t *testing.T) {
	pm := NewPotManager()
	bet := []int64{50, 50, 50}
	inHand := []bool{true, true, true}
	pm.CollectBetsFrom(bet, inHand)

	require.Len(t, pm.Pots, 1)
	assert.EqualValues(t, 150, pm.Pots[0].Amount)
	for seat := 0; seat < 3; seat++ {
		assert.True(t, pm.Pots[0].Eligible[seat], "seat %d should be eligible for the main pot", seat)
	}
}

func TestCollectBetsFromCreatesSidePotForShortAllIn(t *testing.T) {
	pm := NewPotManager()
	// seat 1 is all-in for 80, seats 0 and 2 committed 150 each.
	bet := []int64{150, 80, 150}
	inHand := []bool{true, true, true}
	pm.CollectBetsFrom(bet, inHand)

	require.Len(t, pm.Pots, 2)
	assert.EqualValues(t, 240, pm.Pots[0].Amount)
	for _, seat := range []int{0, 1, 2} {
		assert.True(t, pm.Pots[0].Eligible[seat], "seat %d should be eligible for the main pot", seat)
	}
	assert.EqualValues(t, 140, pm.Pots[1].Amount)
	assert.False(t, pm.Pots[1].Eligible[1], "the short all-in seat must not be eligible for the side pot")
	assert.True(t, pm.Pots[1].Eligible[0], "seat 0 should be eligible for the side pot")
	assert.True(t, pm.Pots[1].Eligible[2], "seat 2 should be eligible for the side pot")
	assert.EqualValues(t, 380, pm.Total())
}

func TestCollectBetsFromFoldedResidualIsDeadMoney(t *testing.T) {
	pm := NewPotManager()
	bet := []int64{25, 50, 0}
	inHand := []bool{false, true, true} // seat 0 folded holding a dead 25
	pm.CollectBetsFrom(bet, inHand)

	require.Len(t, pm.Pots, 1)
	assert.EqualValues(t, 75, pm.Pots[0].Amount)
	assert.False(t, pm.Pots[0].Eligible[0], "a folded seat's dead money must not grant eligibility")
	assert.True(t, pm.Pots[0].Eligible[1], "seat 1 contributed and is still in hand: should be eligible")
}

func TestCollectBetsFromFoldedResidualIsLayeredAcrossSidePots(t *testing.T) {
	pm := NewPotManager()
	// seat 0 folded holding 100 in front of it, seat 1 is all-in short
	// for 80, seat 2 is still live for 500: seat 0's dead money must be
	// split across both the 0-80 and 80-100 levels like a live
	// contributor's would be, not dumped whole into one pot.
	bet := []int64{100, 80, 500}
	inHand := []bool{false, true, true}
	pm.CollectBetsFrom(bet, inHand)

	require.Len(t, pm.Pots, 2)
	assert.EqualValues(t, 240, pm.Pots[0].Amount, "main pot: 80 from each of the three seats")
	assert.True(t, pm.Pots[0].Eligible[1])
	assert.True(t, pm.Pots[0].Eligible[2])
	assert.False(t, pm.Pots[0].Eligible[0], "folded seat 0's contribution is dead money")

	assert.EqualValues(t, 440, pm.Pots[1].Amount, "side pot: seat 0's remaining 20 plus seat 2's remaining 420")
	assert.True(t, pm.Pots[1].Eligible[2])
	assert.False(t, pm.Pots[1].Eligible[0], "folded seat 0's contribution is dead money")
	assert.False(t, pm.Pots[1].Eligible[1], "seat 1 is capped at the main pot")

	assert.EqualValues(t, 680, pm.Total(), "chip conservation: 100+80+500")
}

func TestRemoveEligibilityStripsSeatFromEveryPot(t *testing.T) {
	pm := NewPotManager()
	bet := []int64{150, 80, 150}
	inHand := []bool{true, true, true}
	pm.CollectBetsFrom(bet, inHand)

	// seat 0 folds on a later street, after having contributed to both pots.
	pm.RemoveEligibility(0)

	for i, pot := range pm.Pots {
		assert.False(t, pot.Eligible[0], "pot %d still lists the folded seat as eligible", i)
	}
}
