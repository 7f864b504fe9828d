package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadsUpRound(stackA, stackB, biggestBet, minRaise int64) (*BettingRound, []*Player) {
	seats := []*Player{NewPlayer(stackA), NewPlayer(stackB)}
	round := NewBettingRound(seats, []bool{true, true}, 0, biggestBet, minRaise)
	return round, seats
}

func TestLegalActionsForShortStackOnlyOffersAllIn(t *testing.T) {
	round, _ := newHeadsUpRound(180, 2000, 150, 50)
	la := round.LegalActionsFor(0)
	require.True(t, la.CanRaise, "a stack above biggest_bet but short of a full raise should still be allowed to shove")
	assert.EqualValues(t, 180, la.MinRaise)
	assert.EqualValues(t, 180, la.MaxRaise)
}

func TestApplyRaiseShortAllInDoesNotReopenBetting(t *testing.T) {
	seats := []*Player{NewPlayer(2000), NewPlayer(80), NewPlayer(2000)}
	round := NewBettingRound(seats, []bool{true, true, true}, 0, 50, 50)

	// seat 0 raises to 150.
	reopened, err := round.ApplyRaise(0, 150)
	require.NoError(t, err)
	assert.True(t, reopened, "a full-size raise to 150 should reopen betting")
	assert.EqualValues(t, 100, round.MinRaise)

	// seat 1 can only call all-in for 80; raising is illegal.
	la := round.LegalActionsFor(1)
	assert.False(t, la.CanRaise, "seat 1's stack (80) does not exceed biggest_bet (150): raising must be illegal")
	require.NoError(t, round.ApplyMatch(1))
	assert.True(t, seats[1].IsAllIn(), "seat 1 should be all-in after matching for its whole stack")

	// seat 2 calls the full 150.
	require.NoError(t, round.ApplyMatch(2))

	assert.False(t, round.InProgress(), "the round should be over: seat 0 must not be offered a re-raise")
}

func TestApplyRaiseRejectsAmountOutsideWindow(t *testing.T) {
	round, _ := newHeadsUpRound(2000, 2000, 50, 50)
	_, err := round.ApplyRaise(0, 75)
	assert.Error(t, err, "expected an error raising to an amount below min_raise")
}

func TestApplyActionOutOfTurnIsRejected(t *testing.T) {
	round, _ := newHeadsUpRound(2000, 2000, 50, 50)
	assert.Error(t, round.ApplyMatch(1), "expected an error acting out of turn")
}
