package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundSequencerEndsAfterFullOrbitWithNoRaise(t *testing.T) {
	mask := []bool{true, true, true}
	s := NewRoundSequencer(mask, 0)
	require.True(t, s.InProgress, "expected a 3-active round to start in progress")
	s.ActionTaken(ActionFlags{Passive: true})
	s.ActionTaken(ActionFlags{Passive: true})
	assert.True(t, s.InProgress, "round should still be open before the orbit returns to the opener")
	s.ActionTaken(ActionFlags{Passive: true})
	assert.False(t, s.InProgress, "round should close once play returns to last_aggressor with no raises")
}

func TestRoundSequencerReopensOnAggressiveAction(t *testing.T) {
	mask := []bool{true, true, true}
	s := NewRoundSequencer(mask, 0)
	s.ActionTaken(ActionFlags{Passive: true})    // seat 0 calls
	s.ActionTaken(ActionFlags{Aggressive: true}) // seat 1 raises, becomes new aggressor
	require.True(t, s.InProgress, "round must stay open right after the raise")
	assert.Equal(t, 2, s.PlayerToAct())
	s.ActionTaken(ActionFlags{Passive: true}) // seat 2 calls the raise
	assert.True(t, s.InProgress, "round must stay open until action returns to the new aggressor")
	s.ActionTaken(ActionFlags{Passive: true}) // seat 0 calls, completing the new orbit
	assert.False(t, s.InProgress, "round should close once play returns to the raiser")
}

func TestRoundSequencerTerminatesWhenAggressorShovesAllIn(t *testing.T) {
	mask := []bool{true, true, true}
	s := NewRoundSequencer(mask, 0)
	// seat 0 raises and is left all-in by its own action.
	s.ActionTaken(ActionFlags{Aggressive: true, Leave: true})
	require.False(t, s.IsActive(0), "seat 0 should be inactive after leaving all-in")
	s.ActionTaken(ActionFlags{Passive: true}) // seat 1 calls
	assert.True(t, s.InProgress, "round should still be open before seat 2 acts")
	s.ActionTaken(ActionFlags{Passive: true}) // seat 2 calls
	assert.False(t, s.InProgress, "round should close once action returns to the all-in aggressor's seat")
}

func TestRoundSequencerClosesWhenOnlyOneSeatRemains(t *testing.T) {
	mask := []bool{true, true, true}
	s := NewRoundSequencer(mask, 0)
	s.ActionTaken(ActionFlags{Leave: true}) // seat 0 folds
	s.ActionTaken(ActionFlags{Leave: true}) // seat 1 folds
	assert.False(t, s.InProgress, "round should close once only one seat remains active")
	assert.Equal(t, 1, s.NumActive())
}

func TestForceLeaveOutOfTurnDoesNotDisturbTheActor(t *testing.T) {
	mask := []bool{true, true, true}
	s := NewRoundSequencer(mask, 0)
	s.ForceLeave(2)
	assert.Equal(t, 0, s.PlayerToAct(), "unaffected by an out-of-turn departure")
	require.Equal(t, 2, s.NumActive())
	s.ForceLeave(1)
	assert.False(t, s.InProgress, "round should close once ForceLeave drops active count to 1")
}
