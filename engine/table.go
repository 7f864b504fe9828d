package engine

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"voyager.com/holdem/logging"
	"voyager.com/holdem/poker"
)

// Table is the public façade over one no-limit hold'em table: seat
// bookkeeping, the button, forced-bet configuration, automatic-action
// intents, and whichever Dealer is running the current hand, if any.
// A Table performs no I/O; callers own persistence and networking.
type Table struct {
	seats          []*Player
	numSeats       int
	button         int
	forcedBets     ForcedBets
	auto           *autoActionStore
	pendingStandUp []bool
	dealer         *Dealer
	logger         *zerolog.Logger
}

// NewTable creates an empty table with numSeats seats and no button
// assigned yet (set on the first StartHand).
func NewTable(numSeats int) *Table {
	return &Table{
		seats:          make([]*Player, numSeats),
		numSeats:       numSeats,
		button:         -1,
		auto:           newAutoActionStore(numSeats),
		pendingStandUp: make([]bool, numSeats),
		logger:         logging.GetZeroLogger("engine.table", nil),
	}
}

func (t *Table) SetForcedBets(fb ForcedBets) {
	t.forcedBets = fb
}

func (t *Table) ForcedBets() ForcedBets {
	return t.forcedBets
}

func (t *Table) Button() int {
	return t.button
}

func (t *Table) Seats() []*Player {
	return t.seats
}

// SitDown seats a new player at seat with buyIn chips. Legal only for
// an empty seat.
func (t *Table) SitDown(seat int, buyIn int64) error {
	if seat < 0 || seat >= t.numSeats {
		return SeatError{Seat: seat, Msg: "seat index out of range"}
	}
	if t.seats[seat] != nil {
		return SeatError{Seat: seat, Msg: "seat is occupied"}
	}
	t.seats[seat] = NewPlayer(buyIn)
	t.auto.Clear(seat)
	return nil
}

// StandUp removes a player from seat. Mid-hand, standing up while the
// seat is the current player to act folds immediately; otherwise it
// sets an automatic fold intent that fires the moment it becomes that
// seat's turn (or at once, when too few other contestants remain for
// the wait to matter). The seat itself is emptied when the hand ends.
func (t *Table) StandUp(seat int) error {
	if seat < 0 || seat >= t.numSeats {
		return SeatError{Seat: seat, Msg: "seat index out of range"}
	}
	if t.seats[seat] == nil {
		return SeatError{Seat: seat, Msg: "seat is already empty"}
	}
	if !t.HandInProgress() {
		t.seats[seat] = nil
		return nil
	}
	t.pendingStandUp[seat] = true
	if t.dealer.PlayerToAct() == seat {
		if err := t.applyRealAction(seat, ActionFold, 0); err != nil {
			return err
		}
		return t.resolveAutomaticActions()
	}
	t.auto.Set(seat, AutoFold)
	return t.collapsePendingStandUps()
}

// collapsePendingStandUps immediately folds every seat that has stood
// up but not yet had its turn, once so few genuine contestants remain
// that waiting for those turns can no longer change the outcome - a
// stand-up's fold is unconditional, so there is nothing left to
// resolve by making the round wait.
func (t *Table) collapsePendingStandUps() error {
	if t.dealer == nil {
		return nil
	}
	remaining := 0
	var pending []int
	for _, seat := range t.dealer.HandPlayers() {
		if !t.dealer.InHand(seat) {
			continue
		}
		if t.pendingStandUp[seat] {
			pending = append(pending, seat)
		} else {
			remaining++
		}
	}
	if remaining > 1 || len(pending) == 0 {
		return nil
	}
	for _, seat := range pending {
		t.dealer.ForceFold(seat)
		t.auto.Clear(seat)
	}
	return t.resolveAutomaticActions()
}

func (t *Table) HandInProgress() bool {
	return t.dealer != nil && t.dealer.Stage() != StageComplete
}

func (t *Table) BettingRoundInProgress() bool {
	return t.dealer != nil && t.dealer.BettingRoundInProgress()
}

func (t *Table) PlayerToAct() int {
	if t.dealer == nil {
		return -1
	}
	return t.dealer.PlayerToAct()
}

// NumActivePlayers is the number of hand seats still contesting the
// pot (not folded), whether or not they can still act.
func (t *Table) NumActivePlayers() int {
	if t.dealer == nil {
		return 0
	}
	return t.dealer.ContestantCount()
}

func (t *Table) HandPlayers() []int {
	if t.dealer == nil {
		return nil
	}
	return t.dealer.HandPlayers()
}

func (t *Table) Pots() []*Pot {
	if t.dealer == nil {
		return nil
	}
	return t.dealer.Pots()
}

func (t *Table) CommunityCards() []poker.Card {
	if t.dealer == nil {
		return nil
	}
	return t.dealer.CommunityCards()
}

func (t *Table) HoleCards(seat int) []poker.Card {
	if t.dealer == nil {
		return nil
	}
	return t.dealer.HoleCards(seat)
}

func (t *Table) HandStage() HandStage {
	if t.dealer == nil {
		return StageComplete
	}
	return t.dealer.Stage()
}

func (t *Table) Results() []PotResult {
	if t.dealer == nil {
		return nil
	}
	return t.dealer.Results()
}

// checkOccupiedSeat returns a SeatError if seat is out of range or has
// no player sitting in it, so observers can report a normal error
// instead of indexing into t.seats and panicking.
func (t *Table) checkOccupiedSeat(seat int) error {
	if seat < 0 || seat >= t.numSeats {
		return SeatError{Seat: seat, Msg: "seat index out of range"}
	}
	if t.seats[seat] == nil {
		return SeatError{Seat: seat, Msg: "seat is empty"}
	}
	return nil
}

// LegalActions reports the actions currently available to seat.
func (t *Table) LegalActions(seat int) (LegalActions, error) {
	if err := t.checkOccupiedSeat(seat); err != nil {
		return LegalActions{}, err
	}
	if t.dealer == nil || t.dealer.CurrentRound() == nil {
		return LegalActions{}, HandStateError{Msg: "no betting round in progress"}
	}
	return t.dealer.CurrentRound().LegalActionsFor(seat), nil
}

// LegalAutomaticActions reports which automatic-action intents seat
// may currently register, given whether their bet already matches the
// round's biggest bet.
func (t *Table) LegalAutomaticActions(seat int) (AutomaticActionFlags, error) {
	if err := t.checkOccupiedSeat(seat); err != nil {
		return 0, err
	}
	if t.dealer == nil || t.dealer.CurrentRound() == nil {
		return 0, HandStateError{Msg: "no betting round in progress"}
	}
	round := t.dealer.CurrentRound()
	matches := t.seats[seat].BetSize == round.BiggestBet
	return legalAutomaticActionFlags(matches), nil
}

func (t *Table) AutomaticAction(seat int) AutomaticAction {
	return t.auto.Get(seat)
}

// SetAutomaticAction registers seat's standing intent for the next
// time it is not their turn but action passes them - or, if it is
// already their turn, has no effect on the current decision.
func (t *Table) SetAutomaticAction(seat int, intent AutomaticAction) error {
	if intent == AutoNone {
		t.auto.Clear(seat)
		return nil
	}
	flags, err := t.LegalAutomaticActions(seat)
	if err != nil {
		return err
	}
	if !isAutomaticActionLegal(intent, flags) {
		return IllegalAutomaticActionError{Seat: seat, Action: intent}
	}
	t.auto.Set(seat, intent)
	return nil
}

// StartHand posts forced bets, deals the hole cards and opens the
// preflop betting round, using rng as the shuffle's entropy source.
// Requires at least 2 occupied seats with chips and no hand already
// in progress.
func (t *Table) StartHand(rng poker.RandSource) error {
	if t.HandInProgress() {
		return HandStateError{Msg: "a hand is already in progress"}
	}
	if t.button < 0 {
		t.button = t.firstOccupiedSeat(0)
		if t.button < 0 {
			return HandStateError{Msg: "no occupied seats"}
		}
	} else {
		t.button = t.nextOccupiedSeat(t.button)
	}

	dealer, err := StartHand(t.seats, t.button, t.forcedBets, rng, t.logger)
	if err != nil {
		return err
	}
	t.dealer = dealer
	for seat := range t.auto.intents {
		t.auto.Clear(seat)
	}
	return t.resolveAutomaticActions()
}

func (t *Table) firstOccupiedSeat(from int) int {
	for k := 0; k < t.numSeats; k++ {
		idx := (from + k) % t.numSeats
		if t.seats[idx] != nil {
			return idx
		}
	}
	return -1
}

func (t *Table) nextOccupiedSeat(from int) int {
	for k := 1; k <= t.numSeats; k++ {
		idx := (from + k) % t.numSeats
		if t.seats[idx] != nil {
			return idx
		}
	}
	return from
}

// ActionTaken applies a real action from the current player to act,
// then resolves any automatic actions it triggers for subsequent
// players in turn order.
func (t *Table) ActionTaken(seat int, action Action, amount int64) error {
	if err := t.applyRealAction(seat, action, amount); err != nil {
		return err
	}
	return t.resolveAutomaticActions()
}

// applyRealAction performs exactly one action with no automatic-action
// resolution, and updates standing intents for the bet increase a
// raise causes.
func (t *Table) applyRealAction(seat int, action Action, amount int64) error {
	round := t.dealer.CurrentRound()
	if round == nil {
		return HandStateError{Msg: "no betting round in progress"}
	}
	if t.logger != nil {
		t.logger.Debug().
			Str(logging.HandIDKey, t.dealer.HandID).
			Int(logging.SeatNumKey, seat).
			Str(logging.ActionKey, action.String()).
			Int64("amount", amount).
			Msg("action taken")
	}
	switch action {
	case ActionFold:
		return t.dealer.Fold(seat)
	case ActionCheck, ActionCall:
		return t.dealer.Match(seat)
	case ActionBet, ActionRaise:
		_, err := t.dealer.Raise(seat, amount)
		if err != nil {
			return err
		}
		// biggest_bet increases on every accepted raise, reopening or
		// not: a short all-in still forces a pending check_fold/check/
		// call_any intent ahead of it to be reconsidered.
		t.auto.onBetIncreased(t.seats[seat].IsAllIn())
		return nil
	default:
		return IllegalActionError{Seat: seat, Action: action, Msg: "unknown action"}
	}
}

// resolveAutomaticActions fires every standing intent that is still
// legal as play reaches it, looping until either no round is in
// progress or the player to act has no fireable intent.
func (t *Table) resolveAutomaticActions() error {
	for t.BettingRoundInProgress() {
		seat := t.dealer.PlayerToAct()
		if t.pendingStandUp[seat] {
			// a departed seat folds on its turn even when it could check
			t.auto.Clear(seat)
			if err := t.applyRealAction(seat, ActionFold, 0); err != nil {
				return errors.Wrap(err, "resolving automatic action")
			}
			continue
		}
		intent := t.auto.Get(seat)
		if intent == AutoNone {
			return nil
		}
		round := t.dealer.CurrentRound()
		la := round.LegalActionsFor(seat)
		matches := t.seats[seat].BetSize == round.BiggestBet
		if !isAutomaticActionLegal(intent, legalAutomaticActionFlags(matches)) {
			t.auto.Clear(seat)
			return nil
		}
		resolved := resolveAutoAction(intent, la)
		t.auto.Clear(seat)
		if err := t.applyRealAction(seat, resolved.action, resolved.amount); err != nil {
			return errors.Wrap(err, "resolving automatic action")
		}
	}
	return nil
}

// EndBettingRound collects the finished round's bets into the pots and
// advances the hand to the next street or to the showdown-deal phase.
func (t *Table) EndBettingRound() error {
	if t.dealer == nil {
		return HandStateError{Msg: "no hand in progress"}
	}
	if err := t.dealer.EndBettingRound(); err != nil {
		return err
	}
	return t.resolveAutomaticActions()
}

// Showdown evaluates every pot and credits winnings to stacks.
func (t *Table) Showdown() error {
	if t.dealer == nil {
		return HandStateError{Msg: "no hand in progress"}
	}
	if err := t.dealer.Showdown(); err != nil {
		return err
	}
	t.finishHandCleanup()
	return nil
}

// finishHandCleanup removes any seat that requested to stand up during
// the just-completed hand. Deferred until now because the dealer holds
// the same seats slice for the whole hand and expects every seat it
// dealt into to remain non-nil until the hand is over.
func (t *Table) finishHandCleanup() {
	for seat, pending := range t.pendingStandUp {
		if pending {
			t.seats[seat] = nil
			t.pendingStandUp[seat] = false
			t.auto.Clear(seat)
		}
	}
}
