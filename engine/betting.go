package engine

// LegalActions describes the actions currently available to the
// player to act, and the raise window if raising is legal.
type LegalActions struct {
	CanFold     bool
	CanMatch    bool
	MatchAmount int64
	CanRaise    bool
	MinRaise    int64
	MaxRaise    int64
}

// BettingRound wraps a RoundSequencer with the chip rules of one
// street: legal-action computation, raise sizing and applying actions
// to the shared seats slice. It borrows `seats` for its lifetime; it
// never owns or outlives the Dealer that constructs it.
type BettingRound struct {
	seats      []*Player
	Sequencer  *RoundSequencer
	BiggestBet int64
	MinRaise   int64
}

// NewBettingRound starts a betting round over seats (indexed by seat
// number, nil entries are empty/uninvolved seats), with activeMask
// marking who can act, firstToAct as the opening actor, and the
// street's initial biggest bet / minimum raise (see §4.3 for the
// preflop and postflop starting values).
func NewBettingRound(seats []*Player, activeMask []bool, firstToAct int, biggestBet, minRaise int64) *BettingRound {
	return &BettingRound{
		seats:      seats,
		Sequencer:  NewRoundSequencer(activeMask, firstToAct),
		BiggestBet: biggestBet,
		MinRaise:   minRaise,
	}
}

func (b *BettingRound) InProgress() bool {
	return b.Sequencer.InProgress
}

func (b *BettingRound) PlayerToAct() int {
	return b.Sequencer.PlayerToAct()
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// LegalActionsFor computes the legal actions available to seat, per
// §4.3. Valid whether or not seat is the current player to act.
func (b *BettingRound) LegalActionsFor(seat int) LegalActions {
	p := b.seats[seat]
	la := LegalActions{
		CanFold:     true,
		CanMatch:    true,
		MatchAmount: min64(b.BiggestBet, p.TotalChips()),
	}
	total := p.TotalChips()
	if total > b.BiggestBet {
		la.CanRaise = true
		minAllowed := b.BiggestBet + b.MinRaise
		if total < minAllowed {
			la.MinRaise = total
			la.MaxRaise = total
		} else {
			la.MinRaise = minAllowed
			la.MaxRaise = total
		}
	}
	return la
}

func (b *BettingRound) requireActor(seat int) error {
	if !b.Sequencer.InProgress {
		return HandStateError{Msg: "betting round is not in progress"}
	}
	if b.Sequencer.PlayerToAct() != seat {
		return IllegalActionError{Seat: seat, Msg: "not this seat's turn to act"}
	}
	return nil
}

// ApplyFold folds seat, retiring it from the hand.
func (b *BettingRound) ApplyFold(seat int) error {
	if err := b.requireActor(seat); err != nil {
		return err
	}
	b.Sequencer.ActionTaken(ActionFlags{Leave: true})
	return nil
}

// ForceFold retires seat immediately without requiring it to be the
// current player to act, for a stand-up that cannot wait for its turn.
func (b *BettingRound) ForceFold(seat int) {
	b.Sequencer.ForceLeave(seat)
}

// ApplyMatch checks or calls: seat bets min(biggest_bet, total_chips).
func (b *BettingRound) ApplyMatch(seat int) error {
	if err := b.requireActor(seat); err != nil {
		return err
	}
	p := b.seats[seat]
	amount := min64(b.BiggestBet, p.TotalChips())
	if err := p.Bet(amount); err != nil {
		return err
	}
	flags := ActionFlags{Passive: true, Leave: p.IsAllIn()}
	b.Sequencer.ActionTaken(flags)
	return nil
}

// ApplyRaise bets amount for seat, per the raise-sizing rules of
// §4.3. Returns whether the raise reopened betting (false for a short
// all-in that does not reopen the action for players who already
// acted).
func (b *BettingRound) ApplyRaise(seat int, amount int64) (reopened bool, err error) {
	if err := b.requireActor(seat); err != nil {
		return false, err
	}
	p := b.seats[seat]
	la := b.LegalActionsFor(seat)
	if !la.CanRaise {
		return false, IllegalActionError{Seat: seat, Action: ActionRaise, Msg: "no legal raise available"}
	}
	if amount < la.MinRaise || amount > la.MaxRaise {
		return false, IllegalRaiseError{Seat: seat, Amount: amount, Min: la.MinRaise, Max: la.MaxRaise}
	}

	minAllowed := b.BiggestBet + b.MinRaise
	reopened = amount >= minAllowed
	newMinRaise := amount - b.BiggestBet
	b.BiggestBet = amount
	if reopened {
		b.MinRaise = newMinRaise
	}

	if err := p.Bet(amount); err != nil {
		return false, err
	}
	flags := ActionFlags{Aggressive: reopened, Leave: p.IsAllIn()}
	b.Sequencer.ActionTaken(flags)
	return reopened, nil
}
