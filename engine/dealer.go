package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"voyager.com/holdem/logging"
	"voyager.com/holdem/poker"
)

const (
	stagePreflop  = "preflop"
	stageFlop     = "flop"
	stageTurn     = "turn"
	stageRiver    = "river"
	stageShowdown = "showdown"
	stageComplete = "complete"
)

var fsmToHandStage = map[string]HandStage{
	stagePreflop:  StagePreflop,
	stageFlop:     StageFlop,
	stageTurn:     StageTurn,
	stageRiver:    StageRiver,
	stageShowdown: StageShowdown,
	stageComplete: StageComplete,
}

// PotResult records how one pot was decided at showdown.
type PotResult struct {
	Amount         int64
	Winners        []int
	SharePerWinner int64
	Remainder      int64
}

// Dealer drives one hand from posting forced bets through showdown. It
// owns the pots, the current betting round, the deck and the
// community cards; it refers to seated players only by seat index,
// through the shared seats slice handed to it by the Table.
type Dealer struct {
	HandID string

	seats      []*Player
	sm         *fsm.FSM
	deck       *poker.Deck
	board      []poker.Card
	hole       map[int][]poker.Card
	handSeats  []int
	inHand     []bool
	current    *BettingRound
	pots       *PotManager
	forcedBets ForcedBets
	buttonSeat int
	results    []PotResult
	logger     *zerolog.Logger
}

// StartHand posts forced bets, deals hole cards and opens the preflop
// betting round over every occupied seat with chips, starting from
// buttonSeat. Requires at least 2 such seats.
func StartHand(seats []*Player, buttonSeat int, forcedBets ForcedBets, rng poker.RandSource, logger *zerolog.Logger) (*Dealer, error) {
	n := len(seats)
	var handSeats []int
	for k := 0; k < n; k++ {
		idx := (buttonSeat + k) % n
		if seats[idx] != nil && seats[idx].Stack > 0 {
			handSeats = append(handSeats, idx)
		}
	}
	if len(handSeats) < 2 {
		return nil, HandStateError{Msg: "need at least 2 seated players with chips to start a hand"}
	}

	d := &Dealer{
		HandID:     uuid.NewString(),
		seats:      seats,
		deck:       poker.NewShuffledDeck(rng),
		hole:       make(map[int][]poker.Card, len(handSeats)),
		handSeats:  handSeats,
		inHand:     make([]bool, n),
		pots:       NewPotManager(),
		forcedBets: forcedBets,
		buttonSeat: buttonSeat,
		logger:     logger,
	}
	for _, s := range handSeats {
		d.inHand[s] = true
	}
	d.sm = newHandStageMachine(d)

	d.postAntesAndBlinds()
	d.dealHoleCards()

	mask := d.activeMaskExcludingAllIn()
	first := firstActiveSeat(mask, d.preflopFirstToAct())
	d.current = NewBettingRound(d.seats, mask, first, forcedBets.BigBlind, forcedBets.BigBlind)

	if d.logger != nil {
		d.logger.Debug().Str(logging.HandIDKey, d.HandID).Int("button", buttonSeat).Msg("hand started")
	}

	if !d.current.InProgress() {
		d.collectCurrentRoundBets()
		if err := d.advanceAfterRound(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func newHandStageMachine(d *Dealer) *fsm.FSM {
	return fsm.NewFSM(
		stagePreflop,
		fsm.Events{
			{Name: "deal_flop", Src: []string{stagePreflop}, Dst: stageFlop},
			{Name: "deal_turn", Src: []string{stageFlop}, Dst: stageTurn},
			{Name: "deal_river", Src: []string{stageTurn}, Dst: stageRiver},
			{Name: "showdown", Src: []string{stagePreflop, stageFlop, stageTurn, stageRiver}, Dst: stageShowdown},
			{Name: "complete", Src: []string{stageShowdown}, Dst: stageComplete},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				if d.logger != nil {
					d.logger.Debug().Str(logging.HandIDKey, d.HandID).Str(logging.StreetKey, e.Dst).Str("from", e.Src).Msg("hand stage transition")
				}
			},
		},
	)
}

func (d *Dealer) postAntesAndBlinds() {
	if d.forcedBets.Ante > 0 {
		main := d.pots.Pots[0]
		for _, s := range d.handSeats {
			p := d.seats[s]
			amt := min64(d.forcedBets.Ante, p.TotalChips())
			_ = p.Bet(amt)
			main.add(s, amt, true)
			p.ResetBet()
		}
	}

	if len(d.handSeats) == 2 {
		d.postBlind(d.handSeats[0], d.forcedBets.SmallBlind)
		d.postBlind(d.handSeats[1], d.forcedBets.BigBlind)
	} else {
		d.postBlind(d.handSeats[1], d.forcedBets.SmallBlind)
		d.postBlind(d.handSeats[2], d.forcedBets.BigBlind)
	}
}

func (d *Dealer) postBlind(seat int, amount int64) {
	p := d.seats[seat]
	owed := min64(amount, p.TotalChips())
	_ = p.Bet(owed)
}

// preflopFirstToAct is the seat after the big blind; heads-up, the
// button (small blind) acts first. handSeats is ordered starting at
// the button, so with three or more players handSeats[1] is the small
// blind, handSeats[2] the big blind, and handSeats[3%len] acts first.
func (d *Dealer) preflopFirstToAct() int {
	if len(d.handSeats) == 2 {
		return d.buttonSeat
	}
	return d.handSeats[3%len(d.handSeats)]
}

func (d *Dealer) dealHoleCards() {
	for round := 0; round < 2; round++ {
		for _, s := range d.handSeats {
			d.hole[s] = append(d.hole[s], d.deck.Draw(1)...)
		}
	}
}

func (d *Dealer) activeMaskExcludingAllIn() []bool {
	mask := make([]bool, len(d.seats))
	for _, s := range d.handSeats {
		if d.inHand[s] && !d.seats[s].IsAllIn() {
			mask[s] = true
		}
	}
	return mask
}

// firstActiveSeat returns the first seat at or after start (wrapping)
// whose bit is set in mask, or start unchanged if none is.
func firstActiveSeat(mask []bool, start int) int {
	n := len(mask)
	for k := 0; k < n; k++ {
		idx := (start + k) % n
		if mask[idx] {
			return idx
		}
	}
	return start
}

func (d *Dealer) Stage() HandStage {
	return fsmToHandStage[d.sm.Current()]
}

func (d *Dealer) BettingRoundInProgress() bool {
	return d.current != nil && d.current.InProgress()
}

func (d *Dealer) CurrentRound() *BettingRound {
	return d.current
}

func (d *Dealer) PlayerToAct() int {
	if d.current == nil {
		return -1
	}
	return d.current.PlayerToAct()
}

func (d *Dealer) Pots() []*Pot {
	return d.pots.Pots
}

func (d *Dealer) CommunityCards() []poker.Card {
	return append([]poker.Card(nil), d.board...)
}

func (d *Dealer) HoleCards(seat int) []poker.Card {
	return append([]poker.Card(nil), d.hole[seat]...)
}

func (d *Dealer) HandPlayers() []int {
	return append([]int(nil), d.handSeats...)
}

func (d *Dealer) InHand(seat int) bool {
	return d.inHand[seat]
}

func (d *Dealer) Results() []PotResult {
	return append([]PotResult(nil), d.results...)
}

// Fold retires seat from the hand: applied both for a real fold and
// for the pot-eligibility bookkeeping it implies.
func (d *Dealer) Fold(seat int) error {
	if err := d.current.ApplyFold(seat); err != nil {
		return err
	}
	d.inHand[seat] = false
	d.pots.RemoveEligibility(seat)
	return nil
}

func (d *Dealer) Match(seat int) error {
	return d.current.ApplyMatch(seat)
}

// ForceFold retires seat immediately regardless of turn order: used
// when a seat stands up before its turn arrives and so few
// contestants remain that waiting no longer serves any purpose.
func (d *Dealer) ForceFold(seat int) {
	if d.current != nil {
		d.current.ForceFold(seat)
	}
	d.inHand[seat] = false
	d.pots.RemoveEligibility(seat)
}

func (d *Dealer) Raise(seat int, amount int64) (bool, error) {
	return d.current.ApplyRaise(seat, amount)
}

// EndBettingRound collects the finished round's bets into the pots and
// advances the hand: to the next street's betting round, or to the
// showdown-deal phase (all remaining community cards dealt, no
// further betting possible).
func (d *Dealer) EndBettingRound() error {
	if d.current == nil || d.current.InProgress() {
		return HandStateError{Msg: "betting round is still in progress"}
	}
	d.collectCurrentRoundBets()
	return d.advanceAfterRound()
}

func (d *Dealer) collectCurrentRoundBets() {
	bet := make([]int64, len(d.seats))
	for _, s := range d.handSeats {
		bet[s] = d.seats[s].BetSize
	}
	d.pots.CollectBetsFrom(bet, d.inHand)
	for _, s := range d.handSeats {
		d.seats[s].ResetBet()
	}
}

// ContestantCount is the number of hand seats that have not folded,
// regardless of whether they can still act (an all-in seat still
// contests the pot).
func (d *Dealer) ContestantCount() int {
	return d.contestantCount()
}

func (d *Dealer) contestantCount() int {
	n := 0
	for _, s := range d.handSeats {
		if d.inHand[s] {
			n++
		}
	}
	return n
}

func (d *Dealer) nonAllInCount() int {
	n := 0
	for _, s := range d.handSeats {
		if d.inHand[s] && !d.seats[s].IsAllIn() {
			n++
		}
	}
	return n
}

func (d *Dealer) advanceAfterRound() error {
	if d.contestantCount() <= 1 {
		d.awardWalkoverEligibility()
		d.dealRemainingBoard()
		return d.gotoShowdown()
	}
	boardComplete := len(d.board) == 5
	if d.nonAllInCount() <= 1 || boardComplete {
		d.dealRemainingBoard()
		return d.gotoShowdown()
	}
	return d.dealNextStreet()
}

// awardWalkoverEligibility makes the sole remaining contestant
// eligible for every open pot. Reachable only when everyone else has
// folded: the survivor wins by default even for a pot they never had
// to put a chip into this street.
func (d *Dealer) awardWalkoverEligibility() {
	sole, n := -1, 0
	for _, s := range d.handSeats {
		if d.inHand[s] {
			sole, n = s, n+1
		}
	}
	if n != 1 {
		return
	}
	for _, pot := range d.pots.Pots {
		pot.Eligible[sole] = true
	}
}

func (d *Dealer) dealRemainingBoard() {
	if len(d.board) == 0 {
		d.deck.Burn()
		d.board = append(d.board, d.deck.Draw(3)...)
	}
	for len(d.board) < 5 {
		d.deck.Burn()
		d.board = append(d.board, d.deck.Draw(1)...)
	}
}

func (d *Dealer) dealNextStreet() error {
	var event string
	switch d.sm.Current() {
	case stagePreflop:
		d.deck.Burn()
		d.board = append(d.board, d.deck.Draw(3)...)
		event = "deal_flop"
	case stageFlop:
		d.deck.Burn()
		d.board = append(d.board, d.deck.Draw(1)...)
		event = "deal_turn"
	case stageTurn:
		d.deck.Burn()
		d.board = append(d.board, d.deck.Draw(1)...)
		event = "deal_river"
	default:
		return HandStateError{Msg: fmt.Sprintf("cannot deal a new street from stage %s", d.sm.Current())}
	}
	if err := d.sm.Event(event); err != nil {
		return errors.Wrap(err, "hand stage transition")
	}
	mask := d.activeMaskExcludingAllIn()
	first := firstActiveSeat(mask, (d.buttonSeat+1)%len(d.seats))
	d.current = NewBettingRound(d.seats, mask, first, 0, d.forcedBets.BigBlind)
	return nil
}

func (d *Dealer) gotoShowdown() error {
	d.current = nil
	if err := d.sm.Event("showdown"); err != nil {
		return errors.Wrap(err, "hand stage transition")
	}
	return nil
}

// Showdown evaluates every pot's eligible hands and credits winnings
// to stacks. Only legal once the dealer has reached the showdown
// stage (no further betting possible).
func (d *Dealer) Showdown() error {
	if d.sm.Current() != stageShowdown {
		return HandStateError{Msg: "hand is not ready for showdown"}
	}
	d.results = make([]PotResult, 0, len(d.pots.Pots))
	for i, pot := range d.pots.Pots {
		if pot.Amount == 0 {
			continue
		}
		winners := d.potWinners(pot)
		result, perSeat := d.split(pot.Amount, winners)
		for seat, amount := range perSeat {
			d.seats[seat].Stack += amount
		}
		d.results = append(d.results, result)
		if d.logger != nil {
			d.logger.Info().
				Str(logging.HandIDKey, d.HandID).
				Int(logging.PotIndexKey, i).
				Int64("amount", result.Amount).
				Ints("winners", result.Winners).
				Msg("pot awarded")
		}
	}
	if err := d.sm.Event("complete"); err != nil {
		return errors.Wrap(err, "hand stage transition")
	}
	return nil
}

func (d *Dealer) potWinners(pot *Pot) []int {
	eligible := make([]int, 0, len(pot.Eligible))
	for s := range pot.Eligible {
		eligible = append(eligible, s)
	}
	sort.Ints(eligible)
	if len(eligible) <= 1 {
		return eligible
	}

	var best poker.HandRanking
	var winners []int
	for i, s := range eligible {
		cards := append(append([]poker.Card{}, d.hole[s]...), d.board...)
		r := poker.Evaluate(cards)
		switch {
		case i == 0:
			best = r
			winners = []int{s}
		case r.Compare(best) > 0:
			best = r
			winners = []int{s}
		case r.Compare(best) == 0:
			winners = append(winners, s)
		}
	}
	return winners
}

// split shares amount evenly among winners; any indivisible remainder
// is given one chip at a time to the winners closest clockwise from
// the button.
func (d *Dealer) split(amount int64, winners []int) (PotResult, map[int]int64) {
	ordered := append([]int(nil), winners...)
	n := len(d.seats)
	sort.Slice(ordered, func(i, j int) bool {
		return clockwiseDistance(d.buttonSeat, ordered[i], n) < clockwiseDistance(d.buttonSeat, ordered[j], n)
	})
	share := amount / int64(len(ordered))
	remainder := amount % int64(len(ordered))
	perSeat := make(map[int]int64, len(ordered))
	for i, s := range ordered {
		amt := share
		if int64(i) < remainder {
			amt++
		}
		perSeat[s] = amt
	}
	return PotResult{
		Amount:         amount,
		Winners:        ordered,
		SharePerWinner: share,
		Remainder:      remainder,
	}, perSeat
}

func clockwiseDistance(from, seat, n int) int {
	dist := seat - from
	if dist <= 0 {
		dist += n
	}
	return dist
}
