package engine

// Player is the chip-accounting record for a seated player. Invariant:
// TotalChips() = Stack + BetSize, always >= 0.
type Player struct {
	Stack   int64
	BetSize int64
}

// NewPlayer seats a player with buyIn chips and no current bet.
func NewPlayer(buyIn int64) *Player {
	return &Player{Stack: buyIn}
}

// TotalChips is the player's stack plus whatever they have committed
// to the current betting round.
func (p *Player) TotalChips() int64 {
	return p.Stack + p.BetSize
}

// Bet commits x of the player's total chips as their new bet size for
// this round. Requires 0 <= x <= TotalChips().
func (p *Player) Bet(x int64) error {
	total := p.TotalChips()
	if x < 0 || x > total {
		return IllegalRaiseError{Amount: x, Min: 0, Max: total}
	}
	p.BetSize = x
	p.Stack = total - x
	return nil
}

// IsAllIn reports whether the player has no chips left behind their
// bet - they cannot act again this hand.
func (p *Player) IsAllIn() bool {
	return p.Stack == 0
}

// ResetBet clears bet_size once the pot manager has harvested it at
// the end of a betting round.
func (p *Player) ResetBet() {
	p.BetSize = 0
}
