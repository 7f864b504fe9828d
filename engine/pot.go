package engine

// Pot is one main or side pot: a chip amount and the set of seats
// eligible to win it.
type Pot struct {
	Amount   int64
	Eligible map[int]bool
}

func newPot() *Pot {
	return &Pot{Eligible: make(map[int]bool)}
}

func (p *Pot) add(seat int, amount int64, eligible bool) {
	p.Amount += amount
	if eligible {
		p.Eligible[seat] = true
	}
}

// PotManager collects each betting round's bets into a main pot plus
// whatever side pots differing all-in amounts require, and tracks
// eligibility as folds happen.
type PotManager struct {
	Pots []*Pot
}

func NewPotManager() *PotManager {
	return &PotManager{Pots: []*Pot{newPot()}}
}

// CollectBetsFrom folds bet[s] into the pots for every seat with a
// nonzero bet. inHand[s] reports whether seat s is still contesting
// the hand (not folded); their contributions become part of the
// eligible pot. Folded seats' residual bets are dead money: they are
// layered across the same per-level splits as the still-contesting
// seats' bets (capped at whatever they actually put in), just without
// buying eligibility for any pot they land in. bet is zeroed as it is
// consumed.
func (pm *PotManager) CollectBetsFrom(bet []int64, inHand []bool) {
	current := pm.Pots[len(pm.Pots)-1]

	for {
		anyLeft := false
		for _, amount := range bet {
			if amount > 0 {
				anyLeft = true
				break
			}
		}
		if !anyLeft {
			return
		}

		lowest := int64(-1)
		for seat, amount := range bet {
			if !inHand[seat] || amount <= 0 {
				continue
			}
			if lowest == -1 || amount < lowest {
				lowest = amount
			}
		}
		if lowest == -1 {
			// No in-hand seat is left uncalled, so there is no live
			// level left to layer against: whatever dead money folded
			// seats still owe above the last level lands in the
			// current pot in full.
			for seat, amount := range bet {
				if amount > 0 {
					current.add(seat, amount, false)
					bet[seat] = 0
				}
			}
			return
		}

		for seat, amount := range bet {
			if amount <= 0 {
				continue
			}
			take := amount
			if take > lowest {
				take = lowest
			}
			current.add(seat, take, inHand[seat])
			bet[seat] = amount - take
		}

		remaining := false
		for seat, amount := range bet {
			if inHand[seat] && amount > 0 {
				remaining = true
				break
			}
		}
		if !remaining {
			continue
		}
		current = newPot()
		pm.Pots = append(pm.Pots, current)
	}
}

// RemoveEligibility strips seat from every existing pot's eligible set.
// Called the moment a seat folds, so that money it contributed to a
// pot before folding does not make it eligible to win that pot.
func (pm *PotManager) RemoveEligibility(seat int) {
	for _, pot := range pm.Pots {
		delete(pot.Eligible, seat)
	}
}

// Total sums every pot's amount, for chip-conservation checks.
func (pm *PotManager) Total() int64 {
	var total int64
	for _, p := range pm.Pots {
		total += p.Amount
	}
	return total
}
