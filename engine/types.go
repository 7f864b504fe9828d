// Package engine implements the core no-limit hold'em table state
// machine: seats, betting rounds, pots, hand lifecycle and automatic
// actions. It performs no I/O and owns no goroutines; every exported
// method returns after fully applying its effects.
package engine

// Action is the external, player-facing action vocabulary. Check and
// Call are aliases for "match" (amount ignored for Check, amount
// ignored for Call - the round decides how much is owed); Bet and
// Raise both carry Amount and are governed by the raise rules of the
// betting round.
type Action int

const (
	ActionFold Action = iota
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
)

func (a Action) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionRaise:
		return "raise"
	default:
		return "unknown"
	}
}

// ForcedBets describes the ante and blind structure posted at the
// start of every hand. Heads-up, the small blind is posted by the
// button.
type ForcedBets struct {
	Ante       int64
	SmallBlind int64
	BigBlind   int64
}

// HandStage is the dealer's coarse hand-lifecycle position.
type HandStage int

const (
	StagePreflop HandStage = iota
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
	StageComplete
)

func (s HandStage) String() string {
	switch s {
	case StagePreflop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	case StageComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// AutomaticAction is a pre-committed per-seat intent that fires on the
// seat's turn if it is still legal when that turn arrives.
type AutomaticAction int

const (
	AutoNone AutomaticAction = iota
	AutoFold
	AutoCheckFold
	AutoCheck
	AutoCall
	AutoCallAny
	AutoAllIn
)

func (a AutomaticAction) String() string {
	switch a {
	case AutoNone:
		return "none"
	case AutoFold:
		return "fold"
	case AutoCheckFold:
		return "check_fold"
	case AutoCheck:
		return "check"
	case AutoCall:
		return "call"
	case AutoCallAny:
		return "call_any"
	case AutoAllIn:
		return "all_in"
	default:
		return "unknown"
	}
}

// AutomaticActionFlags is a bitset reporting which automatic-action
// values are currently legal for a seat, for UI affordance purposes.
// The *stored* intent is always a single AutomaticAction, never a
// bitset.
type AutomaticActionFlags uint8

const (
	AutoFlagFold AutomaticActionFlags = 1 << iota
	AutoFlagCheckFold
	AutoFlagCheck
	AutoFlagCall
	AutoFlagCallAny
	AutoFlagAllIn
)

func (f AutomaticActionFlags) Has(bit AutomaticActionFlags) bool {
	return f&bit != 0
}

// legalAutomaticActionFlags computes which automatic actions are legal for a seat that
// is active in the hand but not currently the player to act, given
// whether that seat's bet already matches the round's biggest bet.
func legalAutomaticActionFlags(matchesBiggestBet bool) AutomaticActionFlags {
	var flags AutomaticActionFlags
	if matchesBiggestBet {
		flags |= AutoFlagCheckFold | AutoFlagCheck
	} else {
		flags |= AutoFlagFold | AutoFlagCall
	}
	flags |= AutoFlagCallAny | AutoFlagAllIn
	return flags
}

func isAutomaticActionLegal(action AutomaticAction, flags AutomaticActionFlags) bool {
	switch action {
	case AutoFold:
		return flags.Has(AutoFlagFold)
	case AutoCheckFold:
		return flags.Has(AutoFlagCheckFold)
	case AutoCheck:
		return flags.Has(AutoFlagCheck)
	case AutoCall:
		return flags.Has(AutoFlagCall)
	case AutoCallAny:
		return flags.Has(AutoFlagCallAny)
	case AutoAllIn:
		return flags.Has(AutoFlagAllIn)
	default:
		return false
	}
}
