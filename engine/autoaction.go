package engine

// autoActionStore holds each seat's pre-committed automatic-action
// intent, and applies the circumstance updates a bet increase forces
// on intents that were set against a smaller bet.
type autoActionStore struct {
	intents []AutomaticAction
}

func newAutoActionStore(n int) *autoActionStore {
	return &autoActionStore{intents: make([]AutomaticAction, n)}
}

func (s *autoActionStore) Get(seat int) AutomaticAction {
	return s.intents[seat]
}

func (s *autoActionStore) Set(seat int, a AutomaticAction) {
	s.intents[seat] = a
}

func (s *autoActionStore) Clear(seat int) {
	s.intents[seat] = AutoNone
}

// onBetIncreased downgrades or clears standing intents that no longer
// mean what they meant when set, now that the round's biggest bet has
// gone up: check_fold becomes fold, a bare check is cleared (there is
// nothing left to check), and call_any is tightened to a plain call
// once the raiser causing the increase is themselves all-in, so a
// later, larger raise cannot be call_any'd blind.
func (s *autoActionStore) onBetIncreased(raiserAllIn bool) {
	for seat, intent := range s.intents {
		switch intent {
		case AutoCheckFold:
			s.intents[seat] = AutoFold
		case AutoCheck:
			s.intents[seat] = AutoNone
		case AutoCallAny:
			if raiserAllIn {
				s.intents[seat] = AutoCall
			}
		}
	}
}

// resolvedAction is what an automatic intent turns into once it fires:
// either a fold, a match (check/call), or a raise for amount (an
// all-in shove).
type resolvedAction struct {
	action Action
	amount int64
}

// resolve turns a legal automatic intent into the concrete action to
// apply, given the seat's current legal actions.
func resolveAutoAction(intent AutomaticAction, la LegalActions) resolvedAction {
	switch intent {
	case AutoFold:
		return resolvedAction{action: ActionFold}
	case AutoCheck, AutoCheckFold, AutoCall, AutoCallAny:
		return resolvedAction{action: ActionCall}
	case AutoAllIn:
		if la.CanRaise {
			return resolvedAction{action: ActionRaise, amount: la.MaxRaise}
		}
		return resolvedAction{action: ActionCall}
	default:
		return resolvedAction{action: ActionFold}
	}
}
