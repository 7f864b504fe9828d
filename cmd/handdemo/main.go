// Command handdemo drives one hand of the engine package to
// completion from a YAML scenario file and prints the result. It
// exists to make the state machine's behavior inspectable by hand
// while iterating on it; it imports engine and poker but nothing
// imports it back.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"voyager.com/holdem/engine"
	"voyager.com/holdem/poker"
)

var cmdArgs struct {
	scenarioFile string
}

func init() {
	flag.StringVar(&cmdArgs.scenarioFile, "scenario", "", "hand scenario YAML file")
	flag.Parse()
}

func main() {
	os.Exit(run())
}

func run() int {
	if cmdArgs.scenarioFile == "" {
		log.Error().Msg("no -scenario file provided")
		return 1
	}
	scenario, err := loadScenario(cmdArgs.scenarioFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to load scenario")
		return 1
	}
	if err := driveScenario(scenario); err != nil {
		log.Error().Err(err).Msg("scenario failed")
		return 1
	}
	return 0
}

// Scenario describes one hand to deal end to end: the seats, the
// forced-bet structure and the sequence of actions to apply as play
// reaches each seat.
type Scenario struct {
	NumSeats   int              `yaml:"num-seats"`
	Button     int              `yaml:"button"`
	ForcedBets ScenarioBlinds   `yaml:"forced-bets"`
	Seats      []ScenarioSeat   `yaml:"seats"`
	Actions    []ScenarioAction `yaml:"actions"`
}

type ScenarioBlinds struct {
	Ante       int64 `yaml:"ante"`
	SmallBlind int64 `yaml:"small-blind"`
	BigBlind   int64 `yaml:"big-blind"`
}

type ScenarioSeat struct {
	Seat  int   `yaml:"seat"`
	BuyIn int64 `yaml:"buy-in"`
}

// ScenarioAction is one step of the driven hand. Action "end_round"
// closes the current betting round instead of acting for a seat.
type ScenarioAction struct {
	Seat   int    `yaml:"seat"`
	Action string `yaml:"action"`
	Amount int64  `yaml:"amount"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scenario file")
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parsing scenario yaml")
	}
	if s.NumSeats == 0 {
		s.NumSeats = 9
	}
	return &s, nil
}

// sequentialRand hands out 0, 1, 2, ... so a scenario's dealt cards
// are reproducible across runs without needing a real entropy source.
type sequentialRand struct {
	next int
}

func (r *sequentialRand) Intn(n int) int {
	v := r.next % n
	r.next++
	return v
}

func driveScenario(s *Scenario) error {
	table := engine.NewTable(s.NumSeats)
	table.SetForcedBets(engine.ForcedBets{
		Ante:       s.ForcedBets.Ante,
		SmallBlind: s.ForcedBets.SmallBlind,
		BigBlind:   s.ForcedBets.BigBlind,
	})
	for _, seat := range s.Seats {
		if err := table.SitDown(seat.Seat, seat.BuyIn); err != nil {
			return errors.Wrapf(err, "seating seat %d", seat.Seat)
		}
	}

	if err := table.StartHand(&sequentialRand{}); err != nil {
		return errors.Wrap(err, "starting hand")
	}
	pterm.DefaultHeader.Println("hand started")
	printHoleCards(table)

	for _, step := range s.Actions {
		if step.Action == "end_round" {
			if err := table.EndBettingRound(); err != nil {
				return errors.Wrap(err, "ending betting round")
			}
			printStreet(table)
			continue
		}
		action, err := parseAction(step.Action)
		if err != nil {
			return err
		}
		if err := table.ActionTaken(step.Seat, action, step.Amount); err != nil {
			return errors.Wrapf(err, "seat %d action %s", step.Seat, step.Action)
		}
	}

	for table.HandStage() != engine.StageShowdown && table.HandStage() != engine.StageComplete {
		if err := table.EndBettingRound(); err != nil {
			return errors.Wrap(err, "ending betting round")
		}
		printStreet(table)
	}
	if table.HandStage() == engine.StageShowdown {
		if err := table.Showdown(); err != nil {
			return errors.Wrap(err, "showdown")
		}
	}

	printResults(table)
	return nil
}

func parseAction(name string) (engine.Action, error) {
	switch name {
	case "fold":
		return engine.ActionFold, nil
	case "check":
		return engine.ActionCheck, nil
	case "call":
		return engine.ActionCall, nil
	case "bet":
		return engine.ActionBet, nil
	case "raise":
		return engine.ActionRaise, nil
	default:
		return 0, fmt.Errorf("unknown action %q", name)
	}
}

func printHoleCards(table *engine.Table) {
	for _, seat := range table.HandPlayers() {
		pterm.Printf("seat %d: %s\n", seat, poker.CardsToString(table.HoleCards(seat)))
	}
}

func printStreet(table *engine.Table) {
	board := table.CommunityCards()
	if len(board) > 0 {
		pterm.DefaultSection.Printf("%s: %s", table.HandStage(), poker.CardsToString(board))
	}
	for i, pot := range table.Pots() {
		pterm.Printf("pot %d: %d\n", i, pot.Amount)
	}
}

func printResults(table *engine.Table) {
	pterm.DefaultHeader.Println("results")
	for i, result := range table.Results() {
		pterm.Printf("pot %d: %d chips to %v (%d each, %d remainder)\n",
			i, result.Amount, result.Winners, result.SharePerWinner, result.Remainder)
	}
	for _, seat := range table.HandPlayers() {
		pterm.Printf("seat %d stack: %d\n", seat, table.Seats()[seat].Stack)
	}
}
