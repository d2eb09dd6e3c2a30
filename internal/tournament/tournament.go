package tournament

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/deployment"
	"github.com/jablinski/stratengine/internal/gamestate"
)

// MaxPlies caps a game length before it is ruled a draw, grounded on
// original_source/src/tournament.rs's 150-move cutoff (one "move" there
// counts a ply per side, so 150 plies here).
const MaxPlies = 150

// Result is the outcome of one game from red's point of view.
type Result int

const (
	RedWins Result = iota
	BlueWins
	DrawResult
)

// Match plays a single game between two engines and returns the result
// plus the ply count it took, adapted from arena.go's single
// self-play game loop into a two-engine head-to-head driver.
func Match(red, blue Engine, rng *rand.Rand) (Result, int) {
	pos := board.NewPosition()
	redPlacement := deployment.Random(board.Red, rng)
	bluePlacement := deployment.Random(board.Blue, rng)
	deployment.Apply(&pos, board.Red, redPlacement)
	deployment.Apply(&pos, board.Blue, bluePlacement)

	state := gamestate.New(pos)

	ply := 0
	for ; ply < MaxPlies; ply++ {
		if state.Ended() {
			break
		}

		mover := state.Pos.STMSide()
		var engine Engine
		if mover == board.Red {
			engine = red
		} else {
			engine = blue
		}

		view := engine.View(state, mover)
		mov := engine.Algorithm.Move(view, rng)

		moves := state.Moves()
		found := false
		for i := 0; i < moves.Len(); i++ {
			if moves.At(i) == mov {
				found = true
				break
			}
		}
		if !found {
			// The engine returned a move that isn't legal in the true
			// state (possible under an anonymized view whose sampled
			// ranks don't match reality) — forfeit the game.
			if mover == board.Red {
				return BlueWins, ply
			}
			return RedWins, ply
		}

		state.Apply(mov)
	}

	if !state.Ended() {
		return DrawResult, ply
	}

	switch state.Pos.State {
	case board.Draw:
		return DrawResult, ply
	case board.Win:
		// Win/Loss are relative to the side that just moved, which is the
		// opposite of STM after the flip in Position.Make.
		if !state.Pos.STM {
			return BlueWins, ply
		}
		return RedWins, ply
	default: // board.Loss
		if !state.Pos.STM {
			return RedWins, ply
		}
		return BlueWins, ply
	}
}

// Tournament runs every pairing in a Schedule and accumulates a Ranking
// per engine.
type Tournament struct {
	Engines  []Engine
	Schedule Schedule
	Rankings []Ranking
}

// NewTournament builds a tournament for engines repeated rounds times
// round-robin.
func NewTournament(engines []Engine, rounds int) *Tournament {
	t := &Tournament{
		Engines:  engines,
		Schedule: NewSchedule(len(engines), rounds),
		Rankings: make([]Ranking, len(engines)),
	}
	for i := range t.Rankings {
		t.Rankings[i].Index = i
	}
	return t
}

// Run plays every scheduled pairing sequentially, sharing rng and the
// engines across matches, and updates Rankings. It runs no match
// concurrently.
func (t *Tournament) Run(rng *rand.Rand) {
	for _, round := range t.Schedule.Rounds {
		for _, pairing := range round {
			red := t.Engines[pairing.First]
			blue := t.Engines[pairing.Second]

			result, _ := Match(red, blue, rng)
			t.record(pairing.First, pairing.Second, result)
		}
	}
}

func (t *Tournament) record(redIdx, blueIdx int, result Result) {
	switch result {
	case RedWins:
		t.Rankings[redIdx].Wins++
		t.Rankings[blueIdx].Losses++
	case BlueWins:
		t.Rankings[blueIdx].Wins++
		t.Rankings[redIdx].Losses++
	default:
		t.Rankings[redIdx].Draws++
		t.Rankings[blueIdx].Draws++
	}
}
