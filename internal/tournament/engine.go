package tournament

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
)

// Algorithm is anything that can pick a move for the side to move in
// state. An mcts search variant (Cheating, PIMC, SOISMCTS, MOISMCTS) can
// be wrapped in an AlgorithmFunc calling its Search, so the tournament
// driver never needs to know which search algorithm it's holding.
type Algorithm interface {
	Move(state *gamestate.State, rng *rand.Rand) board.Move
}

// AlgorithmFunc adapts a plain function to Algorithm.
type AlgorithmFunc func(state *gamestate.State, rng *rand.Rand) board.Move

// Move implements Algorithm.
func (f AlgorithmFunc) Move(state *gamestate.State, rng *rand.Rand) board.Move {
	return f(state, rng)
}

// Engine names and identifies one competitor. Cheating marks an engine
// that is handed the true, fully-revealed state every turn (a
// perfect-information baseline) rather than only its own
// anonymized-determinized view — grounded on original_source/src/
// tournament.rs's per-engine cheating/anonymized view choice, adapted
// in-process from the original's subprocess EngineChild/EngineRunner.
type Engine struct {
	Name      string
	Algorithm Algorithm
	Cheating  bool
}

// View returns the state sd's Engine should see this turn: the true state
// if it's a cheating engine, otherwise the state with sd's opponent
// anonymized so the opponent's pieces read as Unknown.
func (e Engine) View(state *gamestate.State, sd int) *gamestate.State {
	if e.Cheating {
		return state
	}
	anon := gamestate.Anonymize(state.Pos, sd^1)
	return &gamestate.State{Pos: anon, Stack: state.Stack.Clone(), Info: state.Info}
}
