package value

import (
	"math/rand"
	"testing"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
)

func TestTerminalRewardForSTMWinLossDraw(t *testing.T) {
	pos := board.NewPosition()
	state := &gamestate.State{Pos: pos}

	state.Pos.State = board.Win
	if got := TerminalRewardForSTM(state); got != 1 {
		t.Fatalf("Win reward for the side to move = %v, want 1", got)
	}

	state.Pos.State = board.Loss
	if got := TerminalRewardForSTM(state); got != -1 {
		t.Fatalf("Loss reward for the side to move = %v, want -1", got)
	}

	state.Pos.State = board.Draw
	if got := TerminalRewardForSTM(state); got != 0 {
		t.Fatalf("Draw reward = %v, want 0", got)
	}
}

func TestSimulationUniformReachesQuickTerminalPosition(t *testing.T) {
	// A lone marshal one square from a lone spy: the first random move is
	// either an immediate winning capture or a quiet step; the rollout ends
	// once one piece captures the other or a side has no legal move.
	pos, err := board.FromNotation("8/8/8/8/8/8/s7/M7 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	state := gamestate.New(pos)
	rng := rand.New(rand.NewSource(3))

	reward := SimulationUniform(state, rng)
	if reward != 1 && reward != -1 && reward != 0 {
		t.Fatalf("reward out of range: %v", reward)
	}
}

func TestHeuristicIsBoundedByTanh(t *testing.T) {
	pos, err := board.FromNotation("d2f4/bbg4c/1m3dsc/8/8/BD3M1G/F5SD/1BCC4 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	state := gamestate.New(pos)

	v := Heuristic(750)(state, nil)
	if v <= -1 || v >= 1 {
		t.Fatalf("tanh-scaled heuristic must stay within (-1, 1), got %v", v)
	}
}

func TestCutoffFallsBackToTerminalRewardWhenGameEnds(t *testing.T) {
	pos, err := board.FromNotation("8/8/8/8/8/8/8/8 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	pos.Toggle(board.Red, board.Marshal, board.Square(0))
	pos.Toggle(board.Blue, board.Spy, board.Square(1))
	state := gamestate.New(pos)

	// c=0 never cuts the rollout short, so this degenerates to SimulationUniform.
	f := Cutoff(SimulationUniform, 0, Heuristic(750))
	rng := rand.New(rand.NewSource(9))

	reward := f(state, rng)
	if reward != 1 && reward != -1 && reward != 0 {
		t.Fatalf("reward out of range: %v", reward)
	}
}

func TestSampleWeightedPrefersHeavierWeight(t *testing.T) {
	weights := []float32{0, 0, 1}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 10; i++ {
		if idx := sampleWeighted(weights, rng); idx != 2 {
			t.Fatalf("sampleWeighted should always pick the only nonzero weight, got %d", idx)
		}
	}
}
