// Package policy scores legal moves into a leaf-expansion distribution,
// used by every MCTS variant to prioritize which child to expand next.
package policy

import (
	"github.com/chewxy/math32"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
)

// Kind selects one of the distribution shapes below, so a search config can
// name a policy without holding a closure.
type Kind int

const (
	Uniform Kind = iota
	Ordered
)

// Get returns the move-weight distribution for moves in the given state,
// in the same order as moves.
func (k Kind) Get(state *gamestate.State, moves []board.Move) []float32 {
	switch k {
	case Ordered:
		return ordered(state, moves)
	default:
		return uniform(moves)
	}
}

func uniform(moves []board.Move) []float32 {
	weights := make([]float32, len(moves))
	if len(moves) == 0 {
		return weights
	}
	w := 1.0 / float32(len(moves))
	for i := range weights {
		weights[i] = w
	}
	return weights
}

// ordered biases capture moves by how favorable the matchup is: a losing
// capture scores low, an even trade scores medium, a winning capture (or a
// captured Flag) scores high; quiet moves all get a flat baseline weight.
// The logits are passed through softmax to stay a valid distribution.
func ordered(state *gamestate.State, moves []board.Move) []float32 {
	logits := make([]float32, len(moves))
	for i, mov := range moves {
		logits[i] = 5.0
		if mov.Flag&board.FlagCapture == 0 {
			continue
		}

		other := state.Pos.Piece(mov.To)
		if other == board.Flag {
			logits[i] = 50.0
			continue
		}

		piece := int(mov.Piece)
		switch {
		case (piece == board.Spy && other == board.Marshal) || (piece == board.Miner && other == board.Bomb):
			logits[i] = 15.0
		case piece < other:
			logits[i] = 1.0
		case piece == other:
			logits[i] = 5.0
		default:
			logits[i] = 15.0
		}
	}

	var sum float32
	exp := make([]float32, len(logits))
	for i, l := range logits {
		exp[i] = math32.Exp(l)
		sum += exp[i]
	}
	if sum == 0 {
		return uniform(moves)
	}
	for i := range exp {
		exp[i] /= sum
	}
	return exp
}
