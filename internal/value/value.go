// Package value implements leaf-evaluation strategies for MCTS: random and
// policy-ordered rollouts to a terminal state, rollouts cut off early and
// finished off by a static heuristic, and an opaque external evaluator
// (standing in for a neural network, whose numerics are out of scope).
package value

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
	"github.com/jablinski/stratengine/internal/policy"
)

// Func evaluates a state from the point of view of the side to move when
// the rollout started, returning a value in [-1, 1].
type Func func(state *gamestate.State, rng *rand.Rand) float32

// terminalReward converts a finished game's GameState into the reward for
// the side that was to move when the rollout began (startedAsSTM).
func terminalReward(state *gamestate.State, startedSTM bool) float32 {
	current := float32(0)
	if startedSTM == state.Pos.STM {
		current = 1
	}
	switch state.Pos.State {
	case board.Draw:
		return 0
	case board.Win:
		return -1 + 2*current
	case board.Loss:
		return 1 - 2*current
	default:
		return 0
	}
}

// TerminalRewardForSTM returns the reward for the side to move at a
// terminal state (which by construction has no legal moves), from that
// side's own perspective.
func TerminalRewardForSTM(state *gamestate.State) float32 {
	return terminalReward(state, state.Pos.STM)
}

// SimulationUniform plays uniformly-random legal moves to the end of the
// game and scores the result. A side with no legal moves (the
// two-squares/more-squares rule exhausted its options) is ruled to have
// lost, matching the original engine's fallback.
func SimulationUniform(state *gamestate.State, rng *rand.Rand) float32 {
	startSTM := state.Pos.STM
	s := state.Clone()
	for !s.Ended() {
		moves := s.Moves()
		if moves.Len() == 0 {
			s.Pos.State = board.Loss
			break
		}
		s.Apply(moves.At(rng.Intn(moves.Len())))
	}
	return terminalReward(s, startSTM)
}

// SimulationOrdered plays moves sampled from policy.Ordered's distribution
// to the end of the game.
func SimulationOrdered(state *gamestate.State, rng *rand.Rand) float32 {
	startSTM := state.Pos.STM
	s := state.Clone()
	for !s.Ended() {
		moves := s.Moves().Slice()
		if len(moves) == 0 {
			s.Pos.State = board.Loss
			break
		}
		weights := policy.Ordered.Get(s, moves)
		s.Apply(moves[sampleWeighted(weights, rng)])
	}
	return terminalReward(s, startSTM)
}

// Cutoff plays uniformly-random legal moves, stopping early (with
// probability c per ply) and scoring the unfinished position with
// heuristic instead of continuing to a terminal state. The rollout
// argument is not called: its move choice is not used, every ply is
// sampled uniformly.
func Cutoff(rollout Func, c float32, heuristic Func) Func {
	return func(state *gamestate.State, rng *rand.Rand) float32 {
		startSTM := state.Pos.STM
		s := state.Clone()
		for !s.Ended() {
			if rng.Float32() < c {
				break
			}
			moves := s.Moves()
			if moves.Len() == 0 {
				s.Pos.State = board.Loss
				break
			}
			s.Apply(moves.At(rng.Intn(moves.Len())))
		}
		if !s.Ended() {
			current := float32(-1)
			if startSTM == s.Pos.STM {
				current = 1
			}
			return heuristic(s, rng) * current
		}
		return terminalReward(s, startSTM)
	}
}

// SimulationCutoff stops a uniform rollout early with probability c and
// scores the cut position with Heuristic.
func SimulationCutoff(c float32) Func {
	return Cutoff(SimulationUniform, c, Heuristic(950))
}

// SimulationOrderedCutoff is built on Cutoff, so its plies are sampled
// uniformly, not by policy.Ordered; it stops early with probability c and
// scores the cut position with Heuristic.
func SimulationOrderedCutoff(c float32) Func {
	return Cutoff(SimulationOrdered, c, Heuristic(950))
}

func sampleWeighted(weights []float32, rng *rand.Rand) int {
	var total float32
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float32() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return i
		}
	}
	return len(weights) - 1
}
