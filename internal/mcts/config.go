package mcts

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/gamestate"
	"github.com/jablinski/stratengine/internal/policy"
	"github.com/jablinski/stratengine/internal/value"
)

// Config gathers the pluggable strategies every search variant is built
// from: a selection formula, a leaf-evaluation function, an
// expansion-prior policy, and an iteration budget.
type Config struct {
	Select     SelectFunc
	Value      value.Func
	Policy     policy.Kind
	Iterations int

	// RootNoiseEpsilon, when > 0, mixes Dirichlet exploration noise into the
	// root's priors right after its first expansion (see AddRootNoise). 0
	// disables it, the right default for the UCT/IS-UCT variants that have
	// no policy prior for noise to perturb in the first place.
	RootNoiseEpsilon float32
}

// DefaultConfig mirrors the wiring in the original engine's example binary
// (ISMCTS with IS-UCT(1.41), uniform rollout, uniform policy).
func DefaultConfig() Config {
	return Config{
		Select:     ISUCT(1.41),
		Value:      value.SimulationUniform,
		Policy:     policy.Uniform,
		Iterations: 10000,
	}
}

// descend runs one select/expand/evaluate/backpropagate pass starting at
// node, returning the reward from the perspective of the side to move in
// state. Reward alternates sign on each level of recursion, the standard
// negamax backpropagation convention.
func descend(tree *Tree, node NodeID, state *gamestate.State, cfg Config, rng *rand.Rand) float32 {
	if state.Ended() {
		return value.TerminalRewardForSTM(state)
	}

	n := tree.Node(node)
	if !n.Expanded() {
		moves := state.Moves().Slice()
		priors := cfg.Policy.Get(state, moves)
		tree.Expand(node, moves, priors)
		return cfg.Value(state, rng)
	}

	child := tree.Select(node, cfg.Select, nil)
	if child == NoNode {
		// Every child pruned unavailable (shouldn't happen once expanded
		// with a non-empty move list) — treat as a dead end.
		return value.TerminalRewardForSTM(state)
	}

	mov := tree.Node(child).Move
	next := state.Clone()
	next.Apply(mov)

	reward := -descend(tree, child, next, cfg, rng)
	tree.Node(child).Update(reward)
	return reward
}

// bestMove returns the root child with the most visits, the standard
// robust-child move-selection rule.
func bestMove(tree *Tree) NodeID {
	root := tree.Node(tree.Root())
	best := NoNode
	var bestVisits uint32
	for _, kid := range root.Children() {
		v := tree.Node(kid).Visits()
		if best == NoNode || v > bestVisits {
			best = kid
			bestVisits = v
		}
	}
	return best
}
