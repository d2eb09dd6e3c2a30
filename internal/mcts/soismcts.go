package mcts

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
	"github.com/jablinski/stratengine/internal/value"
)

// SOISMCTS is single-observer information-set MCTS: one shared tree, but
// each iteration re-samples a determinization of the opponent's hidden
// pieces from the observer's point of view, only descends into children
// that are legal under that iteration's sample, and increments
// availability on every legal child encountered (not just the one
// selected) so IS-UCT's exploration term reflects how often a move could
// have been chosen. Grounded on original_source/src/mcts/ismcts.rs +
// src/mcts/iteration.rs (the MULTIPLE=false path).
type SOISMCTS struct {
	Config Config
	Tree   *Tree
}

// NewSOISMCTS builds a fresh single-node tree.
func NewSOISMCTS(cfg Config) *SOISMCTS {
	return &SOISMCTS{Config: cfg, Tree: NewTree()}
}

// Search runs Config.Iterations determinized passes and returns the most
// visited root move.
func (s *SOISMCTS) Search(root *gamestate.State, observer int, rng *rand.Rand) board.Move {
	noisy := false
	for i := 0; i < s.Config.Iterations; i++ {
		detPos, err := gamestate.Determinize(root, observer, rng)
		if err != nil {
			continue
		}
		state := &gamestate.State{Pos: detPos, Stack: root.Stack.Clone(), Info: root.Info}

		descendIS(s.Tree, s.Tree.Root(), state, s.Config, rng)
		s.Tree.Node(s.Tree.Root()).Visit()

		if !noisy && s.Config.RootNoiseEpsilon > 0 && s.Tree.Node(s.Tree.Root()).Expanded() {
			AddRootNoise(s.Tree, s.Tree.Root(), s.Config.RootNoiseEpsilon, uint64(rng.Int63()))
			noisy = true
		}
	}

	best := bestMove(s.Tree)
	if best == NoNode {
		return board.Move{}
	}
	return s.Tree.Node(best).Move
}

// ensureLegalChildren aligns node's children with moves legal under this
// iteration's determinization: every such move gets a child (added lazily
// the first time it is seen under any determinization) and its
// availability counter incremented; the returned map restricts Select to
// exactly those children.
func ensureLegalChildren(tree *Tree, node NodeID, moves []board.Move, priors []float32) map[NodeID]bool {
	n := tree.Node(node)

	existing := make(map[board.Move]NodeID)
	for _, kid := range n.Children() {
		existing[tree.Node(kid).Move] = kid
	}

	legal := make(map[NodeID]bool, len(moves))
	for i, m := range moves {
		kid, ok := existing[m]
		if !ok {
			var prior float32
			if i < len(priors) {
				prior = priors[i]
			}
			kid = tree.alloc(m, prior)
			n.mu.Lock()
			n.children = append(n.children, kid)
			n.mu.Unlock()
		}
		legal[kid] = true
		tree.Node(kid).MarkAvailable()
	}

	return legal
}

// descendIS is descend's information-set variant: legal moves vary by
// determinization, so the child set grows lazily and selection is
// restricted to the subset of children legal under this iteration's
// sampled state.
func descendIS(tree *Tree, node NodeID, state *gamestate.State, cfg Config, rng *rand.Rand) float32 {
	if state.Ended() {
		return value.TerminalRewardForSTM(state)
	}

	moves := state.Moves().Slice()
	if len(moves) == 0 {
		return value.TerminalRewardForSTM(state)
	}

	priors := cfg.Policy.Get(state, moves)

	n := tree.Node(node)
	if !n.Expanded() {
		tree.Expand(node, moves, priors)
	}

	legal := ensureLegalChildren(tree, node, moves, priors)

	child := tree.Select(node, cfg.Select, legal)
	if child == NoNode {
		return cfg.Value(state, rng)
	}

	mov := tree.Node(child).Move
	next := state.Clone()
	next.Apply(mov)

	reward := -descendIS(tree, child, next, cfg, rng)
	tree.Node(child).Update(reward)
	return reward
}
