package mcts

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
	"github.com/jablinski/stratengine/internal/value"
)

// MOISMCTS is multi-observer information-set MCTS: each side keeps its own
// tree, descended only on the plies where that side is to move, and built
// only from determinizations of the state handed to Search sampled from
// that side's own point of view, rather than the single shared tree
// SOISMCTS uses. The state is not anonymized per side before sampling:
// only squares already labeled Unknown in it are resampled. Grounded on original_source/src/mcts/iteration.rs (the
// MULTIPLE=true path).
type MOISMCTS struct {
	Config Config
	Trees  [2]*Tree
}

// NewMOISMCTS builds one fresh tree per side.
func NewMOISMCTS(cfg Config) *MOISMCTS {
	return &MOISMCTS{Config: cfg, Trees: [2]*Tree{NewTree(), NewTree()}}
}

// Search runs Config.Iterations passes and returns the most visited move
// in rootObserver's own tree.
func (m *MOISMCTS) Search(root *gamestate.State, rootObserver int, rng *rand.Rand) board.Move {
	noisy := false
	for i := 0; i < m.Config.Iterations; i++ {
		cursors := [2]NodeID{m.Trees[0].Root(), m.Trees[1].Root()}
		m.descend(root, &cursors, rng)

		if !noisy && m.Config.RootNoiseEpsilon > 0 && m.Trees[rootObserver].Node(m.Trees[rootObserver].Root()).Expanded() {
			AddRootNoise(m.Trees[rootObserver], m.Trees[rootObserver].Root(), m.Config.RootNoiseEpsilon, uint64(rng.Int63()))
			noisy = true
		}
	}

	best := bestMove(m.Trees[rootObserver])
	if best == NoNode {
		return board.Move{}
	}
	return m.Trees[rootObserver].Node(best).Move
}

// descend walks the true game from state. cursors[side] tracks where this
// iteration currently stands within side's own tree — advanced each time
// it is side's turn to move, so a single iteration deepens both trees by
// one node every time their owning side gets a ply.
func (m *MOISMCTS) descend(state *gamestate.State, cursors *[2]NodeID, rng *rand.Rand) float32 {
	if state.Ended() {
		return value.TerminalRewardForSTM(state)
	}

	mover := state.Pos.STMSide()
	tree := m.Trees[mover]
	node := cursors[mover]
	tree.Node(node).Visit()

	detPos, err := gamestate.Determinize(state, mover, rng)
	if err != nil {
		return value.TerminalRewardForSTM(state)
	}
	detState := &gamestate.State{Pos: detPos, Stack: state.Stack.Clone(), Info: state.Info}

	moves := detState.Moves().Slice()
	if len(moves) == 0 {
		return value.TerminalRewardForSTM(detState)
	}

	priors := m.Config.Policy.Get(detState, moves)

	n := tree.Node(node)
	if !n.Expanded() {
		tree.Expand(node, moves, priors)
	}
	legal := ensureLegalChildren(tree, node, moves, priors)

	child := tree.Select(node, m.Config.Select, legal)
	if child == NoNode {
		return m.Config.Value(detState, rng)
	}

	mov := tree.Node(child).Move

	next := state.Clone()
	next.Apply(mov)

	nextCursors := *cursors
	nextCursors[mover] = child

	reward := -m.descend(next, &nextCursors, rng)
	tree.Node(child).Update(reward)
	return reward
}
