package mcts

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
)

// PIMC is perfect-information Monte Carlo: K independent determinizations
// are sampled up front, each searched with its own cheating-MCTS tree, and
// the root children's visit/reward totals are aggregated across trees by
// move before picking the overall best move. Grounded on
// original_source/src/mcts/pimc.rs.
type PIMC struct {
	Config           Config
	Determinizations int
}

// aggregate accumulates cross-tree statistics for one candidate move.
type aggregate struct {
	visits uint32
	reward float32
}

// Search runs Determinizations independent cheating searches and returns
// the move with the highest combined visit count.
func (p *PIMC) Search(root *gamestate.State, observer int, rng *rand.Rand) board.Move {
	totals := make(map[board.Move]*aggregate)

	for k := 0; k < p.Determinizations; k++ {
		detPos, err := gamestate.Determinize(root, observer, rng)
		if err != nil {
			continue
		}
		detState := &gamestate.State{Pos: detPos, Stack: root.Stack.Clone(), Info: root.Info}

		tree := NewTree()
		noisy := false
		for i := 0; i < p.Config.Iterations; i++ {
			state := detState.Clone()
			descend(tree, tree.Root(), state, p.Config, rng)
			tree.Node(tree.Root()).Visit()

			if !noisy && p.Config.RootNoiseEpsilon > 0 && tree.Node(tree.Root()).Expanded() {
				AddRootNoise(tree, tree.Root(), p.Config.RootNoiseEpsilon, uint64(rng.Int63()))
				noisy = true
			}
		}

		for _, kid := range tree.Node(tree.Root()).Children() {
			n := tree.Node(kid)
			agg, ok := totals[n.Move]
			if !ok {
				agg = &aggregate{}
				totals[n.Move] = agg
			}
			agg.visits += n.Visits()
			agg.reward += n.Reward()
		}
	}

	var best board.Move
	var bestVisits uint32
	first := true
	for mov, agg := range totals {
		if first || agg.visits > bestVisits {
			best = mov
			bestVisits = agg.visits
			first = false
		}
	}
	return best
}
