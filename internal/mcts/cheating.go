package mcts

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
)

// Cheating is the perfect-information baseline: a single tree searched
// directly over the true game state, with no determinization at all.
// Grounded on original_source/src/mcts/{mcts,search}.rs.
type Cheating struct {
	Config Config
	Tree   *Tree
}

// NewCheating builds a fresh single-node tree.
func NewCheating(cfg Config) *Cheating {
	return &Cheating{Config: cfg, Tree: NewTree()}
}

// Search runs Config.Iterations passes from root and returns the most
// visited root move.
func (c *Cheating) Search(root *gamestate.State, rng *rand.Rand) board.Move {
	noisy := false
	for i := 0; i < c.Config.Iterations; i++ {
		state := root.Clone()
		descend(c.Tree, c.Tree.Root(), state, c.Config, rng)
		c.Tree.Node(c.Tree.Root()).Visit()

		if !noisy && c.Config.RootNoiseEpsilon > 0 && c.Tree.Node(c.Tree.Root()).Expanded() {
			AddRootNoise(c.Tree, c.Tree.Root(), c.Config.RootNoiseEpsilon, uint64(rng.Int63()))
			noisy = true
		}
	}

	best := bestMove(c.Tree)
	if best == NoNode {
		return board.Move{}
	}
	return c.Tree.Node(best).Move
}
