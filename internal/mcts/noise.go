package mcts

import (
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// rootDirichletAlpha is the concentration parameter for root exploration
// noise, the standard AlphaZero-family value for a moderate branching
// factor. Grounded on Elvenson-alphabeth/mcts/tree.go's dirichletParam use
// (distmv.NewDirichlet over one alpha per legal move at the root).
const rootDirichletAlpha = 0.3

// AddRootNoise mixes Dirichlet exploration noise into root's already
// expanded children's priors, epsilon-weighted against the policy's own
// prior: Psa' = (1-epsilon)*Psa + epsilon*noise. Search variants call this
// once per fresh root before their first Select, the same point the
// teacher's MCTS.New samples dirichletSample for the tree's lifetime; here
// it is resampled per root since every search call gets a new root instead
// of reusing one long-lived tree.
func AddRootNoise(tree *Tree, root NodeID, epsilon float32, seed uint64) {
	children := tree.Node(root).Children()
	if len(children) < 2 {
		// A single legal move needs no exploration noise, and distmv.Dirichlet
		// requires at least 2 dimensions.
		return
	}

	alpha := make([]float64, len(children))
	for i := range alpha {
		alpha[i] = rootDirichletAlpha
	}

	dist := distmv.NewDirichlet(alpha, distrand.NewSource(seed))
	noise := dist.Rand(nil)

	for i, kid := range children {
		node := tree.Node(kid)
		mixed := (1-epsilon)*node.Snapshot().Psa + epsilon*float32(noise[i])
		node.SetPsa(mixed)
	}
}
