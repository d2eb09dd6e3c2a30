package deployment

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/board"
)

// Scorer is the opaque "(placement) -> scalar" contract an external
// evaluator satisfies when judging a deployment, mirroring
// internal/value.Evaluator's shape for the position evaluator — grounded
// on deployment/network.rs's k-random-samples-then-argmax sampler, with
// the concrete network numerics left out of scope.
type Scorer interface {
	Score(placement map[board.Square]int) float32
}

// Network samples k random deployments and returns the one scorer judges
// best.
func Network(sd int, k int, scorer Scorer, rng *rand.Rand) map[board.Square]int {
	best := Random(sd, rng)
	bestScore := scorer.Score(best)

	for i := 1; i < k; i++ {
		candidate := Random(sd, rng)
		if s := scorer.Score(candidate); s > bestScore {
			best, bestScore = candidate, s
		}
	}
	return best
}
