package value

import (
	"math/rand"

	"github.com/jablinski/stratengine/internal/gamestate"
)

// Evaluator is the opaque "(state) -> scalar" contract a learned
// evaluation function satisfies. Nothing in this package depends on how
// Evaluate is implemented — the numeric model is explicitly out of scope.
type Evaluator interface {
	Evaluate(encoded []float32) float32
}

// Encoder flattens a game state into the evaluator's input vector.
type Encoder func(state *gamestate.State) []float32

// PooledEvaluator channel-pools access to an Evaluator across concurrently
// searching goroutines, grounded on the teacher's Agent.Infer
// channel-pooled inference pattern, adapted away from a gorgonia Dualer to
// an arbitrary Evaluator.
type PooledEvaluator struct {
	pool chan Evaluator
}

// NewPooledEvaluator builds a pool from n independent copies of eval,
// letting up to n searches call Infer concurrently without contending for
// one Evaluator instance.
func NewPooledEvaluator(copies []Evaluator) *PooledEvaluator {
	pool := make(chan Evaluator, len(copies))
	for _, e := range copies {
		pool <- e
	}
	return &PooledEvaluator{pool: pool}
}

// Infer checks an Evaluator out of the pool, scores encoded, and returns it.
func (p *PooledEvaluator) Infer(encoded []float32) float32 {
	eval := <-p.pool
	defer func() { p.pool <- eval }()
	return eval.Evaluate(encoded)
}

// Network builds a rollout-free Func around a PooledEvaluator and an
// Encoder, for use as a value strategy alongside the rollout-based Funcs
// in value.go.
func Network(pool *PooledEvaluator, encode Encoder) Func {
	return func(state *gamestate.State, _ *rand.Rand) float32 {
		return pool.Infer(encode(state))
	}
}

// NetworkCutoff stops a uniform rollout early with probability c and scores
// the cut position with a Network evaluator instead of the static
// Heuristic.
func NetworkCutoff(pool *PooledEvaluator, encode Encoder, c float32) Func {
	return Cutoff(SimulationUniform, c, Network(pool, encode))
}

// NetworkOrderedCutoff is built on Cutoff, so its plies are sampled
// uniformly, not by policy.Ordered; it stops early with probability c and
// scores the cut position with a Network evaluator.
func NetworkOrderedCutoff(pool *PooledEvaluator, encode Encoder, c float32) Func {
	return Cutoff(SimulationOrdered, c, Network(pool, encode))
}
