package mcts

import (
	"math/rand"
	"testing"

	"github.com/jablinski/stratengine/internal/board"
	"github.com/jablinski/stratengine/internal/gamestate"
	"github.com/jablinski/stratengine/internal/policy"
	"github.com/jablinski/stratengine/internal/value"
)

// twoMoveState returns a minimal, quickly-decidable position (a lone red
// marshal facing a lone blue spy, one square apart) so search tests don't
// depend on a long random rollout to reach a terminal state.
func twoMoveState(t *testing.T) *gamestate.State {
	t.Helper()
	pos, err := board.FromNotation("8/8/8/8/8/8/s7/M7 r")
	if err != nil {
		t.Fatalf("FromNotation: %v", err)
	}
	return gamestate.New(pos)
}

func TestTreeExpandIsIdempotent(t *testing.T) {
	tree := NewTree()
	moves := []board.Move{{From: 0, To: 1}, {From: 0, To: 2}}
	priors := []float32{0.5, 0.5}

	tree.Expand(tree.Root(), moves, priors)
	sizeAfterFirst := tree.Size()

	tree.Expand(tree.Root(), moves, priors)
	if tree.Size() != sizeAfterFirst {
		t.Fatalf("a second Expand call should be a no-op, size went from %d to %d", sizeAfterFirst, tree.Size())
	}
	if len(tree.Node(tree.Root()).Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tree.Node(tree.Root()).Children()))
	}
}

func TestUCTPrefersUnvisitedChild(t *testing.T) {
	tree := NewTree()
	tree.Expand(tree.Root(), []board.Move{{From: 0, To: 1}, {From: 0, To: 2}}, []float32{0.5, 0.5})

	children := tree.Node(tree.Root()).Children()
	tree.Node(children[0]).Update(1)
	tree.Node(tree.Root()).Visit()

	best := tree.Select(tree.Root(), UCT(1.41), nil)
	if best != children[1] {
		t.Fatalf("expected the unvisited child to win first-play-urgency, got node %d", best)
	}
}

func TestISUCTRespectsLegalRestriction(t *testing.T) {
	tree := NewTree()
	tree.Expand(tree.Root(), []board.Move{{From: 0, To: 1}, {From: 0, To: 2}}, []float32{0.5, 0.5})
	children := tree.Node(tree.Root()).Children()

	for _, kid := range children {
		tree.Node(kid).MarkAvailable()
		tree.Node(kid).Update(0)
	}

	legal := map[NodeID]bool{children[0]: true}
	best := tree.Select(tree.Root(), ISUCT(1.41), legal)
	if best != children[0] {
		t.Fatalf("Select must not return a node excluded from legal, got %d want %d", best, children[0])
	}
}

func TestPUCTExplorationWeightGrowsWithParentVisits(t *testing.T) {
	child := Stats{Visits: 1, Reward: 0, Psa: 1, Availability: 1}
	fn := PUCT(1.41, 19652)

	low := fn(child, 1)
	high := fn(child, 100000)

	if high <= low {
		t.Fatalf("PUCT's exploration term should grow with the parent's visit count: low=%v high=%v", low, high)
	}
}

func TestISPUCTUsesAvailabilityNotParentVisits(t *testing.T) {
	fn := ISPUCT(1.41, 19652)
	child := Stats{Visits: 1, Reward: 0, Psa: 1, Availability: 5}

	withParentVisits := fn(child, 1)
	withDifferentParentVisits := fn(child, 100000)

	if withParentVisits != withDifferentParentVisits {
		t.Fatalf("ISPUCT must ignore parentVisits and depend only on availability: %v vs %v", withParentVisits, withDifferentParentVisits)
	}
}

func TestDescendBackpropagatesAlternatingSign(t *testing.T) {
	state := twoMoveState(t)
	tree := NewTree()
	cfg := Config{Select: UCT(1.41), Value: value.SimulationUniform, Policy: policy.Uniform, Iterations: 1}
	rng := rand.New(rand.NewSource(1))

	descend(tree, tree.Root(), state.Clone(), cfg, rng)

	if !tree.Node(tree.Root()).Expanded() {
		t.Fatalf("descend should expand the root on its first visit")
	}

	// With a constant leaf value of 0.5 for the side to move at the leaf,
	// the child one ply below the root must be credited -0.5.
	constCfg := cfg
	constCfg.Value = func(*gamestate.State, *rand.Rand) float32 { return 0.5 }
	tree = NewTree()
	descend(tree, tree.Root(), state.Clone(), constCfg, rng)
	got := descend(tree, tree.Root(), state.Clone(), constCfg, rng)

	first := tree.Node(tree.Root()).Children()[0]
	if got != -0.5 || tree.Node(first).Reward() != -0.5 {
		t.Fatalf("leaf value 0.5 should backpropagate as -0.5 one ply up: returned %v, child reward %v", got, tree.Node(first).Reward())
	}
}

func TestCheatingSearchReturnsLegalMove(t *testing.T) {
	state := twoMoveState(t)
	cfg := Config{Select: UCT(1.41), Value: value.SimulationUniform, Policy: policy.Uniform, Iterations: 64}
	rng := rand.New(rand.NewSource(7))

	c := NewCheating(cfg)
	mov := c.Search(state, rng)

	moves := state.Moves()
	if _, ok := moves.Find(mov.String()); !ok {
		t.Fatalf("Cheating.Search returned an illegal move %v", mov)
	}
}

func TestSOISMCTSSearchReturnsLegalMove(t *testing.T) {
	state := twoMoveState(t)
	cfg := Config{Select: ISUCT(1.41), Value: value.SimulationUniform, Policy: policy.Uniform, Iterations: 64}
	rng := rand.New(rand.NewSource(7))

	s := NewSOISMCTS(cfg)
	mov := s.Search(state, state.Pos.STMSide(), rng)

	moves := state.Moves()
	if _, ok := moves.Find(mov.String()); !ok {
		t.Fatalf("SOISMCTS.Search returned an illegal move %v", mov)
	}
}

func TestMOISMCTSSearchReturnsLegalMove(t *testing.T) {
	state := twoMoveState(t)
	cfg := Config{Select: ISUCT(1.41), Value: value.SimulationUniform, Policy: policy.Uniform, Iterations: 64}
	rng := rand.New(rand.NewSource(7))

	m := NewMOISMCTS(cfg)
	mov := m.Search(state, state.Pos.STMSide(), rng)

	moves := state.Moves()
	if _, ok := moves.Find(mov.String()); !ok {
		t.Fatalf("MOISMCTS.Search returned an illegal move %v", mov)
	}
}

func TestAddRootNoisePerturbsPriorsButPreservesChildCount(t *testing.T) {
	tree := NewTree()
	tree.Expand(tree.Root(), []board.Move{{From: 0, To: 1}, {From: 0, To: 2}, {From: 0, To: 3}}, []float32{0.2, 0.3, 0.5})
	before := tree.Node(tree.Root()).Children()

	AddRootNoise(tree, tree.Root(), 0.25, 42)

	after := tree.Node(tree.Root()).Children()
	if len(after) != len(before) {
		t.Fatalf("AddRootNoise must not add or remove children, before=%d after=%d", len(before), len(after))
	}

	var changed bool
	wantPriors := []float32{0.2, 0.3, 0.5}
	for i, kid := range after {
		if tree.Node(kid).Snapshot().Psa != wantPriors[i] {
			changed = true
		}
	}
	if !changed {
		t.Fatalf("AddRootNoise should perturb at least one child's prior")
	}
}

func TestAddRootNoiseOnUnexpandedNodeIsNoop(t *testing.T) {
	tree := NewTree()
	AddRootNoise(tree, tree.Root(), 0.25, 42)

	if len(tree.Node(tree.Root()).Children()) != 0 {
		t.Fatalf("AddRootNoise on a childless node should be a no-op")
	}
}

func TestCheatingSearchWithRootNoiseStillReturnsLegalMove(t *testing.T) {
	state := twoMoveState(t)
	cfg := Config{
		Select:           PUCT(1.41, 19652),
		Value:            value.SimulationUniform,
		Policy:           policy.Uniform,
		Iterations:       64,
		RootNoiseEpsilon: 0.25,
	}
	rng := rand.New(rand.NewSource(7))

	c := NewCheating(cfg)
	mov := c.Search(state, rng)

	moves := state.Moves()
	if _, ok := moves.Find(mov.String()); !ok {
		t.Fatalf("Cheating.Search with root noise returned an illegal move %v", mov)
	}
}

func TestPIMCSearchReturnsLegalMove(t *testing.T) {
	state := twoMoveState(t)
	cfg := Config{Select: UCT(1.41), Value: value.SimulationUniform, Policy: policy.Uniform, Iterations: 32}
	rng := rand.New(rand.NewSource(7))

	p := &PIMC{Config: cfg, Determinizations: 4}
	mov := p.Search(state, state.Pos.STMSide(), rng)

	moves := state.Moves()
	if _, ok := moves.Find(mov.String()); !ok {
		t.Fatalf("PIMC.Search returned an illegal move %v", mov)
	}
}
