package mcts

import "github.com/chewxy/math32"

// SelectFunc scores a child node given its own statistics and its
// parent's visit count, for use by Tree.Select. Grounded on
// original_source/src/select.rs's `Select = fn(&Node) -> f32` (UCT,
// IS-UCT); PUCT/Progressive UCT generalize the same shape, modeled on the
// teacher's Node.Select PUCT formula.
type SelectFunc func(child Stats, parentVisits uint32) float32

// UCT is the standard upper-confidence-bound formula, reward averaged over
// visits plus an exploration term driven by the parent's total visit
// count.
func UCT(c float32) SelectFunc {
	return func(child Stats, parentVisits uint32) float32 {
		if child.Visits == 0 {
			return math32.Inf(1)
		}
		u := child.Reward / float32(child.Visits)
		v := c * math32.Sqrt(math32.Log(float32(parentVisits))/float32(child.Visits))
		return u + v
	}
}

// ISUCT is UCT with the parent's visit count replaced by the child's own
// availability counter — the information-set variant, since in ISMCTS a
// child isn't legal in every iteration, so the plain parent-visits count
// would overstate how often it could have been chosen.
func ISUCT(c float32) SelectFunc {
	return func(child Stats, _ uint32) float32 {
		if child.Visits == 0 {
			return math32.Inf(1)
		}
		u := child.Reward / float32(child.Visits)
		v := c * math32.Sqrt(math32.Log(float32(child.Availability))/float32(child.Visits))
		return u + v
	}
}

// PUCT is the AlphaZero-style selection formula, Q(s,a) plus an exploration
// bonus weighted by the expansion policy's prior probability and decaying
// as the child accumulates visits. The exploration weight itself grows
// slowly with the parent's total visit count (c1 + ln((n_p+c2+1)/c2)),
// c1 the base exploration constant and c2 controlling how fast that base
// grows as the parent is visited more: Q + weight * child.Psa * sqrt(n_p) /
// (1 + visits). Elvenson-alphabeth/mcts/node.go::Select has the same Q+prior
// shape but a constant weight (its c2 implicitly infinite); this adds back
// the log-growth term.
func PUCT(c1, c2 float32) SelectFunc {
	return func(child Stats, parentVisits uint32) float32 {
		qsa := float32(0)
		if child.Visits > 0 {
			qsa = child.Reward / float32(child.Visits)
		}
		np := float32(parentVisits)
		weight := c1 + math32.Log((np+c2+1)/c2)
		numerator := math32.Sqrt(np)
		denominator := 1.0 + float32(child.Visits)
		return qsa + weight*child.Psa*numerator/denominator
	}
}

// ISPUCT is PUCT with availability substituted for parent visits (in both
// the growth term and the exploration numerator), the information-set
// analogue of ISUCT vs UCT.
func ISPUCT(c1, c2 float32) SelectFunc {
	return func(child Stats, _ uint32) float32 {
		qsa := float32(0)
		if child.Visits > 0 {
			qsa = child.Reward / float32(child.Visits)
		}
		na := float32(child.Availability)
		weight := c1 + math32.Log((na+c2+1)/c2)
		numerator := math32.Sqrt(na)
		denominator := 1.0 + float32(child.Visits)
		return qsa + weight*child.Psa*numerator/denominator
	}
}

// ProgressiveUCT adds a progressive-bias term to UCT: it subtracts the
// child's precomputed static heuristic value divided by visits*d, a
// penalty strongest while the child is lightly visited and fading as
// visits accumulate. Derived
// directly from the spec's "UCT(c) - V_h/(visits*d)" formula; neither the
// teacher nor the original has a literal precedent for this one.
func ProgressiveUCT(c, d float32) SelectFunc {
	uct := UCT(c)
	return func(child Stats, parentVisits uint32) float32 {
		base := uct(child, parentVisits)
		if child.Visits == 0 || d == 0 {
			return base
		}
		return base - child.Heuristic/(float32(child.Visits)*d)
	}
}

// Select walks parent's children and returns the id with the highest
// SelectFunc score, skipping children the caller has already marked
// unavailable by omitting them from legal (pass nil to consider every
// child).
func (t *Tree) Select(parent NodeID, fn SelectFunc, legal map[NodeID]bool) NodeID {
	node := t.Node(parent)
	parentVisits := node.Visits()

	best := NoNode
	var bestScore float32 = math32.Inf(-1)

	for _, kid := range node.Children() {
		if legal != nil && !legal[kid] {
			continue
		}
		score := fn(t.Node(kid).Snapshot(), parentVisits)
		if score > bestScore {
			bestScore = score
			best = kid
		}
	}

	return best
}
