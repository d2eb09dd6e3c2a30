// Package mcts implements the tree-node abstraction shared by every search
// variant (cheating MCTS, PIMC, SO-ISMCTS, MO-ISMCTS) along with the
// pluggable selection formulas used to walk it.
package mcts

import (
	"sync"

	"github.com/jablinski/stratengine/internal/board"
)

// NodeID indexes into a Tree's arena. The root is always allocated first at
// index 0, so the zero value refers to the root; use NoNode for "absent".
type NodeID int32

// NoNode marks the absence of a node (e.g. no parent, no child found).
const NoNode NodeID = -1

// Node is one tree position: the move that leads into it from its parent,
// and the running statistics search accumulates there. All mutable fields
// are guarded by mu so the same node can be visited by concurrently
// running matches that happen to share a PIMC determinization fan-out.
type Node struct {
	mu sync.Mutex

	Move         board.Move
	Psa          float32 // prior probability this move had under the expansion policy
	Heuristic    float32 // static heuristic value, used by progressive-bias selection
	visits       uint32
	availability uint32 // ISMCTS: how often this move was legal when its parent was visited
	reward       float32

	children []NodeID
	expanded bool
}

// Stats is an immutable snapshot of a node's statistics, handed to
// selection formulas so they never need to reach back into the tree's
// locking.
type Stats struct {
	Visits       uint32
	Availability uint32
	Reward       float32
	Psa          float32
	Heuristic    float32
}

// Snapshot returns a thread-safe copy of the node's current statistics.
func (n *Node) Snapshot() Stats {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Stats{
		Visits:       n.visits,
		Availability: n.availability,
		Reward:       n.reward,
		Psa:          n.Psa,
		Heuristic:    n.Heuristic,
	}
}

// Update records the outcome of one simulation through this node.
func (n *Node) Update(reward float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reward += reward
	n.visits++
}

// Visit increments the visit count without touching reward, used for the
// root node, which has no incoming move to score.
func (n *Node) Visit() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visits++
}

// MarkAvailable increments the availability counter — called for every
// child that was a legal move under the current iteration's
// determinization, whether or not it was the one descended into.
func (n *Node) MarkAvailable() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.availability++
}

// Visits returns the number of times this node has been updated.
func (n *Node) Visits() uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visits
}

// Reward returns the accumulated (not averaged) reward.
func (n *Node) Reward() float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.reward
}

// Expanded reports whether Tree.Expand has already populated this node's
// children.
func (n *Node) Expanded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.expanded
}

// SetPsa overwrites the node's prior probability, used by AddRootNoise to
// mix Dirichlet exploration noise into the root's children after expansion.
func (n *Node) SetPsa(psa float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Psa = psa
}

// Children returns a copy of the child list.
func (n *Node) Children() []NodeID {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}
