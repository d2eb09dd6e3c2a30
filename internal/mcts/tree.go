package mcts

import (
	"sync"

	"github.com/jablinski/stratengine/internal/board"
)

// Tree is an arena of Nodes addressed by NodeID, grounded on the teacher's
// mcts.MCTS arena (an index-addressed []Node rather than the Rust
// original's Rc<RefCell>/Weak graph) — the idiomatic Go shape shown
// throughout the retrieved pack for owning a mutable tree without
// reference cycles.
type Tree struct {
	mu    sync.Mutex
	nodes []*Node
}

// NewTree returns a tree containing only its root node (NodeID 0).
func NewTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, &Node{})
	return t
}

// Root is always NodeID 0.
func (t *Tree) Root() NodeID { return 0 }

// Node returns the node at id.
func (t *Tree) Node(id NodeID) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nodes[id]
}

// alloc appends a new node and returns its id.
func (t *Tree) alloc(mov board.Move, psa float32) NodeID {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{Move: mov, Psa: psa})
	return id
}

// Expand populates parent's children from moves/priors, once. Later calls
// are no-ops; the search variants check Node.Expanded before calling it.
func (t *Tree) Expand(parent NodeID, moves []board.Move, priors []float32) {
	node := t.Node(parent)
	node.mu.Lock()
	if node.expanded {
		node.mu.Unlock()
		return
	}
	node.expanded = true
	node.mu.Unlock()

	children := make([]NodeID, len(moves))
	for i, mov := range moves {
		var p float32
		if priors != nil {
			p = priors[i]
		}
		children[i] = t.alloc(mov, p)
	}

	node.mu.Lock()
	node.children = children
	node.mu.Unlock()
}

// FindChild returns the child of parent playing mov, or NoNode.
func (t *Tree) FindChild(parent NodeID, mov board.Move) NodeID {
	node := t.Node(parent)
	for _, kid := range node.Children() {
		if t.Node(kid).Move == mov {
			return kid
		}
	}
	return NoNode
}

// Size returns the number of allocated nodes, for diagnostics/tests.
func (t *Tree) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.nodes)
}
