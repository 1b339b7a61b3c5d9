package mcts

// Node is a node in the search tree. Children are owned by their parent,
// transitively rooted at the Search's root; destroying the root frees the
// whole tree since Go's GC reclaims anything no longer reachable. The parent
// pointer is a non-owning back-edge, used only during backpropagation — it
// must never be treated as a second owning link, and never forms a cycle
// that matters for correctness (Go's GC handles the cycle it technically
// creates without leaking).
type Node struct {
	parent     *Node
	children   []*Node
	action     Action
	visits     int
	totalValue float64
	untried    []Action
	terminal   bool
	// deadEnd marks a non-terminal-by-the-game's-own-definition state that
	// nonetheless has no legal actions; it is treated as terminal with
	// payoff 0, per the empty-action-set contract.
	deadEnd bool
	// player is the player to act when this node was created. It anchors
	// which player's payoff a terminal (or dead-end) node's value represents.
	player int
}

// Visits returns the number of times this node was visited during search.
func (n *Node) Visits() int { return n.visits }

// AverageValue returns total_value/visits, or 0 if the node was never visited.
func (n *Node) AverageValue() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.totalValue / float64(n.visits)
}

// Action returns the action that led from this node's parent to this node.
func (n *Node) Action() Action { return n.action }

// Children returns the node's expanded children.
func (n *Node) Children() []*Node { return n.children }
