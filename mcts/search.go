package mcts

import (
	"math"
	"math/rand"
)

const explorationConstant = 1.4142135623730951 // sqrt(2)
const maxSimulationDepth = 100

// Stats summarizes a completed set of search iterations.
type Stats struct {
	Simulations int
	TreeDepth   int
	NodeCount   int
	BestValue   float64
}

// Search drives UCT tree search over a Game. It is single-threaded: all
// mutation of the tree and of the underlying Game happens on the calling
// goroutine.
type Search struct {
	root        *Node
	game        Game
	rng         *rand.Rand
	simulations int
}

// New creates a search rooted at the Game's current state. The Game's
// current state becomes the tree's root; Search drives it forward and
// back via Apply/Revert but always returns it to this state between
// iterations.
func New(game Game, rng *rand.Rand) *Search {
	root := newNodeFromCurrentState(game, nil, nil)
	return &Search{root: root, game: game, rng: rng}
}

func newNodeFromCurrentState(game Game, parent *Node, action Action) *Node {
	n := &Node{parent: parent, action: action, player: game.CurrentPlayer()}
	if game.IsTerminal() {
		n.terminal = true
		return n
	}
	actions := game.LegalActions()
	if len(actions) == 0 {
		n.terminal = true
		n.deadEnd = true
		return n
	}
	n.untried = actions
	return n
}

// Search performs i UCT iterations.
func (s *Search) Search(iterations int) {
	for i := 0; i < iterations; i++ {
		s.iterate()
	}
}

func (s *Search) iterate() {
	node := s.root
	var path []Action

	// Selection: descend while the node has no untried actions and has children.
	for len(node.untried) == 0 && len(node.children) > 0 {
		node = selectBestChild(node)
		path = append(path, node.action)
		s.game.Apply(node.action)
	}

	// Expansion: uniformly pick one untried action, if any, and not terminal.
	if len(node.untried) > 0 && !node.terminal {
		idx := s.rng.Intn(len(node.untried))
		action := node.untried[idx]
		node.untried[idx] = node.untried[len(node.untried)-1]
		node.untried = node.untried[:len(node.untried)-1]

		s.game.Apply(action)
		path = append(path, action)

		child := newNodeFromCurrentState(s.game, node, action)
		node.children = append(node.children, child)
		node = child
	}

	value := s.simulate(node)

	for n := node; n != nil; n = n.parent {
		n.visits++
		n.totalValue += value
		value = -value
	}

	for i := len(path) - 1; i >= 0; i-- {
		s.game.Revert(path[i])
	}

	s.simulations++
}

func (s *Search) simulate(node *Node) float64 {
	if node.deadEnd {
		return 0
	}
	if node.terminal {
		return s.game.Payoff(node.player)
	}

	var applied []Action
	depth := 0
	for depth < maxSimulationDepth && !s.game.IsTerminal() {
		actions := s.game.LegalActions()
		if len(actions) == 0 {
			break
		}
		a := actions[s.rng.Intn(len(actions))]
		s.game.Apply(a)
		applied = append(applied, a)
		depth++
	}

	var value float64
	if s.game.IsTerminal() {
		value = s.game.Payoff(node.player)
	}

	for i := len(applied) - 1; i >= 0; i-- {
		s.game.Revert(applied[i])
	}
	return value
}

func selectBestChild(node *Node) *Node {
	var best *Node
	bestScore := math.Inf(-1)
	for _, child := range node.children {
		score := uctScore(child, node)
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

func uctScore(node, parent *Node) float64 {
	if node.visits == 0 {
		return math.Inf(1)
	}
	exploitation := node.totalValue / float64(node.visits)
	exploration := explorationConstant * math.Sqrt(math.Log(float64(parent.visits))/float64(node.visits))
	return exploitation + exploration
}

// BestAction returns the most-visited root child's action, or nil if the
// root was never expanded.
func (s *Search) BestAction() Action {
	var best *Node
	maxVisits := -1
	for _, child := range s.root.children {
		if child.visits > maxVisits {
			maxVisits = child.visits
			best = child
		}
	}
	if best == nil {
		return nil
	}
	return best.action
}

// Policy returns the visit-count distribution over root children, paired
// with the action each entry corresponds to. It sums to 1 when at least one
// child exists.
func (s *Search) Policy() (actions []Action, probabilities []float64) {
	total := 0
	for _, child := range s.root.children {
		total += child.visits
	}
	if total == 0 {
		return nil, nil
	}
	actions = make([]Action, len(s.root.children))
	probabilities = make([]float64, len(s.root.children))
	for i, child := range s.root.children {
		actions[i] = child.action
		probabilities[i] = float64(child.visits) / float64(total)
	}
	return actions, probabilities
}

// Stats returns search statistics: total simulations run, the tree's depth,
// its node count, and the best average value among root children.
func (s *Search) Stats() Stats {
	stats := Stats{Simulations: s.simulations}
	stats.TreeDepth = treeDepth(s.root)
	stats.NodeCount = nodeCount(s.root)
	best := math.Inf(-1)
	for _, child := range s.root.children {
		if v := child.AverageValue(); v > best {
			best = v
		}
	}
	if len(s.root.children) == 0 {
		best = 0
	}
	stats.BestValue = best
	return stats
}

// Root exposes the root node, mainly for tests and diagnostics.
func (s *Search) Root() *Node { return s.root }

func treeDepth(n *Node) int {
	if len(n.children) == 0 {
		return 0
	}
	max := 0
	for _, c := range n.children {
		if d := treeDepth(c); d > max {
			max = d
		}
	}
	return max + 1
}

func nodeCount(n *Node) int {
	count := 1
	for _, c := range n.children {
		count += nodeCount(c)
	}
	return count
}
