// Package mcts implements a generic UCT tree search over a pluggable game
// interface, producing visit-count-weighted action policies.
package mcts

// Action identifies a move available to the player to act at a node. Games
// compare actions with ==, so any comparable type (an int, a small struct) works.
type Action any

// Game is the collaborator the search drives. An implementation owns its own
// simulation stack: Apply/Revert must form a perfect stack, every Apply
// paired with a Revert on the reverse traversal path, because Selection,
// Expansion, and Simulation all push and pop moves on the same underlying
// state rather than materializing a new copy per node.
type Game interface {
	// IsTerminal reports whether the current state has no further moves.
	IsTerminal() bool
	// CurrentPlayer returns the player to act, 0 or 1.
	CurrentPlayer() int
	// LegalActions returns the actions available at the current state.
	LegalActions() []Action
	// Apply advances the state by playing action.
	Apply(action Action)
	// Revert undoes the most recent Apply.
	Revert(action Action)
	// Payoff returns the terminal payoff to player. Only called when IsTerminal.
	Payoff(player int) float64
}
