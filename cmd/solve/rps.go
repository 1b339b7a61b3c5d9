package main

import "github.com/lox/holdem-engine/cfr"

// rpsGame models rock-paper-scissors as a two-decision-node extensive-form
// game: player 0 chooses first but player 1's information set never reveals
// that choice, so player 1 has exactly one information set regardless of
// history, which is how simultaneous-move games are folded into CFR's
// sequential tree.
type rpsGame struct {
	p0, p1 int // -1 until chosen
}

const (
	rpsRock = iota
	rpsPaper
	rpsScissors
)

func newRPSGame() *rpsGame { return &rpsGame{p0: -1, p1: -1} }

func (g *rpsGame) IsTerminal() bool              { return g.p0 != -1 && g.p1 != -1 }
func (g *rpsGame) IsChanceNode() bool            { return false }
func (g *rpsGame) ChanceOutcomes() []cfr.Outcome { return nil }

func (g *rpsGame) CurrentPlayer() int {
	if g.p0 == -1 {
		return 0
	}
	return 1
}

func (g *rpsGame) LegalActions() []cfr.Action {
	return []cfr.Action{rpsRock, rpsPaper, rpsScissors}
}

func (g *rpsGame) Apply(a cfr.Action) {
	if g.p0 == -1 {
		g.p0 = a.(int)
		return
	}
	g.p1 = a.(int)
}

func (g *rpsGame) Revert(a cfr.Action) {
	if g.p1 != -1 {
		g.p1 = -1
		return
	}
	g.p0 = -1
}

func (g *rpsGame) Payoff(player int) float64 {
	a, b := g.p0, g.p1
	if player == 1 {
		a, b = g.p1, g.p0
	}
	if a == b {
		return 0
	}
	if (a == rpsRock && b == rpsScissors) || (a == rpsPaper && b == rpsRock) || (a == rpsScissors && b == rpsPaper) {
		return 1
	}
	return -1
}

func (g *rpsGame) InfoSetKey() string {
	if g.p0 == -1 {
		return "p0"
	}
	return "p1"
}

var rpsMoveNames = []string{"rock", "paper", "scissors"}

var rpsInfoSets = []string{"p0", "p1"}
