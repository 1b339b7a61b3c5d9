package main

import "github.com/lox/holdem-engine/cfr"

// kuhnGame is three-card Kuhn poker, the standard toy game used to sanity
// check a CFR implementation: small enough to solve exactly, with a known
// equilibrium value of -1/18 per hand to the first player to act.
type kuhnGame struct {
	cards   [2]int
	dealt   int
	history string
}

func newKuhnGame() *kuhnGame { return &kuhnGame{cards: [2]int{-1, -1}} }

const (
	kuhnPass = "p"
	kuhnBet  = "b"
)

func (g *kuhnGame) IsChanceNode() bool { return g.dealt < 2 }

func (g *kuhnGame) ChanceOutcomes() []cfr.Outcome {
	if g.dealt == 0 {
		return []cfr.Outcome{{Action: 0, Probability: 1.0 / 3}, {Action: 1, Probability: 1.0 / 3}, {Action: 2, Probability: 1.0 / 3}}
	}
	var outcomes []cfr.Outcome
	for card := 0; card < 3; card++ {
		if card == g.cards[0] {
			continue
		}
		outcomes = append(outcomes, cfr.Outcome{Action: card, Probability: 0.5})
	}
	return outcomes
}

func (g *kuhnGame) IsTerminal() bool {
	switch g.history {
	case "pp", "bp", "bb", "pbp", "pbb":
		return true
	default:
		return false
	}
}

func (g *kuhnGame) CurrentPlayer() int {
	if len(g.history)%2 == 0 {
		return 0
	}
	return 1
}

func (g *kuhnGame) LegalActions() []cfr.Action { return []cfr.Action{kuhnPass, kuhnBet} }

func (g *kuhnGame) Apply(a cfr.Action) {
	if g.dealt < 2 {
		g.cards[g.dealt] = a.(int)
		g.dealt++
		return
	}
	g.history += a.(string)
}

func (g *kuhnGame) Revert(a cfr.Action) {
	if len(g.history) > 0 {
		g.history = g.history[:len(g.history)-1]
		return
	}
	g.dealt--
	g.cards[g.dealt] = -1
}

func (g *kuhnGame) contributions() [2]int {
	contrib := [2]int{1, 1}
	actor := 0
	for _, c := range g.history {
		if string(c) == kuhnBet {
			if contrib[actor] < contrib[1-actor] {
				contrib[actor] = contrib[1-actor]
			} else {
				contrib[actor] = contrib[1-actor] + 1
			}
		}
		actor = 1 - actor
	}
	return contrib
}

func (g *kuhnGame) Payoff(player int) float64 {
	contrib := g.contributions()
	opponent := 1 - player

	folded := -1
	switch g.history {
	case "bp":
		folded = 1
	case "pbp":
		folded = 0
	}
	if folded != -1 {
		if folded == player {
			return -float64(contrib[player])
		}
		return float64(contrib[opponent])
	}

	if g.cards[player] > g.cards[opponent] {
		return float64(contrib[opponent])
	}
	return -float64(contrib[player])
}

func (g *kuhnGame) InfoSetKey() string {
	player := g.CurrentPlayer()
	return string(rune('A'+g.cards[player])) + ":" + g.history
}
