// Command handeval evaluates No-Limit Hold'em hands and estimates equity
// for two or more specified hole-card holdings against a partial or empty
// board, via Monte Carlo board completion.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/lox/holdem-engine/internal/xlog"
	"github.com/lox/holdem-engine/poker"
)

type CLI struct {
	Debug         bool     `help:"enable debug logging"`
	Hands         []string `arg:"" help:"Player hands in format 'AcKd QhJs' (space separated, quoted)" required:"true"`
	Board         string   `short:"b" help:"Community board cards (e.g. 'Td7s8h')"`
	Possibilities bool     `short:"p" help:"Show detailed hand category breakdown"`
	Iterations    int      `short:"i" help:"Number of Monte Carlo iterations" default:"100000"`
	Seed          int64    `help:"Random seed for reproducible results (0 draws a nondeterministic seed)"`
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	handStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	winStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tieStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	percentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	log.Logger = xlog.Setup(cli.Debug)

	hands, err := parseHands(cli.Hands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing hands: %v\n", err)
		ctx.Exit(1)
	}

	var board []poker.Card
	if cli.Board != "" {
		board, err = poker.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error parsing board: %v\n", err)
			ctx.Exit(1)
		}
		if len(board) > 5 {
			fmt.Fprintf(os.Stderr, "board cannot have more than 5 cards\n")
			ctx.Exit(1)
		}
	}

	log.Debug().Int("hands", len(hands)).Int("board_cards", len(board)).Int("iterations", cli.Iterations).Msg("starting equity run")

	start := time.Now()
	results, err := poker.EstimateMultiwayEquity(context.Background(), hands, board, cli.Iterations, uint64(cli.Seed))
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		ctx.Exit(1)
	}

	log.Debug().Dur("elapsed", elapsed).Msg("equity run complete")

	displayResults(hands, results, board, cli.Possibilities, elapsed)
}

func parseHands(handStrings []string) ([][2]poker.Card, error) {
	var hands [][2]poker.Card
	for i, s := range handStrings {
		s = strings.TrimSpace(s)
		cards, err := poker.ParseCards(strings.ReplaceAll(s, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(cards) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(cards))
		}
		hands = append(hands, [2]poker.Card{cards[0], cards[1]})
	}
	return hands, nil
}

func displayResults(hands [][2]poker.Card, results []poker.MultiwayEquityResult, board []poker.Card, showPossibilities bool, elapsed time.Duration) {
	if len(board) > 0 {
		fmt.Printf("%s\n", headerStyle.Render("board"))
		fmt.Printf("%s\n\n", formatCards(board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", headerStyle.Render("hand"), headerStyle.Render("preflop"), headerStyle.Render("win"), headerStyle.Render("tie"))
	for i, r := range results {
		winPct := float64(r.Wins) / float64(r.Iterations) * 100
		tiePct := float64(r.Ties) / float64(r.Iterations) * 100
		preflop := poker.CategorizeHoleCards(hands[i][0], hands[i][1])
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			handStyle.Render(formatCards(hands[i][:])),
			categoryStyle.Render(string(preflop)),
			winStyle.Render(fmt.Sprintf("%.1f%%", winPct)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", tiePct)))
	}
	w.Flush()

	if showPossibilities && len(results) > 0 {
		fmt.Println()
		displayPossibilities(hands, results)
	}

	fmt.Printf("\n%d iterations in %v\n", results[0].Iterations, elapsed.Truncate(time.Millisecond))
}

var categoryOrder = []poker.HandCategory{
	poker.CategoryStraightFlush, poker.CategoryFourOfAKind, poker.CategoryFullHouse,
	poker.CategoryFlush, poker.CategoryStraight, poker.CategoryThreeOfAKind,
	poker.CategoryTwoPair, poker.CategoryOnePair, poker.CategoryHighCard,
}

func displayPossibilities(hands [][2]poker.Card, results []poker.MultiwayEquityResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s", categoryStyle.Render("category"))
	for _, hand := range hands {
		fmt.Fprintf(w, "\t%s", handStyle.Render(formatCards(hand[:])))
	}
	fmt.Fprintln(w)

	for _, cat := range categoryOrder {
		fmt.Fprintf(w, "%s", categoryStyle.Render(cat.String()))
		for _, r := range results {
			count := r.Categories[cat]
			if count == 0 {
				fmt.Fprintf(w, "\t%s", percentStyle.Render("."))
				continue
			}
			pct := float64(count) / float64(r.Iterations) * 100
			fmt.Fprintf(w, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", pct)))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func formatCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
