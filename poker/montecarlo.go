package poker

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/randutil"
)

// EquityResult summarizes a Monte Carlo equity run. wins + ties + losses
// always equals iterations; equity = (wins + 0.5*ties) / iterations.
type EquityResult struct {
	Wins       int
	Ties       int
	Losses     int
	Iterations int
	Equity     float32
}

// EstimateEquity estimates hero's equity against opponents random opponent
// holdings given a partially or fully revealed board, by partitioning
// iterations across parallel workers. Each worker owns an independent
// XorShift64* generator seeded from baseSeed+workerIndex; workers never share
// mutable state. Board must contain 0, 3, 4, or 5 cards.
//
// A baseSeed of 0 means "draw from a nondeterministic source"; different
// worker counts may produce different bit patterns even with the same seed,
// though each run with a fixed seed and worker count is bit-exact
// reproducible.
func EstimateEquity(ctx context.Context, hero [2]Card, board []Card, opponents, iterations int, baseSeed uint64) (EquityResult, error) {
	if len(board) != 0 && len(board) != 3 && len(board) != 4 && len(board) != 5 {
		return EquityResult{}, fmt.Errorf("poker: board must have 0, 3, 4, or 5 cards, got %d", len(board))
	}
	if opponents < 1 {
		return EquityResult{}, fmt.Errorf("poker: opponents must be >= 1, got %d", opponents)
	}
	needed := 2 + len(board) + 2*opponents
	if needed > 52 {
		return EquityResult{}, fmt.Errorf("poker: insufficient deck: need %d cards, have 52", needed)
	}
	if iterations == 0 {
		return EquityResult{}, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > iterations {
		workers = iterations
	}
	if workers < 1 {
		workers = 1
	}

	if baseSeed == 0 {
		baseSeed = uint64(randutil.New(time.Now().UnixNano()).Int64())
	}

	dead := NewCardMask(hero[0], hero[1])
	for _, c := range board {
		dead = dead.Add(c)
	}

	per := iterations / workers
	remainder := iterations % workers

	results := make([]EquityResult, workers)
	group, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		n := per
		if w < remainder {
			n++
		}
		group.Go(func() error {
			results[w] = runEquityWorker(hero, board, dead, opponents, n, baseSeed+uint64(w))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total EquityResult
	for _, r := range results {
		total.Wins += r.Wins
		total.Ties += r.Ties
		total.Losses += r.Losses
		total.Iterations += r.Iterations
	}
	total.Equity = float32(float64(total.Wins)+0.5*float64(total.Ties)) / float32(total.Iterations)
	return total, nil
}

// MultiwayEquityResult summarizes one hand's outcome in a multiway Monte
// Carlo run where every competing hand is fully specified (no random
// opponent holdings). Wins + ties always <= Iterations; equity = (wins +
// 0.5*ties) / iterations.
type MultiwayEquityResult struct {
	Wins       int
	Ties       int
	Iterations int
	Equity     float32
	Categories map[HandCategory]int
}

// EstimateMultiwayEquity estimates equity for each of several fully
// specified hole-card hands competing head-to-head over random board
// completions, partitioning iterations across parallel workers the same
// way EstimateEquity does. Unlike EstimateEquity, every hand is already
// known; nothing is dealt to an opponent. Board must contain 0, 3, 4, or 5
// cards, and hands must not share any card with each other or the board.
func EstimateMultiwayEquity(ctx context.Context, hands [][2]Card, board []Card, iterations int, baseSeed uint64) ([]MultiwayEquityResult, error) {
	if len(hands) < 2 {
		return nil, fmt.Errorf("poker: multiway equity needs at least 2 hands, got %d", len(hands))
	}
	if len(board) != 0 && len(board) != 3 && len(board) != 4 && len(board) != 5 {
		return nil, fmt.Errorf("poker: board must have 0, 3, 4, or 5 cards, got %d", len(board))
	}

	var dead CardMask
	check := func(c Card) error {
		if dead.Contains(c) {
			return fmt.Errorf("poker: duplicate card %s", c)
		}
		dead = dead.Add(c)
		return nil
	}
	for _, c := range board {
		if err := check(c); err != nil {
			return nil, err
		}
	}
	for _, hand := range hands {
		for _, c := range hand {
			if err := check(c); err != nil {
				return nil, err
			}
		}
	}

	needed := len(board) + 2*len(hands)
	if needed > 52 {
		return nil, fmt.Errorf("poker: insufficient deck: need %d cards, have 52", needed)
	}
	if iterations == 0 {
		return make([]MultiwayEquityResult, len(hands)), nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > iterations {
		workers = iterations
	}
	if workers < 1 {
		workers = 1
	}
	if baseSeed == 0 {
		baseSeed = uint64(randutil.New(time.Now().UnixNano()).Int64())
	}

	per := iterations / workers
	remainder := iterations % workers

	perWorker := make([][]MultiwayEquityResult, workers)
	group, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		n := per
		if w < remainder {
			n++
		}
		group.Go(func() error {
			perWorker[w] = runMultiwayEquityWorker(hands, board, dead, n, baseSeed+uint64(w))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	totals := make([]MultiwayEquityResult, len(hands))
	for i := range totals {
		totals[i].Categories = make(map[HandCategory]int)
	}
	for _, worker := range perWorker {
		for i, r := range worker {
			totals[i].Wins += r.Wins
			totals[i].Ties += r.Ties
			totals[i].Iterations += r.Iterations
			for cat, n := range r.Categories {
				totals[i].Categories[cat] += n
			}
		}
	}
	for i := range totals {
		totals[i].Equity = float32(float64(totals[i].Wins)+0.5*float64(totals[i].Ties)) / float32(totals[i].Iterations)
	}
	return totals, nil
}

func runMultiwayEquityWorker(hands [][2]Card, board []Card, dead CardMask, iterations int, seed uint64) []MultiwayEquityResult {
	results := make([]MultiwayEquityResult, len(hands))
	for i := range results {
		results[i].Iterations = iterations
		results[i].Categories = make(map[HandCategory]int)
	}
	if iterations == 0 {
		return results
	}
	rng := newXorshift64Star(seed)

	live := make([]Card, 0, 52)
	for c := Card(0); c < 52; c++ {
		if !dead.Contains(c) {
			live = append(live, c)
		}
	}

	toDeal := 5 - len(board)
	var fullBoard [5]Card
	copy(fullBoard[:], board)

	scores := make([]HandScore, len(hands))
	hole := make([][7]Card, len(hands))
	for i, hand := range hands {
		hole[i][0], hole[i][1] = hand[0], hand[1]
	}

	for iter := 0; iter < iterations; iter++ {
		for i := len(live) - 1; i > 0; i-- {
			j := rng.intn(i + 1)
			live[i], live[j] = live[j], live[i]
		}
		copy(fullBoard[len(board):], live[:toDeal])

		best := HandScore(0)
		for i := range hands {
			copy(hole[i][2:], fullBoard[:])
			scores[i] = Evaluate7(hole[i])
			results[i].Categories[scores[i].Category()]++
			if scores[i] > best {
				best = scores[i]
			}
		}

		winners := 0
		for _, s := range scores {
			if s == best {
				winners++
			}
		}
		for i, s := range scores {
			if s != best {
				continue
			}
			if winners == 1 {
				results[i].Wins++
			} else {
				results[i].Ties++
			}
		}
	}

	return results
}

func runEquityWorker(hero [2]Card, board []Card, dead CardMask, opponents, iterations int, seed uint64) EquityResult {
	result := EquityResult{Iterations: iterations}
	if iterations == 0 {
		return result
	}
	rng := newXorshift64Star(seed)

	live := make([]Card, 0, 52)
	for c := Card(0); c < 52; c++ {
		if !dead.Contains(c) {
			live = append(live, c)
		}
	}

	var fullBoard [5]Card
	copy(fullBoard[:], board)
	toDeal := 5 - len(board)

	var heroHand, oppHand [7]Card
	heroHand[0], heroHand[1] = hero[0], hero[1]

	for iter := 0; iter < iterations; iter++ {
		for i := len(live) - 1; i > 0; i-- {
			j := rng.intn(i + 1)
			live[i], live[j] = live[j], live[i]
		}

		pos := 0
		for i := 0; i < toDeal; i++ {
			fullBoard[len(board)+i] = live[pos]
			pos++
		}
		copy(heroHand[2:], fullBoard[:])
		heroScore := Evaluate7(heroHand)

		won, tied := true, false
		for o := 0; o < opponents; o++ {
			oppHand[0] = live[pos]
			oppHand[1] = live[pos+1]
			pos += 2
			copy(oppHand[2:], fullBoard[:])
			oppScore := Evaluate7(oppHand)

			if oppScore > heroScore {
				won = false
				break
			} else if oppScore == heroScore {
				tied = true
			}
		}

		switch {
		case !won:
			result.Losses++
		case tied:
			result.Ties++
		default:
			result.Wins++
		}
	}

	return result
}
