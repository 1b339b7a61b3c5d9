package cfr

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// discount factors applied every discountInterval iterations. These are
// constant multipliers, not functions of the iteration number: regrets are
// scaled by 1/1.5 and strategy sums by 1/0.5 every 100 iterations, matching
// the fixed discount_alpha/discount_beta schedule of the reference solver
// rather than a Discounted-CFR schedule that grows with t.
const (
	discountInterval     = 100
	regretDiscountFactor = 1.0 / 1.5
	strategyDiscountFactor = 1.0 / 0.5
)

// Solver runs tabular CFR+ with linear averaging over a Game's information
// sets. It is safe to call Train repeatedly on the same Solver to keep
// refining an existing table.
type Solver struct {
	table     *infoSetTable
	iteration int
}

// NewSolver creates a Solver with an empty information-set table.
func NewSolver() *Solver {
	return &Solver{table: newInfoSetTable()}
}

// Train runs n additional CFR+ iterations against game, which must start at
// the root state the solver should train over. Each iteration performs one
// recursive walk of the tree per player, and every discountInterval
// iterations it discounts the accumulated regret and strategy sums.
func (s *Solver) Train(game Game, n int) {
	for i := 0; i < n; i++ {
		s.iteration++
		weight := float64(s.iteration) / float64(s.iteration+1)
		for player := 0; player < 2; player++ {
			s.cfr(game, player, weight, 1.0, 1.0)
		}
		if s.iteration%discountInterval == 0 {
			s.table.forEach(func(_ string, e *InfoSetEntry) {
				e.discount(regretDiscountFactor, strategyDiscountFactor)
			})
		}
	}
}

// cfr performs one recursive walk of game from its current state, computing
// the counterfactual value for traverser. reachTraverser and reachOthers are
// the product of action probabilities taken so far under the current
// strategy, split by whether that probability belonged to the traverser or
// to every other acting player (including chance).
func (s *Solver) cfr(game Game, traverser int, iterationWeight, reachTraverser, reachOthers float64) float64 {
	switch {
	case game.IsTerminal():
		return game.Payoff(traverser)
	case game.IsChanceNode():
		return s.cfrChance(game, traverser, iterationWeight, reachTraverser, reachOthers)
	case game.CurrentPlayer() == traverser:
		return s.cfrTraverserNode(game, traverser, iterationWeight, reachTraverser, reachOthers)
	default:
		return s.cfrOpponentNode(game, traverser, iterationWeight, reachTraverser, reachOthers)
	}
}

func (s *Solver) cfrChance(game Game, traverser int, iterationWeight, reachTraverser, reachOthers float64) float64 {
	outcomes := game.ChanceOutcomes()
	total := 0.0
	for _, outcome := range outcomes {
		game.Apply(outcome.Action)
		total += outcome.Probability * s.cfr(game, traverser, iterationWeight, reachTraverser, reachOthers*outcome.Probability)
		game.Revert(outcome.Action)
	}
	return total
}

func (s *Solver) cfrTraverserNode(game Game, traverser int, iterationWeight, reachTraverser, reachOthers float64) float64 {
	actions := game.LegalActions()
	key := game.InfoSetKey()
	entry := s.table.get(key, len(actions))
	strategy := entry.strategy(len(actions))

	utilities := make([]float64, len(actions))
	nodeUtil := 0.0
	for i, action := range actions {
		game.Apply(action)
		utilities[i] = s.cfr(game, traverser, iterationWeight, reachTraverser*strategy[i], reachOthers)
		game.Revert(action)
		nodeUtil += strategy[i] * utilities[i]
	}

	regret := make([]float64, len(actions))
	for i := range actions {
		regret[i] = utilities[i] - nodeUtil
	}
	entry.update(regret, strategy, reachOthers, reachTraverser, iterationWeight)
	return nodeUtil
}

func (s *Solver) cfrOpponentNode(game Game, traverser int, iterationWeight, reachTraverser, reachOthers float64) float64 {
	actions := game.LegalActions()
	key := game.InfoSetKey()
	entry := s.table.get(key, len(actions))
	strategy := entry.strategy(len(actions))

	nodeUtil := 0.0
	for i, action := range actions {
		game.Apply(action)
		nodeUtil += strategy[i] * s.cfr(game, traverser, iterationWeight, reachTraverser, reachOthers*strategy[i])
		game.Revert(action)
	}
	return nodeUtil
}

// Strategy returns the current (not averaged) regret-matching strategy for
// an information set with the given action count, without mutating the
// table — info sets never visited during training fall back to uniform.
func (s *Solver) Strategy(key string, actionCount int) []float64 {
	entry, ok := s.table.lookup(key)
	if !ok {
		uniform := make([]float64, actionCount)
		for i := range uniform {
			uniform[i] = 1.0 / float64(actionCount)
		}
		return uniform
	}
	return entry.strategy(actionCount)
}

// AverageStrategy returns the time-averaged strategy for an information
// set, which is what CFR actually converges to a Nash equilibrium in.
func (s *Solver) AverageStrategy(key string, actionCount int) []float64 {
	entry, ok := s.table.lookup(key)
	if !ok {
		uniform := make([]float64, actionCount)
		for i := range uniform {
			uniform[i] = 1.0 / float64(actionCount)
		}
		return uniform
	}
	return entry.averageStrategy(actionCount)
}

// InfoSetCount returns the number of distinct information sets visited so far.
func (s *Solver) InfoSetCount() int { return s.table.size() }

// Iteration returns the number of completed training iterations.
func (s *Solver) Iteration() int { return s.iteration }

// RegretConvergenceProxy estimates how far the current strategy is from
// equilibrium without computing a true best response: it is the mean, over
// all visited information sets, of the positive regret mass remaining at
// that set. It trends toward zero as training progresses but is not itself
// a bound on exploitability.
func (s *Solver) RegretConvergenceProxy() float64 {
	if s.iteration == 0 || s.table.size() == 0 {
		return 0
	}
	total := 0.0
	count := 0
	s.table.forEach(func(_ string, e *InfoSetEntry) {
		total += e.positiveRegretMass()
		count++
	})
	return total / float64(count)
}

// Run identifies one TrainParallel replica, surfaced so callers can log or
// report per-replica progress.
type Run struct {
	ID         uuid.UUID
	Iterations int
	Proxy      float64
}

// NewGameFunc constructs a fresh Game instance at its root state. TrainParallel
// calls it once per replica, since a single Game cannot be shared safely
// across concurrent traversals.
type NewGameFunc func() Game

// TrainParallel runs independent CFR+ replicas concurrently, each with its
// own empty information-set table and its own Game from newGame, then merges every
// replica's regret and strategy sums into the Solver's table by simple
// summation. This trades a small amount of statistical efficiency (each
// replica sees fewer iterations than a single-threaded run of the same
// wall-clock budget) for linear scaling across cores, the same tradeoff the
// Monte Carlo equity engine makes with its worker pool.
func (s *Solver) TrainParallel(ctx context.Context, newGame NewGameFunc, replicas, iterationsPerReplica int) ([]Run, error) {
	if replicas < 1 {
		return nil, fmt.Errorf("cfr: replicas must be >= 1, got %d", replicas)
	}
	runs := make([]Run, replicas)
	tables := make([]*infoSetTable, replicas)

	group, _ := errgroup.WithContext(ctx)
	for r := 0; r < replicas; r++ {
		r := r
		group.Go(func() error {
			replica := &Solver{table: newInfoSetTable()}
			replica.Train(newGame(), iterationsPerReplica)
			tables[r] = replica.table
			runs[r] = Run{ID: uuid.New(), Iterations: iterationsPerReplica, Proxy: replica.RegretConvergenceProxy()}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	s.iteration += iterationsPerReplica
	for _, table := range tables {
		table.forEach(func(key string, e *InfoSetEntry) {
			dst := s.table.get(key, len(e.regretSum))
			dst.mu.Lock()
			for i := range e.regretSum {
				dst.regretSum[i] += e.regretSum[i]
				if dst.regretSum[i] < 0 {
					dst.regretSum[i] = 0
				}
				dst.strategySum[i] += e.strategySum[i]
			}
			dst.mu.Unlock()
		})
	}
	return runs, nil
}
