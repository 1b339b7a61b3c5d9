package cfr

import (
	"hash/fnv"
	"sync"
)

// InfoSetEntry accumulates regrets and cumulative strategy for one information
// set. Regret and strategy sums are kept as dense slices indexed by a
// canonical action ordering rather than a general associative map, since the
// action set at an info set is bounded and known once the first visit sizes it.
type InfoSetEntry struct {
	mu          sync.Mutex
	regretSum   []float64
	strategySum []float64
	visitCount  int
}

func (e *InfoSetEntry) ensureSize(n int) {
	if len(e.regretSum) >= n {
		return
	}
	missing := n - len(e.regretSum)
	e.regretSum = append(e.regretSum, make([]float64, missing)...)
	e.strategySum = append(e.strategySum, make([]float64, missing)...)
}

// strategy returns the current regret-matching distribution: r+(a)/sum(r+),
// or uniform if every regret is non-positive.
func (e *InfoSetEntry) strategy(n int) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureSize(n)

	strat := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		r := e.regretSum[i]
		if r > 0 {
			strat[i] = r
			total += r
		}
	}
	if total <= 0 {
		uniform := 1.0 / float64(n)
		for i := range strat {
			strat[i] = uniform
		}
		return strat
	}
	for i := range strat {
		strat[i] /= total
	}
	return strat
}

// update applies a CFR+ regret update (clipped to >=0) weighted by the
// counterfactual reach of the other players, and accumulates the current
// strategy into strategySum weighted by reachSelf*iterationWeight, where
// iterationWeight is t/(t+1) for iteration t (see Solver.Train).
func (e *InfoSetEntry) update(regret, strategy []float64, reachOthers, reachSelf, iterationWeight float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(regret)
	e.ensureSize(n)

	for i := 0; i < n; i++ {
		e.regretSum[i] += reachOthers * regret[i]
		if e.regretSum[i] < 0 {
			e.regretSum[i] = 0
		}
		e.strategySum[i] += reachSelf * iterationWeight * strategy[i]
	}
	e.visitCount++
}

// averageStrategy normalizes strategySum over n actions, falling back to
// uniform when the sum is zero.
func (e *InfoSetEntry) averageStrategy(n int) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureSize(n)

	total := 0.0
	for _, s := range e.strategySum[:n] {
		total += s
	}
	avg := make([]float64, n)
	if total <= 0 {
		uniform := 1.0 / float64(n)
		for i := range avg {
			avg[i] = uniform
		}
		return avg
	}
	for i := range avg {
		avg[i] = e.strategySum[i] / total
	}
	return avg
}

func (e *InfoSetEntry) discount(regretFactor, strategyFactor float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.regretSum {
		e.regretSum[i] *= regretFactor
	}
	for i := range e.strategySum {
		e.strategySum[i] *= strategyFactor
	}
}

func (e *InfoSetEntry) positiveRegretMass() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0.0
	for _, r := range e.regretSum {
		if r > 0 {
			total += r
		}
	}
	return total
}

const infoSetTableShardCount = 64

type infoSetShard struct {
	mu      sync.RWMutex
	entries map[string]*InfoSetEntry
}

// infoSetTable is a sharded map from info set key to InfoSetEntry, sized to
// let concurrent solver replicas (see Solver.TrainParallel) each own a
// private table while still supporting concurrent lookups within one replica
// if a future traversal mode parallelizes within a single iteration.
type infoSetTable struct {
	shards [infoSetTableShardCount]infoSetShard
}

func newInfoSetTable() *infoSetTable {
	t := &infoSetTable{}
	for i := range t.shards {
		t.shards[i].entries = make(map[string]*InfoSetEntry)
	}
	return t
}

func (t *infoSetTable) shardFor(key string) *infoSetShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &t.shards[h.Sum32()%infoSetTableShardCount]
}

func (t *infoSetTable) get(key string, actionCount int) *InfoSetEntry {
	shard := t.shardFor(key)

	shard.mu.RLock()
	entry, ok := shard.entries[key]
	shard.mu.RUnlock()
	if ok {
		entry.ensureSize(actionCount)
		return entry
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if entry, ok = shard.entries[key]; ok {
		entry.ensureSize(actionCount)
		return entry
	}
	entry = &InfoSetEntry{}
	entry.ensureSize(actionCount)
	shard.entries[key] = entry
	return entry
}

func (t *infoSetTable) lookup(key string) (*InfoSetEntry, bool) {
	shard := t.shardFor(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	entry, ok := shard.entries[key]
	return entry, ok
}

// size returns the total number of info sets tracked.
func (t *infoSetTable) size() int {
	total := 0
	for i := range t.shards {
		t.shards[i].mu.RLock()
		total += len(t.shards[i].entries)
		t.shards[i].mu.RUnlock()
	}
	return total
}

// forEach visits every entry. Used by discounting and the exploitability proxy.
func (t *infoSetTable) forEach(f func(key string, entry *InfoSetEntry)) {
	for i := range t.shards {
		t.shards[i].mu.RLock()
		for k, e := range t.shards[i].entries {
			f(k, e)
		}
		t.shards[i].mu.RUnlock()
	}
}
