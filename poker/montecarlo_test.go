package poker

import (
	"context"
	"testing"
)

func TestEstimateEquityCountersSumToIterations(t *testing.T) {
	t.Parallel()
	hero := [2]Card{NewCard(Ace, Spades), NewCard(King, Spades)}
	result, err := EstimateEquity(context.Background(), hero, nil, 1, 5000, 123)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum := result.Wins + result.Ties + result.Losses; sum != result.Iterations {
		t.Fatalf("wins+ties+losses = %d, want %d", sum, result.Iterations)
	}
}

func TestEstimateEquityPocketAcesVsRandom(t *testing.T) {
	t.Parallel()
	hero := [2]Card{NewCard(Ace, Spades), NewCard(Ace, Hearts)}
	result, err := EstimateEquity(context.Background(), hero, nil, 1, 50000, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Equity < 0.82 || result.Equity > 0.88 {
		t.Errorf("AA vs random equity = %f, want ~0.85", result.Equity)
	}
}

func TestEstimateEquitySeventyTwoOnKingsBoardVsRandom(t *testing.T) {
	t.Parallel()
	hero := [2]Card{NewCard(Two, Clubs), NewCard(Seven, Diamonds)}
	board := MustParseCards("KsKhKd")
	opponent := [2]Card{NewCard(Ace, Clubs), NewCard(Ace, Diamonds)}
	_ = opponent // unused: EstimateEquity deals the opponent a random hand.

	result, err := EstimateEquity(context.Background(), hero, board, 1, 20000, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Equity > 0.60 {
		t.Errorf("72o on a KKK board vs a random hand should rarely win, got equity %f", result.Equity)
	}
}

func TestEstimateEquityDeterministic(t *testing.T) {
	t.Parallel()
	hero := [2]Card{NewCard(Ace, Spades), NewCard(King, Spades)}
	r1, err1 := EstimateEquity(context.Background(), hero, nil, 2, 1000, 99)
	r2, err2 := EstimateEquity(context.Background(), hero, nil, 2, 1000, 99)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if r1 != r2 {
		t.Errorf("same seed and iteration count should be reproducible: %+v != %+v", r1, r2)
	}
}

func TestEstimateEquityZeroIterations(t *testing.T) {
	t.Parallel()
	hero := [2]Card{NewCard(Ace, Spades), NewCard(King, Spades)}
	result, err := EstimateEquity(context.Background(), hero, nil, 1, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != (EquityResult{}) {
		t.Errorf("zero iterations should return a zero result, got %+v", result)
	}
}

func TestEstimateEquityInsufficientDeck(t *testing.T) {
	t.Parallel()
	hero := [2]Card{NewCard(Ace, Spades), NewCard(King, Spades)}
	_, err := EstimateEquity(context.Background(), hero, nil, 30, 100, 1)
	if err == nil {
		t.Fatal("expected an insufficient-deck error")
	}
}

func TestEstimateMultiwayEquityPocketAcesVsSevenTwo(t *testing.T) {
	t.Parallel()
	aces := [2]Card{NewCard(Ace, Spades), NewCard(Ace, Hearts)}
	trash := [2]Card{NewCard(Two, Clubs), NewCard(Seven, Diamonds)}
	results, err := EstimateMultiwayEquity(context.Background(), [][2]Card{aces, trash}, nil, 50000, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Equity < 0.78 || results[0].Equity > 0.90 {
		t.Errorf("AA vs 72o equity = %f, want ~0.87", results[0].Equity)
	}
	if sum := results[0].Wins + results[0].Ties; sum == 0 {
		t.Fatal("expected at least one win or tie for pocket aces")
	}
}

func TestEstimateMultiwayEquityCategoriesCoverAllIterations(t *testing.T) {
	t.Parallel()
	a := [2]Card{NewCard(Ace, Spades), NewCard(King, Spades)}
	b := [2]Card{NewCard(Two, Clubs), NewCard(Seven, Diamonds)}
	results, err := EstimateMultiwayEquity(context.Background(), [][2]Card{a, b}, nil, 2000, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range results {
		total := 0
		for _, count := range r.Categories {
			total += count
		}
		if total != r.Iterations {
			t.Errorf("hand %d: category counts sum to %d, want %d", i, total, r.Iterations)
		}
	}
}

func TestEstimateMultiwayEquityRejectsDuplicateCards(t *testing.T) {
	t.Parallel()
	a := [2]Card{NewCard(Ace, Spades), NewCard(King, Spades)}
	b := [2]Card{NewCard(Ace, Spades), NewCard(Seven, Diamonds)}
	_, err := EstimateMultiwayEquity(context.Background(), [][2]Card{a, b}, nil, 100, 1)
	if err == nil {
		t.Fatal("expected a duplicate-card error")
	}
}

func TestEstimateMultiwayEquityRejectsSingleHand(t *testing.T) {
	t.Parallel()
	a := [2]Card{NewCard(Ace, Spades), NewCard(King, Spades)}
	_, err := EstimateMultiwayEquity(context.Background(), [][2]Card{a}, nil, 100, 1)
	if err == nil {
		t.Fatal("expected an error for fewer than 2 hands")
	}
}

func TestEstimateMultiwayEquityDeterministic(t *testing.T) {
	t.Parallel()
	a := [2]Card{NewCard(Ace, Spades), NewCard(King, Spades)}
	b := [2]Card{NewCard(Queen, Hearts), NewCard(Jack, Hearts)}
	r1, err1 := EstimateMultiwayEquity(context.Background(), [][2]Card{a, b}, nil, 1000, 99)
	r2, err2 := EstimateMultiwayEquity(context.Background(), [][2]Card{a, b}, nil, 1000, 99)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	for i := range r1 {
		if r1[i].Wins != r2[i].Wins || r1[i].Ties != r2[i].Ties || r1[i].Iterations != r2[i].Iterations {
			t.Errorf("hand %d: same seed and iteration count should be reproducible: %+v != %+v", i, r1[i], r2[i])
		}
	}
}
