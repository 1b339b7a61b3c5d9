package poker

import "testing"

func hand7(s string) [7]Card {
	cards := MustParseCards(s)
	var h [7]Card
	copy(h[:], cards)
	return h
}

func TestEvaluate7Categories(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		cards    string
		category HandCategory
	}{
		{"straight flush", "AsKsQsJsTs2h3d", CategoryStraightFlush},
		{"quads", "AsAhAdAcKs2h3d", CategoryFourOfAKind},
		{"full house", "AsAhAdKsKh2c3d", CategoryFullHouse},
		{"full house from two trips", "AsAhAdKsKhKc3d", CategoryFullHouse},
		{"flush", "As9s7s4s2s2h3d", CategoryFlush},
		{"straight", "Ts9h8d7c6s2h3d", CategoryStraight},
		{"wheel straight", "As2h3d4c5s9h8d", CategoryStraight},
		{"trips", "AsAhAd9c7s2h3d", CategoryThreeOfAKind},
		{"two pair", "AsAh9c9s7h2h3d", CategoryTwoPair},
		{"one pair", "AsAh9c7s4h2h3d", CategoryOnePair},
		{"high card", "As9c7s4h2h6d3c", CategoryHighCard},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			score := Evaluate7(hand7(tc.cards))
			if got := score.Category(); got != tc.category {
				t.Errorf("Evaluate7(%s).Category() = %d, want %d", tc.cards, got, tc.category)
			}
		})
	}
}

func TestEvaluate7QuadsKicker(t *testing.T) {
	t.Parallel()
	score := Evaluate7(hand7("AsAhAdAcKs2h3d"))
	if score.Category() != CategoryFourOfAKind {
		t.Fatalf("expected quads, got category %d", score.Category())
	}
	if want := makeScore(CategoryFourOfAKind, uint32(Ace), uint32(King)); score != want {
		t.Errorf("quad aces should carry a king kicker: got %d, want %d", score, want)
	}
}

func TestWheelBeatsNothingButLosesToSixHigh(t *testing.T) {
	t.Parallel()
	wheel := Evaluate7(hand7("As2h3d4c5s9h8d"))
	sixHigh := Evaluate7(hand7("2s3h4d5c6s9h8d"))
	if wheel >= sixHigh {
		t.Errorf("wheel straight should score strictly less than 2-3-4-5-6, got wheel=%d six=%d", wheel, sixHigh)
	}
}

func TestSuitPermutationInvariance(t *testing.T) {
	t.Parallel()
	a := Evaluate7(hand7("AsKsQsJsTs2h3d"))
	b := Evaluate7(hand7("AhKhQhJhTh2d3c"))
	if a != b {
		t.Errorf("score should be invariant to a uniform suit relabeling: %d != %d", a, b)
	}
}

func TestHighCardSevenDistinctRanksOrdering(t *testing.T) {
	t.Parallel()
	// Both hands are no-pair, no-flush, no-straight, 7 distinct ranks; only
	// the top kicker differs (ace-king-high vs ace-queen-high).
	higher := Evaluate7(hand7("AsKhTc8d6s4h2c"))
	lower := Evaluate7(hand7("AsQhTc8d6s4h2c"))
	if lower.Category() != CategoryHighCard || higher.Category() != CategoryHighCard {
		t.Fatalf("expected both hands to be high card, got %d and %d", lower.Category(), higher.Category())
	}
	if lower == higher {
		t.Fatalf("distinct 7-distinct-rank high-card hands must not tie: both scored %d", lower)
	}
	if CompareHands(higher, lower) != 1 {
		t.Errorf("ace-king-high should beat ace-queen-high: higher=%d lower=%d", higher, lower)
	}
}

func TestCompareHands(t *testing.T) {
	t.Parallel()
	quads := Evaluate7(hand7("AsAhAdAcKs2h3d"))
	pair := Evaluate7(hand7("AsAh9c7s4h2h3d"))
	if CompareHands(quads, pair) != 1 {
		t.Error("quads should beat a pair")
	}
	if CompareHands(pair, quads) != -1 {
		t.Error("pair should lose to quads")
	}
	if CompareHands(quads, quads) != 0 {
		t.Error("identical scores should tie")
	}
}

func TestEvaluate7EndToEnd(t *testing.T) {
	t.Parallel()
	sf := Evaluate7(hand7("AsKsQsJsTs2h3d"))
	if sf.Category() != CategoryStraightFlush {
		t.Fatalf("expected straight-flush ace-high, got category %d", sf.Category())
	}

	quads := Evaluate7(hand7("AsAhAdAcKs2h3d"))
	if quads.Category() != CategoryFourOfAKind {
		t.Fatalf("expected quads, got category %d", quads.Category())
	}
}

func BenchmarkEvaluate7(b *testing.B) {
	h := hand7("AsKsQsJsTs2h3d")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Evaluate7(h)
	}
}
