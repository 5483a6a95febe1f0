package poker

import (
	"testing"

	"chatpoker-server/internal/rng"
	"chatpoker-server/pkg/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func best(t *testing.T, cards string) Combination {
	t.Helper()
	c, err := BestCombination(deck.CardsFromString(cards))
	require.NoError(t, err)
	return c
}

func TestBestCombination_levels(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		level Level
		order string
	}{
		{"royal flush", "10s,11s,12s,8d,13s,14s,9d", RoyalFlush, "14s,13s,12s,11s,10s"},
		{"straight flush", "12c,2d,4h,5h,6h,14d,7h,8h", StraightFlush, "8h,7h,6h,5h,4h"},
		{"steel wheel", "2s,3s,4s,5s,14s,9d,9h", StraightFlush, "5s,4s,3s,2s,14s"},
		{"four of a kind", "4s,4h,5c,4d,4c,2d,3h", FourOfAKind, "4s,4h,4d,4c,5c"},
		{"full house", "14c,2c,14d,5c,14h,2d,5h", FullHouse, "14c,14d,14h,5c,5h"},
		{"full house from two trips", "3c,3d,3h,4c,4d,4h,9c", FullHouse, "4c,4d,4h,3c,3d"},
		{"flush", "2c,3c,4c,5c,7c,7d,8d", Flush, "7c,5c,4c,3c,2c"},
		{"straight", "12c,2d,4h,5s,6c,14d,7d,8h", Straight, "8h,7d,6c,5s,4h"},
		{"wheel", "2c,3d,4s,5h,14s,9c,11d", Straight, "5h,4s,3d,2c,14s"},
		{"three of a kind", "9c,9d,9h,2c,5d,12h,14s", ThreeOfAKind, "9c,9d,9h,14s,12h"},
		{"two pair", "5c,5d,6h,6d,3h,2s,14c", TwoPair, "6h,6d,5c,5d,14c"},
		{"pair", "2c,2h,5h,9d,11c,13s,7h", Pair, "2c,2h,13s,11c,9d"},
		{"high card", "2c,4c,13c,5d,8h,9s,11h", HighCard, "13c,11h,9s,8h,5d"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := best(t, test.cards)
			assert.Equal(t, test.level, c.Level)
			assert.Equal(t, test.order, c.Cards.CardsToString())
		})
	}
}

func TestBestCombination_notEnoughCards(t *testing.T) {
	c, err := BestCombination(deck.CardsFromString("2c,3c,4c,5c"))
	assert.Equal(t, ErrNotEnoughCards, err)
	assert.Equal(t, Combination{}, c)
}

func TestBestCombination_fiveCards(t *testing.T) {
	c := best(t, "3c,4d,5h,6s,7c")
	assert.Equal(t, Straight, c.Level)
}

func TestClassify_wheelIsLowStraight(t *testing.T) {
	a := assert.New(t)

	wheel := best(t, "14c,5d,4h,3s,2c")
	six := best(t, "6c,5d,4h,3s,2c")
	broadway := best(t, "14c,13d,12h,11s,10c")

	a.Equal(Straight, wheel.Level)
	a.Equal(deck.Ace, wheel.Cards[4].Rank(), "ace ordered last")
	a.Equal(deck.Five, wheel.Cards[0].Rank())
	a.True(six.Beats(wheel))
	a.True(broadway.Beats(six))
}

func TestCombination_Weight(t *testing.T) {
	a := assert.New(t)

	c := Combination{Level: Pair, Cards: deck.CardsFromString("14c,14d,13h,12s,11c")}
	a.Equal(int64(1*1e10+12*1e8+12*1e6+11*1e4+10*1e2+9), c.Weight())

	// kickers break ties
	k1 := best(t, "9c,9d,14h,5s,3c")
	k2 := best(t, "9h,9s,13h,12s,11c")
	a.True(k1.Beats(k2))

	// the level always dominates the kickers
	weakestTwoPair := Combination{Level: TwoPair, Cards: deck.CardsFromString("3c,3d,2c,2d,4h")}
	strongestPair := Combination{Level: Pair, Cards: deck.CardsFromString("14c,14d,13h,12s,11c")}
	a.True(weakestTwoPair.Beats(strongestPair))

	strongestHighCard := Combination{Level: HighCard, Cards: deck.CardsFromString("14c,14d,14h,14s,14c")}
	weakestPair := Combination{Level: Pair, Cards: deck.CardsFromString("2c,2d,3h,4s,5c")}
	a.True(weakestPair.Weight() > strongestHighCard.Weight())
}

func TestCombination_String(t *testing.T) {
	c := best(t, "13s,13d,13c,2h,2d,4c,7h")
	assert.Equal(t, "Full house (♠️K ♦️K ♣️K ♥️2 ♦️2)", c.String())
}

// every 7-card draw must select the highest level any of its subsets can make
func TestBestCombination_picksHighestLevel(t *testing.T) {
	g := rng.NewSeeded(7)
	for i := 0; i < 500; i++ {
		d := deck.New()
		d.Shuffle(g)
		cards, _ := d.DrawN(7)

		c, err := BestCombination(cards)
		assert.NoError(t, err)
		assert.Len(t, c.Cards, HandSize)

		highest := HighCard
		for _, subset := range subsets(cards) {
			if l := Classify(subset).Level; l > highest {
				highest = l
			}
		}

		assert.Equal(t, highest, c.Level, cards.CardsToString())
	}
}

func subsets(cards deck.Hand) [][HandSize]deck.Card {
	sorted := cards.Clone()
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Rank() > sorted[i].Rank() {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	var out [][HandSize]deck.Card
	n := len(sorted)
	for mask := 0; mask < 1<<n; mask++ {
		var subset [HandSize]deck.Card
		k := 0
		for i := 0; i < n && k <= HandSize; i++ {
			if mask&(1<<i) != 0 {
				if k < HandSize {
					subset[k] = sorted[i]
				}
				k++
			}
		}

		if k == HandSize {
			out = append(out, subset)
		}
	}

	return out
}

func BenchmarkBestCombination(b *testing.B) {
	cards := deck.CardsFromString("3s,5s,6h,7h,11c,12c,14h")
	for i := 0; i < b.N; i++ {
		_, _ = BestCombination(cards)
	}
}
