package poker

import (
	"fmt"

	"chatpoker-server/pkg/deck"
)

// Combination is a classified five card subset
// Cards are kept in priority order: the rank-defining cards first, kickers last
type Combination struct {
	Level Level     `json:"level"`
	Cards deck.Hand `json:"cards"`
}

// positional multipliers for the weight, most significant first
var weightPositions = [5]int64{1e8, 1e6, 1e4, 1e2, 1}

const levelMultiplier int64 = 1e10

// Weight returns a scalar that totally orders combinations
// The level dominates, then the ranks of the cards in priority order break ties
func (c Combination) Weight() int64 {
	w := int64(c.Level) * levelMultiplier
	for i, card := range c.Cards {
		if i >= len(weightPositions) {
			break
		}

		w += int64(card.Rank()) * weightPositions[i]
	}

	return w
}

// Beats returns true if the combination outranks the other
func (c Combination) Beats(other Combination) bool {
	return c.Weight() > other.Weight()
}

// String describes the combination, i.e., Full house (♠️K ♦️K ♣️K ♥️2 ♦️2)
func (c Combination) String() string {
	return fmt.Sprintf("%s (%s)", c.Level, c.Cards)
}
