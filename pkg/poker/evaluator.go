package poker

import (
	"errors"
	"sort"

	"chatpoker-server/pkg/deck"
)

// HandSize is the number of cards in a combination
const HandSize = 5

// ErrNotEnoughCards happens when fewer than five cards are evaluated
var ErrNotEnoughCards = errors.New("at least five cards are required")

type sortByRank deck.Hand

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank() < s[j].Rank()
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// BestCombination returns the strongest five card combination that can be formed from the cards
// With seven cards (five community and two hole cards) all 21 subsets are considered
func BestCombination(cards deck.Hand) (Combination, error) {
	n := len(cards)
	if n < HandSize {
		return Combination{}, ErrNotEnoughCards
	}

	sorted := cards.Clone()
	sort.Stable(sort.Reverse(sortByRank(sorted)))

	var best Combination
	var bestWeight int64 = -1
	var subset [HandSize]deck.Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						subset = [HandSize]deck.Card{sorted[a], sorted[b], sorted[c], sorted[d], sorted[e]}
						combo := Classify(subset)
						if w := combo.Weight(); w > bestWeight {
							best = combo
							bestWeight = w
						}
					}
				}
			}
		}
	}

	return best, nil
}

// Classify determines the level of five cards sorted by descending rank
// The returned cards are reordered so the rank-defining cards come first
func Classify(cards [HandSize]deck.Card) Combination {
	flush := isFlush(cards)
	straight, straightCards := isStraight(cards)

	if flush && straight {
		if straightCards[0].Rank() == deck.Ace {
			return Combination{Level: RoyalFlush, Cards: straightCards}
		}

		return Combination{Level: StraightFlush, Cards: straightCards}
	}

	grouped, counts := groupByRank(cards)
	switch {
	case counts[0] == 4:
		return Combination{Level: FourOfAKind, Cards: grouped}
	case counts[0] == 3 && counts[1] == 2:
		return Combination{Level: FullHouse, Cards: grouped}
	case flush:
		return Combination{Level: Flush, Cards: cards[:]}
	case straight:
		return Combination{Level: Straight, Cards: straightCards}
	case counts[0] == 3:
		return Combination{Level: ThreeOfAKind, Cards: grouped}
	case counts[0] == 2 && counts[1] == 2:
		return Combination{Level: TwoPair, Cards: grouped}
	case counts[0] == 2:
		return Combination{Level: Pair, Cards: grouped}
	}

	return Combination{Level: HighCard, Cards: cards[:]}
}

func isFlush(cards [HandSize]deck.Card) bool {
	for _, c := range cards[1:] {
		if !deck.SameSuit(cards[0], c) {
			return false
		}
	}

	return true
}

// isStraight expects cards sorted by descending rank
// the ace-low straight (A,5,4,3,2) is returned with the ace moved last
func isStraight(cards [HandSize]deck.Card) (bool, deck.Hand) {
	consecutive := true
	for i := 0; i < HandSize-1; i++ {
		if cards[i+1].Rank() != cards[i].Rank()-1 {
			consecutive = false
			break
		}
	}

	if consecutive {
		return true, deck.Hand(cards[:]).Clone()
	}

	if cards[0].Rank() == deck.Ace &&
		cards[1].Rank() == deck.Five &&
		cards[2].Rank() == deck.Four &&
		cards[3].Rank() == deck.Three &&
		cards[4].Rank() == deck.Two {
		return true, deck.Hand{cards[1], cards[2], cards[3], cards[4], cards[0]}
	}

	return false, nil
}

// groupByRank orders the cards by group size and then rank, both descending
// e.g., 9,7,7,4,4 becomes 7,7,4,4,9
// the group sizes are returned in the same order
func groupByRank(cards [HandSize]deck.Card) (deck.Hand, []int) {
	type group struct {
		rank  deck.Rank
		cards deck.Hand
	}

	groups := make([]*group, 0, HandSize)
	for _, c := range cards {
		last := len(groups) - 1
		if last >= 0 && groups[last].rank == c.Rank() {
			groups[last].cards = append(groups[last].cards, c)
			continue
		}

		groups = append(groups, &group{rank: c.Rank(), cards: deck.Hand{c}})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].cards) != len(groups[j].cards) {
			return len(groups[i].cards) > len(groups[j].cards)
		}

		return groups[i].rank > groups[j].rank
	})

	ordered := make(deck.Hand, 0, HandSize)
	counts := make([]int, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g.cards...)
		counts = append(counts, len(g.cards))
	}

	// pad so callers can always look at the top two groups
	for len(counts) < 2 {
		counts = append(counts, 0)
	}

	return ordered, counts
}
