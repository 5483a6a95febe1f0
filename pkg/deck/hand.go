package deck

import "strings"

// Hand represents a collection of cards
type Hand []Card

// CardsToString will convert the hand to a string in the format of 2c,3h,4s,...
func (h Hand) CardsToString() string {
	c := make([]string, len(h))
	for i, card := range h {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}

// String renders the hand for display, i.e., ♠️A ♥️K
func (h Hand) String() string {
	c := make([]string, len(h))
	for i, card := range h {
		c[i] = card.String()
	}

	return strings.Join(c, " ")
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}

	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
