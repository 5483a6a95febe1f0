package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Card is an individual playing card encoded as an integer in [0, 52)
// Cards are interleaved by suit: the suit is card % 4 and the rank is card / 4
type Card int

// Suit represents a card suit
type Suit int

// suit constants
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Rank is the rank of a card, from Two (0) through Ace (12)
type Rank int

// rank constants
const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumCards is the size of a full deck
const NumCards = 52

// NewCard returns the card for the rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card(int(rank)*4 + int(suit))
}

// Suit returns the suit of the card
func (c Card) Suit() Suit {
	return Suit(c % 4)
}

// Rank returns the rank of the card
func (c Card) Rank() Rank {
	return Rank(c / 4)
}

// SameSuit returns true if both cards share a suit
func SameSuit(a, b Card) bool {
	return a.Suit() == b.Suit()
}

// SameRank returns true if both cards share a rank
func SameRank(a, b Card) bool {
	return a.Rank() == b.Rank()
}

// String returns the glyph for the suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣️"
	case Diamonds:
		return "♦️"
	case Hearts:
		return "♥️"
	case Spades:
		return "♠️"
	}

	panic(fmt.Sprintf("unknown suit: %d", s))
}

// String returns the glyph for the rank
func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}

	return strconv.Itoa(int(r) + 2)
}

// String renders the card for display, suit first (i.e., ♦️5)
func (c Card) String() string {
	return c.Suit().String() + c.Rank().String()
}

var cardRx = regexp.MustCompile(`(?i)^([2-9]|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs]
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return NewCard(Rank(rank-2), suit)
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) Hand {
	if s == "" {
		return Hand{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make(Hand, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card Card) string {
	var suit string
	switch card.Suit() {
	case Clubs:
		suit = "c"
	case Diamonds:
		suit = "d"
	case Hearts:
		suit = "h"
	case Spades:
		suit = "s"
	}

	return fmt.Sprintf("%d%s", int(card.Rank())+2, suit)
}
