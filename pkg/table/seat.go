package table

import (
	"chatpoker-server/pkg/deck"
	"chatpoker-server/pkg/poker"
)

// Identity references the chat user occupying a seat
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Seat is one position at the table
// Seats are never removed. An eliminated seat is flagged with HasLost
type Seat struct {
	Identity
	Cards     deck.Hand `json:"cards"`
	Balance   int       `json:"balance"`
	Bet       int       `json:"bet"`
	HasFolded bool      `json:"hasFolded"`
	HasLost   bool      `json:"hasLost"`
	HasTurned bool      `json:"hasTurned"`
}

// increaseBet moves chips from the balance to the bet
// The amount is clamped to the balance. Returns the amount actually moved
func (s *Seat) increaseBet(amount int) int {
	if amount > s.Balance {
		amount = s.Balance
	}

	if amount < 0 {
		amount = 0
	}

	s.Balance -= amount
	s.Bet += amount
	return amount
}

// inDeal is true if the seat can still win the current deal
func (s *Seat) inDeal() bool {
	return !s.HasLost && !s.HasFolded
}

// PlayerState is a seat as seen from its table
// Every predicate depends on table-wide state, so a PlayerState is only valid while the table is unchanged
type PlayerState struct {
	table *Table
	index int
	seat  *Seat
}

// Player returns the state for the seat at index
func (t *Table) Player(index int) (PlayerState, error) {
	if index < 0 || index >= len(t.seats) {
		return PlayerState{}, ErrSeatNotFound
	}

	return PlayerState{table: t, index: index, seat: t.seats[index]}, nil
}

// Index is the position of the seat
func (p PlayerState) Index() int {
	return p.index
}

// Seat returns the underlying seat
func (p PlayerState) Seat() *Seat {
	return p.seat
}

// CallAmount is the amount the seat must add to match the required bet
func (p PlayerState) CallAmount() int {
	return p.table.RequiredBetAmount() - p.seat.Bet
}

// CanFold is false only when the table is all-in and the seat has nothing left
func (p PlayerState) CanFold() bool {
	return !(p.table.IsAllIn() && p.seat.Balance == 0)
}

// CanCheck is true when there is nothing to call
func (p PlayerState) CanCheck() bool {
	return p.CallAmount() == 0
}

// CanCall is true when there is something to call and the seat can afford more than that
func (p PlayerState) CanCall() bool {
	amount := p.CallAmount()
	return amount > 0 && amount < p.seat.Balance
}

// CanAllIn is false when the table is all-in and the seat can already check or call
func (p PlayerState) CanAllIn() bool {
	return !(p.table.IsAllIn() && (p.CanCheck() || p.CanCall()))
}

// CanRaise is false once the table is all-in
func (p PlayerState) CanRaise() bool {
	return !p.table.IsAllIn()
}

// Options returns the labelled actions the seat may take right now
// Raising is not listed because it takes a free-form amount
func (p PlayerState) Options() []Option {
	callAmount := p.CallAmount()
	options := make([]Option, 0, 4)
	add := func(allowed bool, a Action) {
		if allowed {
			options = append(options, Option{Action: a, Label: a.Label(callAmount)})
		}
	}

	add(p.CanFold(), Fold)
	add(p.CanCheck(), Check)
	add(p.CanCall(), Call)
	add(p.CanAllIn(), AllIn)

	return options
}

// MinRaise is the smallest raise the seat may make
func (p PlayerState) MinRaise() int {
	return p.CallAmount() + p.table.BaseBetAmount()
}

// BestCombination evaluates the hole cards with the community cards
// Returns false if the seat has folded or lost
func (p PlayerState) BestCombination() (poker.Combination, bool) {
	if !p.seat.inDeal() {
		return poker.Combination{}, false
	}

	cards := make(deck.Hand, 0, len(p.table.community)+len(p.seat.Cards))
	cards = append(cards, p.table.community...)
	cards = append(cards, p.seat.Cards...)

	c, err := poker.BestCombination(cards)
	if err != nil {
		return poker.Combination{}, false
	}

	return c, true
}

// IsWinner is true if the seat holds the strongest combination among the contenders
func (p PlayerState) IsWinner() bool {
	c, ok := p.BestCombination()
	if !ok {
		return false
	}

	best, ok := p.table.maxCombinationWeight()
	return ok && c.Weight() == best
}

func (p PlayerState) info() SeatInfo {
	return newSeatInfo(p.index, p.seat)
}
