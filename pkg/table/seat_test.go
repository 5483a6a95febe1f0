package table

import (
	"testing"

	"chatpoker-server/pkg/deck"
	"chatpoker-server/pkg/poker"
	"github.com/stretchr/testify/assert"
)

func TestSeat_increaseBet(t *testing.T) {
	a := assert.New(t)

	s := seat("0", 100)
	a.Equal(40, s.increaseBet(40))
	a.Equal(60, s.Balance)
	a.Equal(40, s.Bet)

	a.Equal(60, s.increaseBet(1000))
	a.Equal(0, s.Balance)
	a.Equal(100, s.Bet)

	a.Equal(0, s.increaseBet(10))
	a.Equal(0, s.increaseBet(-10))
	a.Equal(100, s.Bet)
}

func TestPlayerState_predicates(t *testing.T) {
	a := assert.New(t)

	snap := NewSnapshot("predicates")
	snap.Seats = []Seat{seat("0", 100), seat("1", 50), seat("2", 0)}
	snap.Seats[0].Bet = 20
	snap.Seats[1].Bet = 40
	snap.Seats[2].HasLost = true
	table, _, _ := newTestTable(t, snap)

	p0, err := table.Player(0)
	a.NoError(err)
	a.Equal(0, p0.Index())
	a.Equal(20, p0.CallAmount())
	a.True(p0.CanFold())
	a.False(p0.CanCheck())
	a.True(p0.CanCall())
	a.True(p0.CanAllIn())
	a.True(p0.CanRaise())
	a.Equal(40, p0.MinRaise())

	p1, _ := table.Player(1)
	a.Equal(0, p1.CallAmount())
	a.True(p1.CanCheck())
	a.False(p1.CanCall())
	a.Equal([]Option{
		{Action: Fold, Label: "Fold"},
		{Action: Check, Label: "Check"},
		{Action: AllIn, Label: "All-in"},
	}, p1.Options())

	// call amount equal to the balance is an all-in, not a call
	table.seats[0].Balance = 20
	a.False(p0.CanCall())

	table.seats[1].Balance = 0
	a.True(table.IsAllIn())
	a.False(p1.CanFold())
	a.False(p1.CanAllIn(), "the seat can check")
	a.False(p1.CanRaise())
	a.True(p0.CanFold())
	a.True(p0.CanAllIn(), "the seat cannot call")

	_, err = table.Player(3)
	a.Equal(ErrSeatNotFound, err)
	_, err = table.Player(-1)
	a.Equal(ErrSeatNotFound, err)
}

func TestPlayerState_BestCombination(t *testing.T) {
	a := assert.New(t)

	snap := NewSnapshot("best")
	snap.Community = deck.CardsFromString("2h,3h,9h,11s,11c")
	snap.Seats = []Seat{seat("0", 100), seat("1", 100), seat("2", 100), seat("3", 0)}
	snap.Seats[0].Cards = deck.CardsFromString("14h,5h")
	snap.Seats[1].Cards = deck.CardsFromString("11d,2c")
	snap.Seats[2].Cards = deck.CardsFromString("14s,14d")
	snap.Seats[2].HasFolded = true
	snap.Seats[3].HasLost = true
	table, _, _ := newTestTable(t, snap)

	p0, _ := table.Player(0)
	c, ok := p0.BestCombination()
	a.True(ok)
	a.Equal(poker.Flush, c.Level)

	p1, _ := table.Player(1)
	c, ok = p1.BestCombination()
	a.True(ok)
	a.Equal(poker.FullHouse, c.Level)
	a.True(p1.IsWinner())
	a.False(p0.IsWinner())

	p2, _ := table.Player(2)
	_, ok = p2.BestCombination()
	a.False(ok, "folded seats have no combination")
	a.False(p2.IsWinner())

	p3, _ := table.Player(3)
	_, ok = p3.BestCombination()
	a.False(ok)
}
