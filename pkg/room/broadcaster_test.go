package room

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"chatpoker-server/pkg/deck"
	"chatpoker-server/pkg/poker"
	"chatpoker-server/pkg/table"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type sent struct {
	address string
	content string
	opts    SendOptions
	sticker string
}

type recordingMessenger struct {
	lock sync.Mutex
	sent []sent
	fail map[string]bool
}

func (r *recordingMessenger) Send(_ context.Context, address, content string, opts SendOptions) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.fail[address] {
		return errors.New("user blocked the bot")
	}

	r.sent = append(r.sent, sent{address: address, content: content, opts: opts})
	return nil
}

func (r *recordingMessenger) SendSticker(_ context.Context, address, sticker string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.sent = append(r.sent, sent{address: address, sticker: sticker})
	return nil
}

func (r *recordingMessenger) to(address string) []sent {
	r.lock.Lock()
	defer r.lock.Unlock()

	out := make([]sent, 0)
	for _, s := range r.sent {
		if s.address == address {
			out = append(out, s)
		}
	}

	return out
}

func newTestBroadcaster(stickers Stickers) (*Broadcaster, *recordingMessenger, *Queue) {
	logger, _ := test.NewNullLogger()
	q := NewQueue(logger)
	m := &recordingMessenger{fail: make(map[string]bool)}
	return NewBroadcaster(q, m, stickers, logger), m, q
}

func testSeats() []table.SeatInfo {
	return []table.SeatInfo{
		{Index: 0, ID: "a", Name: "Alice", Balance: 980, Bet: 20, Cards: deck.CardsFromString("14s,14h")},
		{Index: 1, ID: "b", Name: "Bob", Balance: 0, Lost: true},
		{Index: 2, ID: "c", Name: "Carol", Balance: 990, Bet: 10, Cards: deck.CardsFromString("2c,7d")},
	}
}

func TestBroadcaster_DealStarted(t *testing.T) {
	a := assert.New(t)
	b, m, q := newTestBroadcaster(Stickers{})
	defer q.Close()

	b.Notify(table.DealStarted{TableID: "t", Deal: 3, BaseBet: 20, Seats: testSeats(), Dealer: 2, SmallBlind: 2, BigBlind: 0})
	a.NoError(q.Drain(context.Background()))

	a.Len(m.to("b"), 0, "eliminated seats are not told")

	alice := m.to("a")
	if a.Len(alice, 1) {
		a.Contains(alice[0].content, "Deal #3, blinds 10/20")
		a.Contains(alice[0].content, "Alice: 980 (big blind 20)")
		a.Contains(alice[0].content, "Carol: 990 (dealer)")
		a.Contains(alice[0].content, "Your cards: ♠️A ♥️A")
	}

	carol := m.to("c")
	if a.Len(carol, 1) {
		a.Contains(carol[0].content, "Your cards: ♣️2 ♦️7")
		a.NotContains(carol[0].content, "♠️A")
	}
}

func TestBroadcaster_TurnStarted(t *testing.T) {
	a := assert.New(t)
	b, m, q := newTestBroadcaster(Stickers{})
	defer q.Close()

	b.Notify(table.TurnStarted{
		TableID:    "t",
		Seat:       testSeats()[2],
		Round:      table.Flop,
		Community:  deck.CardsFromString("2h,3h,4h"),
		Pot:        30,
		CallAmount: 10,
		MinRaise:   30,
		CanRaise:   true,
		Options: []table.Option{
			{Action: table.Fold, Label: "Fold"},
			{Action: table.Call, Label: "Call 10"},
			{Action: table.AllIn, Label: "All-in"},
		},
	})
	a.NoError(q.Drain(context.Background()))

	a.Len(m.to("a"), 0)
	carol := m.to("c")
	if a.Len(carol, 1) {
		a.Equal([][]string{{"Fold", "Call 10", "All-in"}}, carol[0].opts.Keyboard)
		a.Contains(carol[0].content, "Your turn (flop)")
		a.Contains(carol[0].content, "Table: ♥️2 ♥️3 ♥️4")
		a.Contains(carol[0].content, "at least 30")
	}
}

func TestBroadcaster_ActionTakenAndChat(t *testing.T) {
	a := assert.New(t)
	b, m, q := newTestBroadcaster(Stickers{})
	defer q.Close()

	seats := testSeats()
	b.Notify(table.ActionTaken{TableID: "t", Seat: seats[0], Action: table.Raise, Amount: 60, Seats: seats})
	b.Notify(table.ChatMessage{TableID: "t", Seat: seats[2], Text: "nice hand", Seats: seats})
	b.Notify(table.RoundStarted{TableID: "t", Round: table.Turn, Community: deck.CardsFromString("2h,3h,4h,5h"), Pot: 90, Seats: seats})
	a.NoError(q.Drain(context.Background()))

	alice := m.to("a")
	if a.Len(alice, 2) {
		a.Equal("Carol: nice hand", alice[0].content)
		a.True(strings.HasPrefix(alice[1].content, "Turn: "))
	}

	carol := m.to("c")
	if a.Len(carol, 2) {
		a.Equal("Alice raised by 60", carol[0].content)
		a.Equal("Turn: ♥️2 ♥️3 ♥️4 ♥️5\nPot: 90", carol[1].content)
	}
}

func TestBroadcaster_DealSettled(t *testing.T) {
	a := assert.New(t)
	b, m, q := newTestBroadcaster(Stickers{Win: "win-sticker"})
	defer q.Close()

	seats := testSeats()
	pair := poker.Combination{Level: poker.Pair, Cards: deck.CardsFromString("14s,14h,13c,9h,7d")}
	b.Notify(table.DealSettled{
		TableID:   "t",
		Deal:      3,
		Community: deck.CardsFromString("2c,7d,9h,11s,13c"),
		Pot:       30,
		Results: []table.SeatResult{
			{Seat: seats[0], Combination: &pair, Winner: true, Won: 30},
			{Seat: seats[2], Folded: true, Eliminated: true},
		},
	})
	a.NoError(q.Drain(context.Background()))

	alice := m.to("a")
	if a.Len(alice, 2) {
		a.Contains(alice[0].content, "Deal #3 is over. Pot: 30")
		a.Contains(alice[0].content, "Alice ♠️A ♥️A Pair (♠️A ♥️A ♣️K ♥️9 ♦️7), won 30")
		a.Contains(alice[0].content, "Carol ♣️2 ♦️7 folded, eliminated")
		a.Equal("win-sticker", alice[1].sticker)
	}

	carol := m.to("c")
	if a.Len(carol, 1) {
		a.Equal(alice[0].content, carol[0].content)
	}
}

func TestBroadcaster_GameOver(t *testing.T) {
	a := assert.New(t)
	b, m, q := newTestBroadcaster(Stickers{GameOver: "trophy"})
	defer q.Close()

	seats := testSeats()
	b.Notify(table.GameOver{TableID: "t", Seats: seats, Survivor: &seats[0]})
	a.NoError(q.Drain(context.Background()))

	a.Len(m.to("b"), 1, "every seat hears about the end of the game")
	alice := m.to("a")
	if a.Len(alice, 2) {
		a.Equal("Game over. Alice wins with 980", alice[0].content)
		a.Equal("trophy", alice[1].sticker)
	}
}

func TestBroadcaster_failedDelivery(t *testing.T) {
	a := assert.New(t)
	b, m, q := newTestBroadcaster(Stickers{})
	defer q.Close()

	m.fail["a"] = true
	seats := testSeats()
	b.Notify(table.RoundStarted{TableID: "t", Round: table.Flop, Seats: seats})
	b.SendTo("c", "hello")
	a.NoError(q.Drain(context.Background()))

	a.Len(m.to("a"), 0)
	a.Len(m.to("c"), 2)
}
