package table

import (
	"context"
	"testing"

	"chatpoker-server/internal/rng"
	"chatpoker-server/pkg/deck"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type testStore struct {
	snapshots map[string]*Snapshot
	saves     int
	deleted   []string
	saveErr   error
	deleteErr error
}

func newTestStore() *testStore {
	return &testStore{snapshots: make(map[string]*Snapshot)}
}

func (s *testStore) Load(_ context.Context, id string) (*Snapshot, error) {
	snap, ok := s.snapshots[id]
	if !ok {
		return nil, ErrSnapshotNotFound
	}

	return snap, nil
}

func (s *testStore) CreateOrLoad(ctx context.Context, id string) (*Snapshot, error) {
	snap, err := s.Load(ctx, id)
	if err == ErrSnapshotNotFound {
		snap = NewSnapshot(id)
		s.snapshots[id] = snap
		return snap, nil
	}

	return snap, err
}

func (s *testStore) Save(_ context.Context, snap *Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}

	s.saves++
	s.snapshots[snap.ID] = snap
	return nil
}

func (s *testStore) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}

	delete(s.snapshots, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type recorder struct {
	events []Event
}

func (r *recorder) Notify(evt Event) {
	r.events = append(r.events, evt)
}

func (r *recorder) kinds() []EventKind {
	kinds := make([]EventKind, len(r.events))
	for i, evt := range r.events {
		kinds[i] = evt.Kind()
	}

	return kinds
}

func (r *recorder) reset() {
	r.events = nil
}

func seat(id string, balance int) Seat {
	return Seat{
		Identity: Identity{ID: id, Name: "Player " + id},
		Cards:    deck.Hand{},
		Balance:  balance,
	}
}

// newTestTable builds a table from the snapshot with a seeded shuffle
func newTestTable(t *testing.T, snap *Snapshot) (*Table, *testStore, *recorder) {
	t.Helper()

	store := newTestStore()
	store.snapshots[snap.ID] = snap
	notifier := &recorder{}
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	table, err := NewFromSnapshot(snap, DefaultOptions(), Dependencies{
		Store:    store,
		Notifier: notifier,
		RNG:      rng.NewSeeded(1),
		Logger:   logger,
	})
	assert.NoError(t, err)

	return table, store, notifier
}

// chips returns the sum of every balance and bet at the table
func chips(table *Table) int {
	sum := 0
	for _, s := range table.seats {
		sum += s.Balance + s.Bet
	}

	return sum
}

func TestOpen(t *testing.T) {
	a := assert.New(t)

	store := newTestStore()
	table, err := Open(context.Background(), "abc", DefaultOptions(), Dependencies{
		Store:    store,
		Notifier: &recorder{},
	})
	a.NoError(err)
	a.Equal("abc", table.ID())
	a.False(table.IsStarted())
	a.Equal(0, table.SeatCount())
	a.Contains(store.snapshots, "abc")

	_, err = Open(context.Background(), "abc", Options{BaseBet: 20, StartBalance: 1000, MaxSeats: 24}, Dependencies{
		Store:    store,
		Notifier: &recorder{},
	})
	a.EqualError(err, "max seats must be between 2 and 23")

	_, err = Open(context.Background(), "abc", DefaultOptions(), Dependencies{Store: store})
	a.EqualError(err, "a notifier is required")
}

func TestTable_nextSeat(t *testing.T) {
	a := assert.New(t)

	snap := NewSnapshot("next-seat")
	snap.Seats = []Seat{seat("0", 100), seat("1", 100), seat("2", 100), seat("3", 0), seat("4", 100)}
	snap.Seats[2].HasFolded = true
	snap.Seats[3].HasLost = true
	table, _, _ := newTestTable(t, snap)

	next, err := table.nextSeat(1)
	a.NoError(err)
	a.Equal(4, next)

	next, err = table.nextSeat(4)
	a.NoError(err)
	a.Equal(0, next, "wraps around")

	next, err = table.nextSeat(0)
	a.NoError(err)
	a.Equal(1, next)

	for _, s := range table.seats {
		s.HasFolded = true
	}

	next, err = table.nextSeat(0)
	a.Equal(ErrNoEligibleSeat, err)
	a.Equal(-1, next)
}

func TestTable_BaseBetAmount(t *testing.T) {
	a := assert.New(t)

	table, _, _ := newTestTable(t, NewSnapshot("base-bet"))
	for deals, expected := range map[int]int{0: 20, 3: 20, 4: 40, 7: 40, 8: 60, 13: 80} {
		table.dealsCount = deals
		a.Equal(expected, table.BaseBetAmount(), "deals = %d", deals)
	}
}

func TestTable_Predicates(t *testing.T) {
	a := assert.New(t)

	snap := NewSnapshot("predicates")
	snap.Seats = []Seat{seat("0", 100), seat("1", 100), seat("2", 0), seat("3", 100)}
	snap.Seats[0].Bet = 20
	snap.Seats[1].Bet = 40
	snap.Seats[2].HasLost = true
	snap.Seats[3].HasFolded = true
	snap.Seats[3].Bet = 10
	table, _, _ := newTestTable(t, snap)

	a.Equal(40, table.RequiredBetAmount())
	a.Equal(70, table.PotAmount())
	a.Equal([]int{0, 1}, table.PlayersInDeal())
	a.False(table.IsOnlyOnePlayerLeft())
	a.False(table.IsAllIn(), "lost seats are not all-in")
	a.False(table.IsAllPlayersTurned())

	table.seats[0].HasTurned = true
	table.seats[1].HasTurned = true
	a.False(table.IsAllPlayersTurned(), "seat 0 has not matched the bet")

	table.seats[0].Bet = 40
	a.True(table.IsAllPlayersTurned())

	table.seats[0].Balance = 0
	table.seats[0].Bet = 30
	a.True(table.IsAllIn())
	a.True(table.IsAllPlayersTurned(), "a seat with nothing left does not need to act")

	table.seats[1].HasFolded = true
	a.True(table.IsOnlyOnePlayerLeft())

	index, err := table.SeatIndex("3")
	a.NoError(err)
	a.Equal(3, index)

	_, err = table.SeatIndex("nobody")
	a.Equal(ErrSeatNotFound, err)
}

func TestTable_Snapshot(t *testing.T) {
	a := assert.New(t)

	snap := NewSnapshot("snapshot")
	snap.Seats = []Seat{seat("0", 100), seat("1", 100)}
	snap.Seats[0].Cards = deck.CardsFromString("14s,13s")
	snap.Community = deck.CardsFromString("2c,3c,4c,5c,6c")
	snap.DealsCount = 3
	snap.DealerIndex = 1
	snap.Round = Turn
	table, _, _ := newTestTable(t, snap)

	out := table.Snapshot()
	a.Equal(snap, out)

	out.Seats[0].Cards[0] = deck.CardFromString("2d")
	out.Community[0] = deck.CardFromString("2d")
	a.Equal(deck.CardFromString("14s"), table.seats[0].Cards[0])
	a.Equal(deck.CardFromString("2c"), table.community[0])

	a.Equal(deck.CardsFromString("2c,3c,4c,5c"), table.Community())
}
