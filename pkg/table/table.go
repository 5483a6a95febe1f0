package table

import (
	"context"
	"errors"
	"fmt"

	"chatpoker-server/internal/rng"
	"chatpoker-server/pkg/deck"
	"github.com/sirupsen/logrus"
)

// MaxSeats is the most seats a single deck can serve: five community cards and two per seat
const MaxSeats = (deck.NumCards - 5) / 2

// Options configures the stakes and the size of a table
type Options struct {
	// BaseBet is the big blind for the first four deals. It grows by BaseBet every four deals
	BaseBet      int
	StartBalance int
	MaxSeats     int
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		BaseBet:      20,
		StartBalance: 1000,
		MaxSeats:     10,
	}
}

func validateOptions(opts Options) error {
	if opts.BaseBet <= 0 {
		return errors.New("base bet must be > 0")
	}

	if opts.StartBalance <= 0 {
		return errors.New("start balance must be > 0")
	}

	if opts.MaxSeats < 2 || opts.MaxSeats > MaxSeats {
		return fmt.Errorf("max seats must be between 2 and %d", MaxSeats)
	}

	return nil
}

// Dependencies are the collaborators of a table
type Dependencies struct {
	Store    Store
	Notifier Notifier
	RNG      rng.Generator
	Logger   logrus.FieldLogger
}

// Table is the state machine for a single poker table
// Table is not safe for concurrent use: callers must serialize the operations of a table
type Table struct {
	id      string
	options Options
	store   Store
	notify  Notifier
	rng     rng.Generator
	logger  logrus.FieldLogger

	seats            []*Seat
	community        deck.Hand
	round            Round
	dealsCount       int
	dealerIndex      int
	currentTurnIndex int

	// set once the snapshot has been deleted
	over bool

	// events of the running operation, sent once it has been persisted
	pending []Event
}

// Open loads the table from the store, creating it if it does not exist
func Open(ctx context.Context, id string, opts Options, deps Dependencies) (*Table, error) {
	if deps.Store == nil {
		return nil, errors.New("a store is required")
	}

	snap, err := deps.Store.CreateOrLoad(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not load table %s: %w", id, err)
	}

	return NewFromSnapshot(snap, opts, deps)
}

// NewFromSnapshot returns a table in the state described by the snapshot
func NewFromSnapshot(snap *Snapshot, opts Options, deps Dependencies) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if deps.Store == nil {
		return nil, errors.New("a store is required")
	}

	if deps.Notifier == nil {
		return nil, errors.New("a notifier is required")
	}

	if deps.RNG == nil {
		deps.RNG = rng.Crypto{}
	}

	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	t := &Table{
		options: opts,
		store:   deps.Store,
		notify:  deps.Notifier,
		rng:     deps.RNG,
	}

	t.restore(snap)
	t.logger = logger.WithField("table", t.id)
	return t, nil
}

// ID returns the table id
func (t *Table) ID() string {
	return t.id
}

// Round returns the current betting round
func (t *Table) Round() Round {
	return t.round
}

// DealsCount is the number of deals dealt so far
func (t *Table) DealsCount() int {
	return t.dealsCount
}

// DealerIndex is the seat with the dealer button
func (t *Table) DealerIndex() int {
	return t.dealerIndex
}

// CurrentTurnIndex is the seat that must act
func (t *Table) CurrentTurnIndex() int {
	return t.currentTurnIndex
}

// Community returns the community cards the players can currently see
func (t *Table) Community() deck.Hand {
	n := t.round.VisibleCommunityCards()
	if n > len(t.community) {
		n = len(t.community)
	}

	return t.community[:n].Clone()
}

// IsStarted returns true once the first deal has been dealt
func (t *Table) IsStarted() bool {
	return t.dealsCount > 0
}

// IsOver returns true once the game has ended and the table was deleted
func (t *Table) IsOver() bool {
	return t.over
}

// SeatCount is the number of seats, including eliminated ones
func (t *Table) SeatCount() int {
	return len(t.seats)
}

// SeatIndex returns the index of the seat held by the identity
func (t *Table) SeatIndex(id string) (int, error) {
	for i, s := range t.seats {
		if s.ID == id {
			return i, nil
		}
	}

	return -1, ErrSeatNotFound
}

// Seats returns a copy of every seat
func (t *Table) Seats() []SeatInfo {
	seats := make([]SeatInfo, len(t.seats))
	for i, s := range t.seats {
		seats[i] = newSeatInfo(i, s)
	}

	return seats
}

// IsAllIn is true if any seat still in the game has no chips left
func (t *Table) IsAllIn() bool {
	for _, s := range t.seats {
		if !s.HasLost && s.Balance == 0 {
			return true
		}
	}

	return false
}

// RequiredBetAmount is the largest bet at the table
func (t *Table) RequiredBetAmount() int {
	required := 0
	for _, s := range t.seats {
		if s.Bet > required {
			required = s.Bet
		}
	}

	return required
}

// IsAllPlayersTurned is true when no seat needs to act in the current round
func (t *Table) IsAllPlayersTurned() bool {
	required := t.RequiredBetAmount()
	for _, s := range t.seats {
		if s.HasLost || s.HasFolded || s.Balance == 0 {
			continue
		}

		if !s.HasTurned || s.Bet != required {
			return false
		}
	}

	return true
}

// PlayersInDeal returns the indexes of the seats that have neither folded nor lost
func (t *Table) PlayersInDeal() []int {
	indexes := make([]int, 0, len(t.seats))
	for i, s := range t.seats {
		if s.inDeal() {
			indexes = append(indexes, i)
		}
	}

	return indexes
}

// IsOnlyOnePlayerLeft is true when every other seat has folded or lost
func (t *Table) IsOnlyOnePlayerLeft() bool {
	return len(t.PlayersInDeal()) == 1
}

// PotAmount is the sum of every bet in the current deal
func (t *Table) PotAmount() int {
	pot := 0
	for _, s := range t.seats {
		pot += s.Bet
	}

	return pot
}

// BaseBetAmount is the big blind. Stakes escalate every four deals
func (t *Table) BaseBetAmount() int {
	return (t.dealsCount/4 + 1) * t.options.BaseBet
}

// activeSeatCount is the number of seats that have not lost
func (t *Table) activeSeatCount() int {
	n := 0
	for _, s := range t.seats {
		if !s.HasLost {
			n++
		}
	}

	return n
}

// nextSeat returns the next seat after index that has neither lost nor folded, wrapping around
func (t *Table) nextSeat(index int) (int, error) {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		next := (index + i) % n
		if t.seats[next].inDeal() {
			return next, nil
		}
	}

	return -1, ErrNoEligibleSeat
}

// maxCombinationWeight is the weight of the strongest combination among the contenders
func (t *Table) maxCombinationWeight() (int64, bool) {
	var best int64
	found := false
	for i := range t.seats {
		p := PlayerState{table: t, index: i, seat: t.seats[i]}
		if c, ok := p.BestCombination(); ok {
			if w := c.Weight(); !found || w > best {
				best = w
				found = true
			}
		}
	}

	return best, found
}

// emit holds the event until the running operation commits
func (t *Table) emit(evt Event) {
	t.pending = append(t.pending, evt)
}

// commit runs op and then sends the events it emitted
// If op fails the table is restored to its prior state and nothing is sent
func (t *Table) commit(op func() error) error {
	before := t.Snapshot()
	t.pending = nil

	if err := op(); err != nil {
		t.restore(before)
		t.pending = nil
		return err
	}

	events := t.pending
	t.pending = nil
	for _, evt := range events {
		t.notify.Notify(evt)
	}

	return nil
}
