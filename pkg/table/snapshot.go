package table

import (
	"context"

	"chatpoker-server/pkg/deck"
)

// Snapshot is the persisted form of a table
type Snapshot struct {
	ID               string    `json:"id"`
	Community        deck.Hand `json:"community"`
	Round            Round     `json:"round"`
	DealsCount       int       `json:"dealsCount"`
	DealerIndex      int       `json:"dealerIndex"`
	CurrentTurnIndex int       `json:"currentTurnIndex"`
	Seats            []Seat    `json:"seats"`
}

// NewSnapshot returns a snapshot with zeroed defaults
func NewSnapshot(id string) *Snapshot {
	return &Snapshot{
		ID:        id,
		Community: deck.Hand{},
		Round:     Preflop,
		Seats:     []Seat{},
	}
}

// Store persists table snapshots
type Store interface {
	// Load returns ErrSnapshotNotFound if the table has not been saved
	Load(ctx context.Context, id string) (*Snapshot, error)

	// CreateOrLoad returns the saved snapshot, creating a zeroed one if needed
	CreateOrLoad(ctx context.Context, id string) (*Snapshot, error)

	// Save creates or replaces the snapshot
	Save(ctx context.Context, snapshot *Snapshot) error

	// Delete removes the snapshot. Deleting an absent table is not an error
	Delete(ctx context.Context, id string) error
}

// Snapshot returns a deep copy of the table state
func (t *Table) Snapshot() *Snapshot {
	seats := make([]Seat, len(t.seats))
	for i, s := range t.seats {
		seats[i] = *s
		seats[i].Cards = s.Cards.Clone()
	}

	community := t.community.Clone()
	if community == nil {
		community = deck.Hand{}
	}

	return &Snapshot{
		ID:               t.id,
		Community:        community,
		Round:            t.round,
		DealsCount:       t.dealsCount,
		DealerIndex:      t.dealerIndex,
		CurrentTurnIndex: t.currentTurnIndex,
		Seats:            seats,
	}
}

func (t *Table) restore(snap *Snapshot) {
	seats := make([]*Seat, len(snap.Seats))
	for i := range snap.Seats {
		s := snap.Seats[i]
		s.Cards = s.Cards.Clone()
		seats[i] = &s
	}

	t.id = snap.ID
	t.community = snap.Community.Clone()
	t.round = snap.Round
	t.dealsCount = snap.DealsCount
	t.dealerIndex = snap.DealerIndex
	t.currentTurnIndex = snap.CurrentTurnIndex
	t.seats = seats
}

func (t *Table) save(ctx context.Context) error {
	return t.store.Save(ctx, t.Snapshot())
}
