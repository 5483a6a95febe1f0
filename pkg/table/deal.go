package table

import (
	"context"
	"fmt"

	"chatpoker-server/pkg/deck"
	"github.com/sirupsen/logrus"
)

// AddSeat seats the identity with the starting balance
// Seats can only be added before the first deal
func (t *Table) AddSeat(ctx context.Context, identity Identity) (int, error) {
	if t.over {
		return -1, ErrGameOver
	}

	if t.IsStarted() {
		return -1, ErrGameStarted
	}

	if _, err := t.SeatIndex(identity.ID); err == nil {
		return -1, ErrAlreadySeated
	}

	if len(t.seats) >= t.options.MaxSeats {
		return -1, ErrTableFull
	}

	t.seats = append(t.seats, &Seat{
		Identity: identity,
		Cards:    deck.Hand{},
		Balance:  t.options.StartBalance,
	})

	if err := t.save(ctx); err != nil {
		t.seats = t.seats[:len(t.seats)-1]
		return -1, err
	}

	index := len(t.seats) - 1
	t.logger.WithField("seat", index).WithField("player", identity.ID).Info("seat added")
	return index, nil
}

// Start deals the first deal
func (t *Table) Start(ctx context.Context) error {
	if t.over {
		return ErrGameOver
	}

	if t.IsStarted() {
		return ErrGameStarted
	}

	if len(t.seats) < 2 {
		return ErrNotEnoughPlayers
	}

	return t.DealCards(ctx)
}

// DealCards shuffles and starts a new deal
// Nothing is sent unless the new deal was saved
func (t *Table) DealCards(ctx context.Context) error {
	return t.commit(func() error {
		return t.dealCards(ctx)
	})
}

func (t *Table) dealCards(ctx context.Context) error {
	if t.activeSeatCount() < 2 {
		return ErrNotEnoughPlayers
	}

	d := deck.New()
	d.Shuffle(t.rng)

	t.dealsCount++
	t.round = Preflop

	community, err := d.DrawN(5)
	if err != nil {
		return fmt.Errorf("could not draw community cards: %w", err)
	}
	t.community = community

	for _, s := range t.seats {
		s.Bet = 0
		s.HasFolded = false
		s.HasTurned = false
		s.Cards = deck.Hand{}

		// eliminated seats keep their place but never get cards
		if s.HasLost {
			continue
		}

		if s.Cards, err = d.DrawN(2); err != nil {
			return fmt.Errorf("could not draw hole cards: %w", err)
		}
	}

	if t.dealerIndex, err = t.nextSeat(t.dealerIndex); err != nil {
		return err
	}

	smallBlind, err := t.nextSeat(t.dealerIndex)
	if err != nil {
		return err
	}

	bigBlind, err := t.nextSeat(smallBlind)
	if err != nil {
		return err
	}

	baseBet := t.BaseBetAmount()
	t.seats[smallBlind].increaseBet(baseBet / 2)
	t.seats[bigBlind].increaseBet(baseBet)

	if t.currentTurnIndex, err = t.nextSeat(bigBlind); err != nil {
		return err
	}

	if err := t.save(ctx); err != nil {
		return err
	}

	t.logger.WithFields(logrus.Fields{
		"deal":   t.dealsCount,
		"dealer": t.dealerIndex,
	}).Info("cards dealt")

	t.emit(DealStarted{
		TableID:    t.id,
		Deal:       t.dealsCount,
		BaseBet:    baseBet,
		Seats:      t.Seats(),
		Dealer:     t.dealerIndex,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
	})

	t.notifyTurn()
	return nil
}

func (t *Table) notifyTurn() {
	p := PlayerState{table: t, index: t.currentTurnIndex, seat: t.seats[t.currentTurnIndex]}
	t.emit(TurnStarted{
		TableID:    t.id,
		Seat:       p.info(),
		Round:      t.round,
		Community:  t.Community(),
		Pot:        t.PotAmount(),
		CallAmount: p.CallAmount(),
		MinRaise:   p.MinRaise(),
		CanRaise:   p.CanRaise(),
		Options:    p.Options(),
	})
}
