package table

import (
	"context"

	"github.com/sirupsen/logrus"
)

// settleDeal pays the pot to the winners, eliminates broke seats, then deals again or ends the game
func (t *Table) settleDeal(ctx context.Context) error {
	pot := t.PotAmount()

	// winners are decided before anyone is eliminated
	winners := make([]int, 0, len(t.seats))
	isWinner := make([]bool, len(t.seats))
	for i, s := range t.seats {
		p := PlayerState{table: t, index: i, seat: s}
		if p.IsWinner() {
			winners = append(winners, i)
			isWinner[i] = true
		}
	}

	won := t.splitPot(pot, winners)
	results := make([]SeatResult, 0, len(t.seats))

	for i, s := range t.seats {
		if s.HasLost {
			continue
		}

		p := PlayerState{table: t, index: i, seat: s}
		result := SeatResult{
			Folded: s.HasFolded,
			Winner: isWinner[i],
			Won:    won[i],
		}

		if c, ok := p.BestCombination(); ok {
			result.Combination = &c
		}

		s.Balance += won[i]
		if s.Balance == 0 {
			s.HasLost = true
			result.Eliminated = true
		}

		result.Seat = newSeatInfo(i, s)
		results = append(results, result)
	}

	t.logger.WithFields(logrus.Fields{
		"deal":    t.dealsCount,
		"pot":     pot,
		"winners": winners,
	}).Info("deal settled")

	t.emit(DealSettled{
		TableID:   t.id,
		Deal:      t.dealsCount,
		Community: t.community.Clone(),
		Pot:       pot,
		Results:   results,
	})

	if t.activeSeatCount() < 2 {
		return t.endGame(ctx)
	}

	return t.dealCards(ctx)
}

// splitPot divides the pot evenly between the winners
// Chips that do not divide evenly go one at a time to the winners closest to the left of the dealer
func (t *Table) splitPot(pot int, winners []int) map[int]int {
	won := make(map[int]int, len(winners))
	if len(winners) == 0 {
		return won
	}

	share := pot / len(winners)
	for _, i := range winners {
		won[i] = share
	}

	remainder := pot - share*len(winners)
	n := len(t.seats)
	for i := 1; remainder > 0 && i <= n; i++ {
		index := (t.dealerIndex + i) % n
		if _, ok := won[index]; ok {
			won[index]++
			remainder--
		}
	}

	return won
}

func (t *Table) endGame(ctx context.Context) error {
	var survivor *SeatInfo
	for i, s := range t.seats {
		if !s.HasLost {
			info := newSeatInfo(i, s)
			survivor = &info
			break
		}
	}

	if err := t.store.Delete(ctx, t.id); err != nil {
		return err
	}

	t.over = true
	t.logger.Info("game over")

	t.emit(GameOver{
		TableID:  t.id,
		Seats:    t.Seats(),
		Survivor: survivor,
	})

	return nil
}
