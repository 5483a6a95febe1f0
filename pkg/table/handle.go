package table

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// HandleAction handles the input of the seat whose turn it is
// A rejected action returns a UserError and leaves the table untouched
// Input that is neither a command nor a number is relayed to the other seats as chat
// If the new state cannot be saved the table is left as it was and no event is sent
func (t *Table) HandleAction(ctx context.Context, seatIndex int, input string) error {
	return t.commit(func() error {
		return t.handleAction(ctx, seatIndex, input)
	})
}

func (t *Table) handleAction(ctx context.Context, seatIndex int, input string) error {
	if t.over {
		return ErrGameOver
	}

	if !t.IsStarted() {
		return ErrGameNotStarted
	}

	p, err := t.Player(seatIndex)
	if err != nil {
		return err
	}

	callAmount := p.CallAmount()
	if action, ok := matchCommand(input, callAmount); ok {
		return t.handleCommand(ctx, p, action)
	}

	amount, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || amount == 0 {
		t.emit(ChatMessage{
			TableID: t.id,
			Seat:    p.info(),
			Text:    input,
			Seats:   t.Seats(),
		})
		return nil
	}

	if !p.CanRaise() {
		return ErrRaiseNotAllowed
	}

	if amount >= p.seat.Balance {
		return ErrBetTooLarge
	}

	if amount < p.MinRaise() {
		return ErrBetTooSmall
	}

	moved := p.seat.increaseBet(amount)
	return t.acted(ctx, p, Raise, moved)
}

func (t *Table) handleCommand(ctx context.Context, p PlayerState, action Action) error {
	switch action {
	case Fold:
		if !p.CanFold() {
			return ErrFoldNotAllowed
		}

		p.seat.HasFolded = true
		return t.acted(ctx, p, Fold, 0)
	case Check:
		if !p.CanCheck() {
			return ErrCheckNotAllowed
		}

		return t.acted(ctx, p, Check, 0)
	case Call:
		if !p.CanCall() {
			return ErrCallNotAllowed
		}

		moved := p.seat.increaseBet(p.CallAmount())
		return t.acted(ctx, p, Call, moved)
	case AllIn:
		if !p.CanAllIn() {
			return ErrAllInNotAllowed
		}

		moved := p.seat.increaseBet(p.seat.Balance)
		return t.acted(ctx, p, AllIn, moved)
	}

	panic("unhandled action: " + action.String())
}

func (t *Table) acted(ctx context.Context, p PlayerState, action Action, amount int) error {
	t.logger.WithFields(logrus.Fields{
		"seat":   p.index,
		"round":  t.round.String(),
		"action": action.String(),
		"amount": amount,
	}).Debug("seat acted")

	t.emit(ActionTaken{
		TableID: t.id,
		Seat:    p.info(),
		Action:  action,
		Amount:  amount,
		Seats:   t.Seats(),
	})

	return t.advanceTurn(ctx)
}

// advanceTurn moves the turn to the next seat, opening the next round or settling the deal when betting is done
func (t *Table) advanceTurn(ctx context.Context) error {
	t.seats[t.currentTurnIndex].HasTurned = true

	if t.IsOnlyOnePlayerLeft() {
		return t.settleDeal(ctx)
	}

	if t.IsAllPlayersTurned() {
		if t.round == River || t.IsAllIn() {
			return t.settleDeal(ctx)
		}

		for _, s := range t.seats {
			s.HasTurned = false
		}

		t.round++
		t.currentTurnIndex = t.dealerIndex

		t.emit(RoundStarted{
			TableID:   t.id,
			Round:     t.round,
			Community: t.Community(),
			Pot:       t.PotAmount(),
			Seats:     t.Seats(),
		})
	}

	next, err := t.nextSeat(t.currentTurnIndex)
	if err != nil {
		return err
	}
	t.currentTurnIndex = next

	if err := t.save(ctx); err != nil {
		return err
	}

	t.notifyTurn()
	return nil
}
