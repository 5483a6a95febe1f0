package room

import (
	"context"
	"fmt"
	"strings"

	"chatpoker-server/pkg/table"
	"github.com/sirupsen/logrus"
)

// delivery is a single message or sticker for one chat user
type delivery struct {
	address string
	content string
	opts    SendOptions
	sticker string
}

// Broadcaster renders table events into chat messages and sends them in order through the queue
type Broadcaster struct {
	queue     *Queue
	messenger Messenger
	stickers  Stickers
	logger    logrus.FieldLogger
}

var _ table.Notifier = (*Broadcaster)(nil)

// NewBroadcaster returns a new broadcaster
func NewBroadcaster(queue *Queue, messenger Messenger, stickers Stickers, logger logrus.FieldLogger) *Broadcaster {
	return &Broadcaster{
		queue:     queue,
		messenger: messenger,
		stickers:  stickers,
		logger:    logger,
	}
}

// Notify implements table.Notifier
func (b *Broadcaster) Notify(evt table.Event) {
	b.enqueue(evt.Kind().String(), render(evt, b.stickers))
}

// SendTo sends a message that is not tied to a table event
func (b *Broadcaster) SendTo(address, content string) {
	b.enqueue("direct", []delivery{{address: address, content: content}})
}

func (b *Broadcaster) enqueue(event string, deliveries []delivery) {
	for _, d := range deliveries {
		d := d
		err := b.queue.Enqueue(func(ctx context.Context) error {
			if d.sticker != "" {
				return b.messenger.SendSticker(ctx, d.address, d.sticker)
			}

			return b.messenger.Send(ctx, d.address, d.content, d.opts)
		})

		if err != nil {
			b.logger.WithError(err).WithField("event", event).Error("could not enqueue notification")
		}
	}
}

// render returns the deliveries for the event
// panics if the event is unknown
func render(evt table.Event, stickers Stickers) []delivery {
	switch e := evt.(type) {
	case table.DealStarted:
		return renderDealStarted(e)
	case table.TurnStarted:
		return renderTurnStarted(e)
	case table.RoundStarted:
		return toSeats(e.Seats, -1, fmt.Sprintf("%s: %s\nPot: %d", titleCase(e.Round.String()), e.Community, e.Pot))
	case table.ActionTaken:
		return toSeats(e.Seats, e.Seat.Index, fmt.Sprintf("%s %s", e.Seat.Name, e.Action.LogMessage(e.Amount)))
	case table.ChatMessage:
		return toSeats(e.Seats, e.Seat.Index, fmt.Sprintf("%s: %s", e.Seat.Name, e.Text))
	case table.DealSettled:
		return renderDealSettled(e, stickers)
	case table.GameOver:
		return renderGameOver(e, stickers)
	}

	panic(fmt.Sprintf("unknown event: %T", evt))
}

// toSeats addresses the content to every seat still in the game except the seat at skip
func toSeats(seats []table.SeatInfo, skip int, content string) []delivery {
	deliveries := make([]delivery, 0, len(seats))
	for _, s := range seats {
		if s.Lost || s.Index == skip {
			continue
		}

		deliveries = append(deliveries, delivery{address: s.ID, content: content})
	}

	return deliveries
}

func renderDealStarted(e table.DealStarted) []delivery {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Deal #%d, blinds %d/%d\n", e.Deal, e.BaseBet/2, e.BaseBet)
	for _, s := range e.Seats {
		if s.Lost {
			continue
		}

		fmt.Fprintf(&sb, "%s: %d", s.Name, s.Balance)
		switch s.Index {
		case e.Dealer:
			sb.WriteString(" (dealer)")
		case e.SmallBlind:
			fmt.Fprintf(&sb, " (small blind %d)", s.Bet)
		case e.BigBlind:
			fmt.Fprintf(&sb, " (big blind %d)", s.Bet)
		}
		sb.WriteString("\n")
	}
	roster := sb.String()

	deliveries := make([]delivery, 0, len(e.Seats))
	for _, s := range e.Seats {
		if s.Lost {
			continue
		}

		deliveries = append(deliveries, delivery{
			address: s.ID,
			content: fmt.Sprintf("%sYour cards: %s", roster, s.Cards),
		})
	}

	return deliveries
}

func renderTurnStarted(e table.TurnStarted) []delivery {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Your turn (%s)\n", e.Round)
	if len(e.Community) > 0 {
		fmt.Fprintf(&sb, "Table: %s\n", e.Community)
	}
	fmt.Fprintf(&sb, "Your cards: %s\nPot: %d, balance: %d", e.Seat.Cards, e.Pot, e.Seat.Balance)
	if e.CanRaise {
		fmt.Fprintf(&sb, "\nTo raise, send an amount of at least %d", e.MinRaise)
	}

	labels := make([]string, len(e.Options))
	for i, o := range e.Options {
		labels[i] = o.Label
	}

	return []delivery{{
		address: e.Seat.ID,
		content: sb.String(),
		opts:    SendOptions{Keyboard: [][]string{labels}},
	}}
}

func renderDealSettled(e table.DealSettled, stickers Stickers) []delivery {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Deal #%d is over. Pot: %d\nTable: %s\n", e.Deal, e.Pot, e.Community)
	for _, r := range e.Results {
		fmt.Fprintf(&sb, "%s %s", r.Seat.Name, r.Seat.Cards)
		switch {
		case r.Folded:
			sb.WriteString(" folded")
		case r.Combination != nil:
			fmt.Fprintf(&sb, " %s", r.Combination)
		}

		if r.Winner {
			fmt.Fprintf(&sb, ", won %d", r.Won)
		}

		if r.Eliminated {
			sb.WriteString(", eliminated")
		}
		sb.WriteString("\n")
	}
	summary := strings.TrimSuffix(sb.String(), "\n")

	deliveries := make([]delivery, 0, len(e.Results)*2)
	for _, r := range e.Results {
		deliveries = append(deliveries, delivery{address: r.Seat.ID, content: summary})
		if r.Winner && stickers.Win != "" {
			deliveries = append(deliveries, delivery{address: r.Seat.ID, sticker: stickers.Win})
		}
	}

	return deliveries
}

func renderGameOver(e table.GameOver, stickers Stickers) []delivery {
	content := "Game over"
	if e.Survivor != nil {
		content = fmt.Sprintf("Game over. %s wins with %d", e.Survivor.Name, e.Survivor.Balance)
	}

	deliveries := make([]delivery, 0, len(e.Seats)+1)
	for _, s := range e.Seats {
		deliveries = append(deliveries, delivery{address: s.ID, content: content})
	}

	if e.Survivor != nil && stickers.GameOver != "" {
		deliveries = append(deliveries, delivery{address: e.Survivor.ID, sticker: stickers.GameOver})
	}

	return deliveries
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
