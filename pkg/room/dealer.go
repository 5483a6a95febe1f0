package room

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"chatpoker-server/pkg/table"
	"github.com/sirupsen/logrus"
)

// ErrDealerClosed is returned when a message arrives after the dealer ended its shift
var ErrDealerClosed = errors.New("dealer is no longer at the table")

// ErrNotConnected is returned when a message is addressed to a user with no connected client
var ErrNotConnected = errors.New("user is not connected")

// ErrClientBacklogged is returned when a client is not reading its messages
var ErrClientBacklogged = errors.New("client is not keeping up")

// chat commands
const (
	commandJoin   = "/join"
	commandStart  = "/start"
	commandStatus = "/status"
)

// Dealer runs a single table. Every table operation happens on the dealer's run loop
// The dealer is also the Messenger for its table: messages go to the connected clients of the user
type Dealer struct {
	pitBoss     *PitBoss
	table       *table.Table
	queue       *Queue
	broadcaster *Broadcaster
	logger      logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

var _ Messenger = (*Dealer)(nil)

// NewDealer creates a dealer for the table. The table is opened with the dealer's broadcaster as the notifier
func NewDealer(ctx context.Context, pitBoss *PitBoss, id string) (*Dealer, error) {
	logger := pitBoss.logger.WithField("table", id)
	d := &Dealer{
		pitBoss:       pitBoss,
		queue:         NewQueue(logger),
		logger:        logger,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func()),
		close:         make(chan bool),
	}

	d.broadcaster = NewBroadcaster(d.queue, d, pitBoss.stickers, logger)

	tbl, err := table.Open(ctx, id, pitBoss.options, table.Dependencies{
		Store:    pitBoss.store,
		Notifier: d.broadcaster,
		RNG:      pitBoss.rng,
		Logger:   pitBoss.logger,
	})
	if err != nil {
		d.queue.Close()
		return nil, err
	}

	d.table = tbl
	return d, nil
}

// ID returns the table id
func (d *Dealer) ID() string {
	return d.table.ID()
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			d.queue.Close()
			return
		}
	}
}

// EndShift stops the run loop. Notifications already queued are still sent
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// Drain waits for the queued notifications to be sent
func (d *Dealer) Drain(ctx context.Context) error {
	return d.queue.Drain(ctx)
}

// exec runs fn on the run loop and waits for it to finish
func (d *Dealer) exec(ctx context.Context, fn func() error) error {
	select {
	case <-d.close:
		return ErrDealerClosed
	default:
	}

	result := make(chan error, 1)
	select {
	case d.execInRunLoop <- func() { result <- fn() }:
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddClient adds a client and sends it the table status
func (d *Dealer) AddClient(ctx context.Context, client *Client) error {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	return d.exec(ctx, func() error {
		client.Send(newMessageResponse(d.status(client.identity), SendOptions{}))
		return nil
	})
}

// RemoveClient removes a client
// Returns true if it was the last client
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	delete(d.clients, client)
	return len(d.clients) == 0
}

// Send implements Messenger
func (d *Dealer) Send(_ context.Context, address, content string, opts SendOptions) error {
	return d.deliver(address, newMessageResponse(content, opts))
}

// SendSticker implements Messenger
func (d *Dealer) SendSticker(_ context.Context, address, sticker string) error {
	return d.deliver(address, &Response{Key: "sticker", Value: sticker})
}

func (d *Dealer) deliver(address string, res *Response) error {
	found := false
	for _, client := range d.Clients() {
		if client.identity.ID != address {
			continue
		}

		found = true
		if !client.Send(res) {
			return fmt.Errorf("%w: %s", ErrClientBacklogged, client)
		}
	}

	if !found {
		return fmt.Errorf("%w: %s", ErrNotConnected, address)
	}

	return nil
}

// Handle handles a chat message from the user
func (d *Dealer) Handle(ctx context.Context, identity table.Identity, text string) error {
	return d.exec(ctx, func() error {
		err := d.handle(ctx, identity, text)
		if d.table.IsOver() {
			d.pitBoss.retire(d)
		}

		return err
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) handle(ctx context.Context, identity table.Identity, text string) error {
	if d.table.IsOver() {
		return table.ErrGameOver
	}

	switch strings.ToLower(strings.TrimSpace(text)) {
	case commandJoin:
		index, err := d.table.AddSeat(ctx, identity)
		if err != nil {
			return err
		}

		for _, s := range d.table.Seats() {
			d.broadcaster.SendTo(s.ID, fmt.Sprintf("%s took seat %d", identity.Name, index+1))
		}

		return nil
	case commandStart:
		if _, err := d.table.SeatIndex(identity.ID); err != nil {
			return table.ErrNotSeated
		}

		return d.table.Start(ctx)
	case commandStatus:
		d.broadcaster.SendTo(identity.ID, d.status(identity))
		return nil
	}

	index, err := d.table.SeatIndex(identity.ID)
	if !d.table.IsStarted() {
		seat := table.SeatInfo{Index: -1, ID: identity.ID, Name: identity.Name}
		if err == nil {
			seat = d.table.Seats()[index]
		}

		d.broadcaster.Notify(table.ChatMessage{
			TableID: d.table.ID(),
			Seat:    seat,
			Text:    text,
			Seats:   d.table.Seats(),
		})
		return nil
	}

	if err != nil {
		return table.ErrNotSeated
	}

	if index != d.table.CurrentTurnIndex() {
		return table.ErrNotYourTurn
	}

	return d.table.HandleAction(ctx, index, text)
}

// status is a summary of the table for the user
// NOTE: must only be called from the run loop
func (d *Dealer) status(identity table.Identity) string {
	var sb strings.Builder

	seats := d.table.Seats()
	if !d.table.IsStarted() {
		fmt.Fprintf(&sb, "Waiting for players (%d seated). Send %s to take a seat and %s to deal", len(seats), commandJoin, commandStart)
		for _, s := range seats {
			fmt.Fprintf(&sb, "\n%d. %s", s.Index+1, s.Name)
		}

		return sb.String()
	}

	fmt.Fprintf(&sb, "Deal #%d, %s\n", d.table.DealsCount(), d.table.Round())
	if community := d.table.Community(); len(community) > 0 {
		fmt.Fprintf(&sb, "Table: %s\n", community)
	}
	fmt.Fprintf(&sb, "Pot: %d", d.table.PotAmount())

	for _, s := range seats {
		marker := " "
		if s.Index == d.table.CurrentTurnIndex() {
			marker = ">"
		}

		fmt.Fprintf(&sb, "\n%s %d. %s %d", marker, s.Index+1, s.Name, s.Balance)
		switch {
		case s.Lost:
			sb.WriteString(" (out)")
		case s.Folded:
			sb.WriteString(" (folded)")
		case s.Bet > 0:
			fmt.Fprintf(&sb, " (bet %d)", s.Bet)
		}

		if s.ID == identity.ID && len(s.Cards) > 0 {
			fmt.Fprintf(&sb, " %s", s.Cards)
		}
	}

	return sb.String()
}
