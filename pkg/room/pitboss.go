package room

import (
	"context"
	"sync"

	"chatpoker-server/internal/rng"
	"chatpoker-server/pkg/table"
	"github.com/sirupsen/logrus"
)

// Settings configure every table the PitBoss opens
type Settings struct {
	Options  table.Options
	Store    table.Store
	RNG      rng.Generator
	Stickers Stickers
	Logger   logrus.FieldLogger
}

// PitBoss is responsible for dispatching players to tables
// There is at most one Dealer per table id
type PitBoss struct {
	options  table.Options
	store    table.Store
	rng      rng.Generator
	stickers Stickers
	logger   logrus.FieldLogger

	dealers map[string]*Dealer
	lock    sync.Mutex
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(settings Settings) *PitBoss {
	logger := settings.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	g := settings.RNG
	if g == nil {
		g = rng.Crypto{}
	}

	return &PitBoss{
		options:  settings.Options,
		store:    settings.Store,
		rng:      g,
		stickers: settings.Stickers,
		logger:   logger,
		dealers:  make(map[string]*Dealer),
	}
}

// Dealer returns the dealer for the table, opening the table if needed
func (p *PitBoss) Dealer(ctx context.Context, id string) (*Dealer, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if dealer, found := p.dealers[id]; found {
		return dealer, nil
	}

	dealer, err := NewDealer(ctx, p, id)
	if err != nil {
		return nil, err
	}

	dealer.StartShift()
	p.dealers[id] = dealer
	return dealer, nil
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(ctx context.Context, client *Client) error {
	p.logger.WithField("client", client.String()).Debug("client connected")

	dealer, err := p.Dealer(ctx, client.tableID)
	if err != nil {
		return err
	}

	return dealer.AddClient(ctx, client)
}

// ClientDisconnected is called when a client disconnects from the server
// The dealer ends its shift when its last client leaves. The table stays in the store
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.logger.WithField("client", client.String()).Debug("client disconnected")

	dealer := client.dealer
	if dealer == nil {
		return
	}

	p.lock.Lock()
	if !dealer.RemoveClient(client) {
		p.lock.Unlock()
		return
	}

	if p.dealers[dealer.ID()] == dealer {
		delete(p.dealers, dealer.ID())
	}
	p.lock.Unlock()

	dealer.EndShift()
}

// OpenTables returns how many tables currently have a dealer
func (p *PitBoss) OpenTables() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.dealers)
}

// retire forgets the dealer of a finished game, so the next reference opens a new table
// The dealer ends its shift. Notifications it already queued are still sent
func (p *PitBoss) retire(dealer *Dealer) {
	p.lock.Lock()
	if p.dealers[dealer.ID()] == dealer {
		p.logger.WithField("table", dealer.ID()).Info("retiring dealer")
		delete(p.dealers, dealer.ID())
	}
	p.lock.Unlock()

	dealer.EndShift()
}

// Close ends every shift and waits for the pending notifications
func (p *PitBoss) Close(ctx context.Context) error {
	p.lock.Lock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for id, dealer := range p.dealers {
		dealers = append(dealers, dealer)
		delete(p.dealers, id)
	}
	p.lock.Unlock()

	for _, dealer := range dealers {
		dealer.EndShift()
		if err := dealer.Drain(ctx); err != nil {
			return err
		}
	}

	return nil
}
