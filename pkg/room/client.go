package room

import (
	"context"
	"errors"
	"fmt"

	"chatpoker-server/pkg/table"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// ErrInternal is sent to the client in place of errors that are not safe to show
var ErrInternal = errors.New("something went wrong, please try again")

// Client is a chat user connected to a table via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	id       string
	identity table.Identity
	tableID  string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, identity table.Identity, tableID string) *Client {
	return &Client{
		send:     make(chan interface{}, 256),
		Close:    make(chan string),
		Conn:     conn,
		id:       uuid.New().String(),
		identity: identity,
		tableID:  tableID,
	}
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Identity returns the chat user
func (c *Client) Identity() table.Identity {
	return c.identity
}

// String returns a traceable identifier for the user and table
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s:%s", c.identity.ID, c.tableID, c.id)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(ctx context.Context, msg *PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("client", c.String()).Warn("received message, but dealer not found")
		return
	}

	err := c.dealer.Handle(ctx, c.identity, msg.Text)
	if err == nil {
		c.Send(OK(msg.Context))
		return
	}

	var userErr table.UserError
	if errors.As(err, &userErr) {
		c.Send(newErrorResponse(msg.Context, userErr))
		return
	}

	if errors.Is(err, ErrDealerClosed) {
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	logrus.WithError(err).WithField("client", c.String()).Error("could not handle message")
	c.Send(newErrorResponse(msg.Context, ErrInternal))
}
