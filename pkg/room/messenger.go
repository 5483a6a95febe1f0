package room

import "context"

// SendOptions are the extras attached to a message
type SendOptions struct {
	// Keyboard is rows of reply buttons. Pressing a button sends its label as a message
	Keyboard [][]string `json:"keyboard,omitempty"`
}

// Messenger delivers messages to a chat user. The address is the user id
type Messenger interface {
	Send(ctx context.Context, address, content string, opts SendOptions) error
	SendSticker(ctx context.Context, address, sticker string) error
}

// Stickers are sent on top of the text messages. An empty sticker is not sent
type Stickers struct {
	Win      string
	GameOver string
}
