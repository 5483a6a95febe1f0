package table

import (
	"chatpoker-server/pkg/deck"
	"chatpoker-server/pkg/poker"
)

// EventKind identifies an Event
type EventKind int

// event kinds
const (
	KindDealStarted EventKind = iota
	KindTurnStarted
	KindRoundStarted
	KindActionTaken
	KindChatMessage
	KindDealSettled
	KindGameOver
)

func (k EventKind) String() string {
	switch k {
	case KindDealStarted:
		return "dealStarted"
	case KindTurnStarted:
		return "turnStarted"
	case KindRoundStarted:
		return "roundStarted"
	case KindActionTaken:
		return "actionTaken"
	case KindChatMessage:
		return "chatMessage"
	case KindDealSettled:
		return "dealSettled"
	case KindGameOver:
		return "gameOver"
	}

	return "unknown"
}

// Event is something the players need to be told about
// The set of events is closed; consumers switch on the concrete type
type Event interface {
	Kind() EventKind
	sealed()
}

// Notifier receives the events of a table in the order they happen
// Notify must not block on delivery
type Notifier interface {
	Notify(evt Event)
}

// SeatInfo is a copy of a seat at the time of the event
type SeatInfo struct {
	Index   int       `json:"index"`
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Balance int       `json:"balance"`
	Bet     int       `json:"bet"`
	Cards   deck.Hand `json:"cards"`
	Folded  bool      `json:"folded"`
	Lost    bool      `json:"lost"`
}

func newSeatInfo(index int, s *Seat) SeatInfo {
	return SeatInfo{
		Index:   index,
		ID:      s.ID,
		Name:    s.Name,
		Balance: s.Balance,
		Bet:     s.Bet,
		Cards:   s.Cards.Clone(),
		Folded:  s.HasFolded,
		Lost:    s.HasLost,
	}
}

// DealStarted is sent to every seat still in the game when the cards are dealt
type DealStarted struct {
	TableID    string     `json:"tableId"`
	Deal       int        `json:"deal"`
	BaseBet    int        `json:"baseBet"`
	Seats      []SeatInfo `json:"seats"`
	Dealer     int        `json:"dealer"`
	SmallBlind int        `json:"smallBlind"`
	BigBlind   int        `json:"bigBlind"`
}

// TurnStarted is sent to the seat that must act
type TurnStarted struct {
	TableID    string    `json:"tableId"`
	Seat       SeatInfo  `json:"seat"`
	Round      Round     `json:"round"`
	Community  deck.Hand `json:"community"`
	Pot        int       `json:"pot"`
	CallAmount int       `json:"callAmount"`
	MinRaise   int       `json:"minRaise"`
	CanRaise   bool      `json:"canRaise"`
	Options    []Option  `json:"options"`
}

// RoundStarted is sent when more community cards are revealed
type RoundStarted struct {
	TableID   string     `json:"tableId"`
	Round     Round      `json:"round"`
	Community deck.Hand  `json:"community"`
	Pot       int        `json:"pot"`
	Seats     []SeatInfo `json:"seats"`
}

// ActionTaken is sent to the other seats after a seat acts
type ActionTaken struct {
	TableID string     `json:"tableId"`
	Seat    SeatInfo   `json:"seat"`
	Action  Action     `json:"action"`
	Amount  int        `json:"amount"`
	Seats   []SeatInfo `json:"seats"`
}

// ChatMessage is unrecognized input relayed verbatim to the other seats
type ChatMessage struct {
	TableID string     `json:"tableId"`
	Seat    SeatInfo   `json:"seat"`
	Text    string     `json:"text"`
	Seats   []SeatInfo `json:"seats"`
}

// SeatResult is the outcome of a deal for one seat
type SeatResult struct {
	Seat        SeatInfo           `json:"seat"`
	Combination *poker.Combination `json:"combination"`
	Folded      bool               `json:"folded"`
	Winner      bool               `json:"winner"`
	Won         int                `json:"won"`
	Eliminated  bool               `json:"eliminated"`
}

// DealSettled is the showdown summary
type DealSettled struct {
	TableID   string       `json:"tableId"`
	Deal      int          `json:"deal"`
	Community deck.Hand    `json:"community"`
	Pot       int          `json:"pot"`
	Results   []SeatResult `json:"results"`
}

// GameOver is sent to every seat when fewer than two seats remain
type GameOver struct {
	TableID  string     `json:"tableId"`
	Seats    []SeatInfo `json:"seats"`
	Survivor *SeatInfo  `json:"survivor"`
}

// Kind implements Event
func (DealStarted) Kind() EventKind { return KindDealStarted }

// Kind implements Event
func (TurnStarted) Kind() EventKind { return KindTurnStarted }

// Kind implements Event
func (RoundStarted) Kind() EventKind { return KindRoundStarted }

// Kind implements Event
func (ActionTaken) Kind() EventKind { return KindActionTaken }

// Kind implements Event
func (ChatMessage) Kind() EventKind { return KindChatMessage }

// Kind implements Event
func (DealSettled) Kind() EventKind { return KindDealSettled }

// Kind implements Event
func (GameOver) Kind() EventKind { return KindGameOver }

func (DealStarted) sealed()  {}
func (TurnStarted) sealed()  {}
func (RoundStarted) sealed() {}
func (ActionTaken) sealed()  {}
func (ChatMessage) sealed()  {}
func (DealSettled) sealed()  {}
func (GameOver) sealed()     {}
