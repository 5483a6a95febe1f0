package table

import (
	"fmt"
	"strings"
)

// Action is an action a seat can take on its turn
type Action int

// action constants
const (
	Fold Action = iota
	Check
	Call
	AllIn
	Raise
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case AllIn:
		return "All-in"
	case Raise:
		return "Raise"
	}

	panic("unknown action")
}

// Label is the keyboard text for the action
// The call label carries the amount to call, i.e., "Call 40"
func (a Action) Label(callAmount int) string {
	if a == Call {
		return fmt.Sprintf("%s %d", a, callAmount)
	}

	return a.String()
}

// LogMessage returns a message formatted for the other players
func (a Action) LogMessage(amount int) string {
	switch a {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called %d", amount)
	case AllIn:
		return fmt.Sprintf("went all-in with %d", amount)
	case Raise:
		return fmt.Sprintf("raised by %d", amount)
	}

	return ""
}

// Option is an action available to the current seat
type Option struct {
	Action Action `json:"action"`
	Label  string `json:"label"`
}

// matchCommand matches the input against the command labels for the seat
// returns false if the input is not a command, in which case it's a raise or chat
func matchCommand(input string, callAmount int) (Action, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	for _, a := range []Action{Fold, Check, Call, AllIn} {
		if in == strings.ToLower(a.Label(callAmount)) {
			return a, true
		}
	}

	return 0, false
}
