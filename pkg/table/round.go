package table

import (
	"encoding/json"
	"fmt"
)

// Round is the betting phase within a deal
type Round int

// constants for Round
const (
	Preflop Round = iota
	Flop
	Turn
	River
)

func (r Round) String() string {
	switch r {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	}

	return fmt.Sprintf("round(%d)", int(r))
}

// VisibleCommunityCards is how many community cards the players can see during the round
func (r Round) VisibleCommunityCards() int {
	switch r {
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	}

	return 0
}

// MarshalJSON encodes JSON
func (r Round) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(r),
		Name: r.String(),
	})
}

// UnmarshalJSON decodes the format written by MarshalJSON
func (r *Round) UnmarshalJSON(b []byte) error {
	var v struct {
		ID int `json:"id"`
	}

	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	if v.ID < int(Preflop) || v.ID > int(River) {
		return fmt.Errorf("invalid round: %d", v.ID)
	}

	*r = Round(v.ID)
	return nil
}
