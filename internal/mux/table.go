package mux

import (
	"context"
	"net/http"
	"strings"

	"chatpoker-server/pkg/deck"
	"chatpoker-server/pkg/table"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type tableListResponse struct {
	IDs   []string `json:"ids"`
	Total int      `json:"total"`
}

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pg, err := parsePage(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		ids, err := m.store.List(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		res := tableListResponse{IDs: pg.slice(ids), Total: len(ids)}
		writeJSON(w, http.StatusOK, res)
	}
}

type postTableResponse struct {
	ID string `json:"id"`
}

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		if _, err := m.store.CreateOrLoad(r.Context(), id); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postTableResponse{ID: id})
	}
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.ToLower(mux.Vars(r)["uuid"])
		snap, err := m.store.Load(r.Context(), id)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSnapshotKey, snap)))
	})
}

type seatSummary struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance int    `json:"balance"`
	Bet     int    `json:"bet"`
	Folded  bool   `json:"folded"`
	Lost    bool   `json:"lost"`
}

// tableSummary is what anyone may see of a table: hole cards are never included
type tableSummary struct {
	ID          string        `json:"id"`
	Started     bool          `json:"started"`
	DealsCount  int           `json:"dealsCount"`
	Round       table.Round   `json:"round"`
	Community   []string      `json:"community"`
	Pot         int           `json:"pot"`
	Dealer      int           `json:"dealer"`
	CurrentTurn int           `json:"currentTurn"`
	Seats       []seatSummary `json:"seats"`
}

func newTableSummary(snap *table.Snapshot) tableSummary {
	summary := tableSummary{
		ID:          snap.ID,
		Started:     snap.DealsCount > 0,
		DealsCount:  snap.DealsCount,
		Round:       snap.Round,
		Community:   []string{},
		Dealer:      snap.DealerIndex,
		CurrentTurn: snap.CurrentTurnIndex,
		Seats:       make([]seatSummary, len(snap.Seats)),
	}

	if summary.Started {
		visible := snap.Round.VisibleCommunityCards()
		if visible > len(snap.Community) {
			visible = len(snap.Community)
		}

		for _, c := range snap.Community[:visible] {
			summary.Community = append(summary.Community, deck.CardToString(c))
		}
	}

	for i, s := range snap.Seats {
		summary.Pot += s.Bet
		summary.Seats[i] = seatSummary{
			Index:   i,
			ID:      s.ID,
			Name:    s.Name,
			Balance: s.Balance,
			Bet:     s.Bet,
			Folded:  s.HasFolded,
			Lost:    s.HasLost,
		}
	}

	return summary
}

func (m *Mux) getTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := r.Context().Value(ctxSnapshotKey).(*table.Snapshot)
		writeJSON(w, http.StatusOK, newTableSummary(snap))
	}
}
