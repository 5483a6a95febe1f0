package mux

import "net/http"

type healthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	OpenTables int    `json:"openTables"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:     "OK",
			Version:    m.version,
			OpenTables: m.pitBoss.OpenTables(),
		})
	}
}
