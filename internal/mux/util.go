package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"chatpoker-server/pkg/table"
	"github.com/sirupsen/logrus"
)

const maxRows = 100
const defaultRows = 100

// page is a window into a listing, read from the start and rows query parameters
type page struct {
	Start int
	Rows  int
}

func parsePage(r *http.Request) (page, error) {
	p := page{Rows: defaultRows}

	if startStr := r.FormValue("start"); startStr != "" {
		val, err := strconv.Atoi(startStr)
		if err != nil {
			return page{}, err
		}

		if val < 0 {
			return page{}, errors.New("start cannot be less than zero")
		}

		p.Start = val
	}

	if rowsStr := r.FormValue("rows"); rowsStr != "" {
		val, err := strconv.Atoi(rowsStr)
		if err != nil {
			return page{}, err
		}

		if val <= 0 {
			return page{}, errors.New("rows must be greater than zero")
		}

		if val > maxRows {
			return page{}, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}

		p.Rows = val
	}

	return p, nil
}

// slice returns the part of ids that falls inside the page, never nil
func (p page) slice(ids []string) []string {
	if p.Start >= len(ids) {
		return []string{}
	}

	end := p.Start + p.Rows
	if end > len(ids) {
		end = len(ids)
	}

	return ids[p.Start:end]
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// if err is table.ErrSnapshotNotFound, treat as 404, otherwise treat as a 500
func writeMaybeNotFoundError(w http.ResponseWriter, err error) {
	if errors.Is(err, table.ErrSnapshotNotFound) {
		writeJSONError(w, http.StatusNotFound, nil)
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err)
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
