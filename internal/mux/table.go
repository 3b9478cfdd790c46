package mux

import (
	"errors"
	"net/http"
)

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := m.table.GameSnapshot()
		if snapshot == nil {
			writeJSONError(w, http.StatusServiceUnavailable, errors.New("game state is not available"))
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}
