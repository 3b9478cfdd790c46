package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"github.com/JanBanasik/PokerGame/pkg/room"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	table   *room.Table
}

// NewMux returns a new HTTP mux serving the status surface for the table
func NewMux(version string, table *room.Table) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		table:   table,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}
