package mux

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/JanBanasik/PokerGame/pkg/playable/poker/fivecarddraw"
	"github.com/JanBanasik/PokerGame/pkg/room"
)

// newTestMux builds a mux backed by a running two-player table
func newTestMux(t *testing.T) *Mux {
	t.Helper()

	logger := logrus.StandardLogger()
	table := room.NewTable(logger)

	game, err := fivecarddraw.NewGame(logger, table, fivecarddraw.Options{MaxPlayers: 2, Ante: 25})
	require.NoError(t, err)
	require.NoError(t, game.Configure(2, 25))

	table.HostGame(game)
	table.Start()
	t.Cleanup(table.Stop)

	return NewMux("v1.2.3", table)
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Error(err)
		return
	}
	defer resp.Body.Close()

	require.Equal(t, statusCode, resp.StatusCode)

	if respObj != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(respObj))
	}
}
