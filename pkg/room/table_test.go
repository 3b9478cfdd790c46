package room

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JanBanasik/PokerGame/pkg/playable/poker/fivecarddraw"
)

// fakeConn is an in-memory Conn for driving a table in tests
type fakeConn struct {
	incoming chan string
	outgoing chan string
	closed   chan struct{}
	once     sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		incoming: make(chan string, 64),
		outgoing: make(chan string, 64),
		closed:   make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() (string, error) {
	select {
	case msg := <-c.incoming:
		return msg, nil
	case <-c.closed:
		return "", io.EOF
	}
}

func (c *fakeConn) WriteMessage(message string) error {
	select {
	case c.outgoing <- message:
		return nil
	case <-c.closed:
		return io.EOF
	}
}

func (c *fakeConn) Close() error {
	c.once.Do(func() {
		close(c.closed)
	})

	return nil
}

func (c *fakeConn) RemoteAddr() string {
	return "fake:0"
}

// disconnect simulates the peer going away
func (c *fakeConn) disconnect() {
	_ = c.Close()
}

func (c *fakeConn) sendText(message string) {
	c.incoming <- message
}

// waitFor reads outbound messages until one contains the substring
func waitFor(t *testing.T, c *fakeConn, substr string) string {
	t.Helper()

	deadline := time.After(time.Second * 3)
	for {
		select {
		case msg := <-c.outgoing:
			if strings.Contains(msg, substr) {
				return msg
			}
		case <-deadline:
			t.Fatalf("timed out waiting for message containing %q", substr)
			return ""
		}
	}
}

func waitClosed(t *testing.T, c *fakeConn) {
	t.Helper()

	select {
	case <-c.closed:
	case <-time.After(time.Second * 3):
		t.Fatal("timed out waiting for the connection to close")
	}
}

func newTestTable(t *testing.T, players, ante int) *Table {
	t.Helper()

	logger := logrus.StandardLogger()
	table := NewTable(logger)

	game, err := fivecarddraw.NewGame(logger, table, fivecarddraw.Options{MaxPlayers: players, Ante: ante})
	require.NoError(t, err)
	require.NoError(t, game.Configure(players, ante))

	table.HostGame(game)
	table.Start()
	return table
}

func TestTable_playsAHand(t *testing.T) {
	table := newTestTable(t, 2, 25)
	defer table.Stop()

	conn0 := newFakeConn()
	conn1 := newFakeConn()
	table.ClientConnected(NewClient(conn0))
	table.ClientConnected(NewClient(conn1))

	// the final seat starts the hand
	waitFor(t, conn0, "Your cards: ")
	waitFor(t, conn1, "Your cards: ")
	waitFor(t, conn0, "Your turn!")

	conn0.sendText("bet 100")
	waitFor(t, conn1, "Player 0 bets 100")
	waitFor(t, conn1, "Your turn!")

	conn1.sendText("fold")
	waitFor(t, conn0, "The winner is: 0 as all players except him folded!")
	waitFor(t, conn0, "He won: 150")

	// the hand is over: every connection closes and the table re-arms
	waitClosed(t, conn0)
	waitClosed(t, conn1)

	conn2 := newFakeConn()
	table.ClientConnected(NewClient(conn2))

	assert.Eventually(t, func() bool {
		state, ok := table.GameSnapshot().(*fivecarddraw.State)
		return ok && state.Phase == "setup" && len(state.Participants) == 1
	}, time.Second*3, time.Millisecond*25)
}

func TestTable_turnsAwayExtraPlayers(t *testing.T) {
	table := newTestTable(t, 2, 25)
	defer table.Stop()

	conn0 := newFakeConn()
	conn1 := newFakeConn()
	table.ClientConnected(NewClient(conn0))
	table.ClientConnected(NewClient(conn1))
	waitFor(t, conn0, "Your cards: ")

	conn2 := newFakeConn()
	table.ClientConnected(NewClient(conn2))

	waitFor(t, conn2, "Maximum number of players reached. Try again later.")
	waitClosed(t, conn2)

	// the seated players are unaffected
	waitFor(t, conn0, "Your turn!")
}

func TestTable_disconnectEndsTheHand(t *testing.T) {
	table := newTestTable(t, 2, 25)
	defer table.Stop()

	conn0 := newFakeConn()
	conn1 := newFakeConn()
	table.ClientConnected(NewClient(conn0))
	table.ClientConnected(NewClient(conn1))
	waitFor(t, conn0, "Your turn!")

	conn1.disconnect()

	waitFor(t, conn0, "The winner is: 0 as all players except him folded!")
	waitFor(t, conn0, "He won: 50")
	waitClosed(t, conn0)
}

func TestTable_snapshotDuringBetting(t *testing.T) {
	table := newTestTable(t, 2, 25)
	defer table.Stop()

	conn0 := newFakeConn()
	conn1 := newFakeConn()
	table.ClientConnected(NewClient(conn0))
	table.ClientConnected(NewClient(conn1))
	waitFor(t, conn0, "Your turn!")

	state, ok := table.GameSnapshot().(*fivecarddraw.State)
	require.True(t, ok)
	assert.Equal(t, "first-betting", state.Phase)
	assert.Equal(t, 50, state.Pot)
	assert.Equal(t, 2, len(state.Participants))
	assert.Equal(t, 5, state.Participants[0].Cards)
}
