package room

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JanBanasik/PokerGame/pkg/playable"
)

// tableFullMessage is sent to connections the game turns away
const tableFullMessage = "Maximum number of players reached. Try again later."

// Snapshotter is a game able to report its state to the status endpoint
type Snapshotter interface {
	Snapshot() interface{}
}

type inboundMessage struct {
	client *Client
	text   string
}

// Table hosts a single game and serializes every game-state mutation onto
// one run-loop goroutine. Connection goroutines only ever do I/O and hand
// events to the loop; the loop is the only code that touches the game, so
// the game needs no locks.
type Table struct {
	logger logrus.FieldLogger
	game   playable.Playable

	clients map[int]*Client
	nextID  int

	register      chan *Client
	unregister    chan *Client
	messages      chan inboundMessage
	execInRunLoop chan func()
	done          chan struct{}
}

// NewTable returns a new table
func NewTable(logger logrus.FieldLogger) *Table {
	return &Table{
		logger:        logger,
		clients:       make(map[int]*Client),
		register:      make(chan *Client, 256),
		unregister:    make(chan *Client, 256),
		messages:      make(chan inboundMessage, 256),
		execInRunLoop: make(chan func(), 256),
		done:          make(chan struct{}),
	}
}

// HostGame assigns the game this table deals for. Must be called before
// Start.
func (t *Table) HostGame(game playable.Playable) {
	t.game = game
}

// Game returns the hosted game
func (t *Table) Game() playable.Playable {
	return t.game
}

// Start launches the run loop
func (t *Table) Start() {
	go t.runLoop()
}

// Stop terminates the run loop and closes every connection
func (t *Table) Stop() {
	t.execInRunLoop <- func() {
		for id, client := range t.clients {
			client.CloseWithMessage("")
			delete(t.clients, id)
		}
	}

	close(t.done)
}

func (t *Table) runLoop() {
	t.logger.Debug("table run loop started")

	for {
		select {
		case client := <-t.register:
			t.seatClient(client)
		case client := <-t.unregister:
			t.dropClient(client)
		case msg := <-t.messages:
			t.game.HandleMessage(msg.client.PlayerID, msg.text)
		case fn := <-t.execInRunLoop:
			fn()
		case <-t.done:
			t.logger.Debug("table run loop terminated")
			return
		}
	}
}

// ClientConnected hands a freshly accepted connection to the table.
// Safe to call from any goroutine.
func (t *Table) ClientConnected(client *Client) {
	client.table = t

	select {
	case t.register <- client:
	case <-t.done:
		_ = client.conn.Close()
	}
}

// seatClient seats the connection at the game, or turns it away.
// NOTE: must only be called from the run loop
func (t *Table) seatClient(client *Client) {
	go client.writeLoop()

	id := t.nextID
	if err := t.game.AddPlayer(id); err != nil {
		t.logger.WithField("client", client.String()).WithError(err).Info("turning away connection")
		client.CloseWithMessage(tableFullMessage)
		return
	}

	t.nextID++
	client.PlayerID = id
	t.clients[id] = client
	go client.readLoop()

	t.logger.WithFields(logrus.Fields{
		"client":   client.String(),
		"playerId": id,
	}).Info("client connected")
}

// dropClient handles a read-side disconnect
// NOTE: must only be called from the run loop
func (t *Table) dropClient(client *Client) {
	if client.PlayerID < 0 {
		return
	}

	// a stale event for a seat that has already been recycled
	if current, ok := t.clients[client.PlayerID]; !ok || current != client {
		return
	}

	delete(t.clients, client.PlayerID)
	client.CloseWithMessage("")

	t.logger.WithFields(logrus.Fields{
		"client":   client.String(),
		"playerId": client.PlayerID,
	}).Info("client disconnected")

	t.game.RemoveClient(client.PlayerID)

	if len(t.clients) == 0 {
		t.nextID = 0
	}
}

// receivedMessage is called by the client read loops; it forwards the
// message into the run loop
func (t *Table) receivedMessage(client *Client, text string) {
	select {
	case t.messages <- inboundMessage{client: client, text: text}:
	case <-t.done:
	}
}

// clientClosed is called by the client read loops when the peer goes away
func (t *Table) clientClosed(client *Client) {
	select {
	case t.unregister <- client:
	case <-t.done:
	}
}

// SendTo delivers a message to a single player
// NOTE: must only be called from the run loop
func (t *Table) SendTo(id int, message string) {
	client, ok := t.clients[id]
	if !ok {
		return
	}

	if !client.Send(message) {
		t.logger.WithField("playerId", id).Warn("client send buffer full, dropping message")
	}
}

// Broadcast delivers a message to every connected player
// NOTE: must only be called from the run loop
func (t *Table) Broadcast(message string) {
	for id := range t.clients {
		t.SendTo(id, message)
	}
}

// CloseAll disconnects every player and frees their seats
// NOTE: must only be called from the run loop
func (t *Table) CloseAll() {
	for id, client := range t.clients {
		client.CloseWithMessage("")
		delete(t.clients, id)
	}

	t.nextID = 0
}

// GameSnapshot returns the game's state snapshot, computed inside the run
// loop. Returns nil if the game cannot report state or the loop is gone.
func (t *Table) GameSnapshot() interface{} {
	reply := make(chan interface{}, 1)

	select {
	case t.execInRunLoop <- func() {
		if s, ok := t.game.(Snapshotter); ok {
			reply <- s.Snapshot()
			return
		}

		reply <- nil
	}:
	case <-t.done:
		return nil
	}

	select {
	case snapshot := <-reply:
		return snapshot
	case <-time.After(time.Second):
		return nil
	}
}
