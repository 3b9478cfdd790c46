package room

// Conn is a transport-level connection that carries text messages.
// Both the raw TCP transport and the WebSocket transport implement it.
type Conn interface {
	// ReadMessage blocks until one inbound message is available
	ReadMessage() (string, error)

	// WriteMessage delivers one message to the peer
	WriteMessage(message string) error

	// Close tears down the connection
	Close() error

	// RemoteAddr returns a traceable peer address
	RemoteAddr() string
}

// Client is a player connected to the table
type Client struct {
	// PlayerID is assigned by the table when the client is seated
	PlayerID int

	conn  Conn
	table *Table

	send  chan string
	close chan string
}

// NewClient returns a new client object wrapping the connection
func NewClient(conn Conn) *Client {
	return &Client{
		PlayerID: -1,
		conn:     conn,
		send:     make(chan string, 256),
		close:    make(chan string, 1),
	}
}

// Send queues a message for the client
// Returns false if the client's buffer is full.
func (c *Client) Send(message string) bool {
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// CloseWithMessage asks the write loop to flush, deliver a final message
// and close the connection. An empty message just flushes and closes.
func (c *Client) CloseWithMessage(message string) {
	select {
	case c.close <- message:
	default:
	}
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return c.conn.RemoteAddr()
}

// writeLoop flushes queued messages to the peer. It owns the connection's
// write side and is the only goroutine that closes the connection.
func (c *Client) writeLoop() {
	defer func() {
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			if err := c.conn.WriteMessage(message); err != nil {
				return
			}
		case final := <-c.close:
			// drain anything queued before the close
			for {
				select {
				case message := <-c.send:
					if err := c.conn.WriteMessage(message); err != nil {
						return
					}
					continue
				default:
				}

				break
			}

			if final != "" {
				_ = c.conn.WriteMessage(final)
			}

			return
		}
	}
}

// readLoop forwards inbound messages into the table run loop until the
// peer goes away
func (c *Client) readLoop() {
	for {
		message, err := c.conn.ReadMessage()
		if err != nil {
			c.table.clientClosed(c)
			return
		}

		c.table.receivedMessage(c, message)
	}
}
