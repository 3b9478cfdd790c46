package mux

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/JanBanasik/PokerGame/pkg/room"
)

const writeWait = time.Second * 10

// getWS upgrades the request and seats the connection at the table, making
// the websocket a drop-in alternative to the raw TCP port
func (m *Mux) getWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		m.table.ClientConnected(room.NewClient(&wsConn{conn: conn}))
	}
}

// wsConn adapts a websocket connection to the room.Conn interface
type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) ReadMessage() (string, error) {
	_, payload, err := c.conn.ReadMessage()
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(payload), "\r\n"), nil
}

func (c *wsConn) WriteMessage(message string) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

func (c *wsConn) Close() error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

func (c *wsConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
