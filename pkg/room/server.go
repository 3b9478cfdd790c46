package room

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/sirupsen/logrus"
)

// readBufferSize bounds a single client message
const readBufferSize = 1024

// Server accepts raw TCP connections and hands them to a table
type Server struct {
	logger   logrus.FieldLogger
	table    *Table
	listener net.Listener
}

// NewServer returns a new server for the given table
func NewServer(logger logrus.FieldLogger, table *Table) *Server {
	return &Server{
		logger: logger,
		table:  table,
	}
}

// Listen binds the address and starts accepting connections. It returns
// once the listener is bound; accepts happen on a background goroutine.
func (s *Server) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	s.listener = listener
	s.logger.WithField("addr", listener.Addr().String()).Info("listening for players")

	go s.acceptLoop()
	return nil
}

// Addr returns the bound listener address
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting new connections
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}

			s.logger.WithError(err).Error("accept failed")
			continue
		}

		s.table.ClientConnected(NewClient(newTCPConn(conn)))
	}
}

// tcpConn adapts a raw TCP connection to the Conn interface. Reads are
// bounded to readBufferSize bytes and each read is treated as one message.
type tcpConn struct {
	conn net.Conn
	buf  []byte
}

func newTCPConn(conn net.Conn) *tcpConn {
	return &tcpConn{
		conn: conn,
		buf:  make([]byte, readBufferSize),
	}
}

func (c *tcpConn) ReadMessage() (string, error) {
	n, err := c.conn.Read(c.buf)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(c.buf[:n]), "\r\n"), nil
}

func (c *tcpConn) WriteMessage(message string) error {
	_, err := c.conn.Write([]byte(message + "\n"))
	return err
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}

func (c *tcpConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
