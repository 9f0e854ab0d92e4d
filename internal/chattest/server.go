// Package chattest runs an in-process broadcast chat server for tests.
//
// The server reproduces the reference chat server's behavior: every inbound
// text payload is fanned out to all connected clients, with "You: " prefixed
// on the copy echoed back to the sender.
package chattest

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

type client struct {
	conn     net.Conn
	outgoing chan []byte
}

// Server is a broadcast chat server bound to an ephemeral local port.
type Server struct {
	httpSrv *httptest.Server

	mu      sync.Mutex
	clients map[*client]bool
	wg      sync.WaitGroup
}

// NewServer starts the server. Callers must Close it when done.
func NewServer() *Server {
	s := &Server{
		clients: make(map[*client]bool),
	}
	s.httpSrv = httptest.NewServer(http.HandlerFunc(s.handleUpgrade))
	return s
}

// URL returns the ws:// address of the server.
func (s *Server) URL() string {
	return "ws" + strings.TrimPrefix(s.httpSrv.URL, "http")
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects all clients and stops the server.
func (s *Server) Close() {
	s.mu.Lock()
	for cl := range s.clients {
		cl.conn.Close()
	}
	s.mu.Unlock()

	s.httpSrv.Close()
	s.wg.Wait()
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		return
	}

	cl := &client{
		conn: conn,
		// Large enough that broadcast never blocks in tests.
		outgoing: make(chan []byte, 64),
	}

	s.mu.Lock()
	s.clients[cl] = true
	s.mu.Unlock()

	s.wg.Add(2)
	go s.readLoop(cl)
	go s.writeLoop(cl)
}

func (s *Server) readLoop(cl *client) {
	defer s.wg.Done()
	defer s.drop(cl)

	for {
		data, err := wsutil.ReadClientText(cl.conn)
		if err != nil {
			return
		}
		s.broadcast(cl, data)
	}
}

func (s *Server) writeLoop(cl *client) {
	defer s.wg.Done()

	for data := range cl.outgoing {
		if err := wsutil.WriteServerText(cl.conn, data); err != nil {
			return
		}
	}
}

func (s *Server) broadcast(from *client, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for cl := range s.clients {
		out := payload
		if cl == from {
			out = append([]byte("You: "), payload...)
		}
		select {
		case cl.outgoing <- out:
		default:
			// Slow client; tests never fill the buffer.
		}
	}
}

func (s *Server) drop(cl *client) {
	s.mu.Lock()
	if s.clients[cl] {
		delete(s.clients, cl)
		close(cl.outgoing)
	}
	s.mu.Unlock()
	cl.conn.Close()
}
