package chattest_test

import (
	"net"
	"testing"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/awasaki/threadchat/internal/chattest"
)

func dial(t *testing.T, srv *chattest.Server) net.Conn {
	t.Helper()
	conn, _, _, err := ws.Dial(t.Context(), srv.URL())
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	return conn
}

func TestServer_EchoesWithPrefix(t *testing.T) {
	srv := chattest.NewServer()
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	if err := wsutil.WriteClientText(conn, []byte("ping")); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	data, err := wsutil.ReadServerText(conn)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if got := string(data); got != "You: ping" {
		t.Errorf("received %q, want %q", got, "You: ping")
	}
}

func TestServer_BroadcastsVerbatimToOthers(t *testing.T) {
	srv := chattest.NewServer()
	defer srv.Close()

	sender := dial(t, srv)
	defer sender.Close()
	receiver := dial(t, srv)
	defer receiver.Close()

	waitForClients(t, srv, 2)

	if err := wsutil.WriteClientText(sender, []byte("ping")); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	data, err := wsutil.ReadServerText(receiver)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if got := string(data); got != "ping" {
		t.Errorf("received %q, want %q", got, "ping")
	}
}

func TestServer_ClientCount(t *testing.T) {
	srv := chattest.NewServer()
	defer srv.Close()

	if got := srv.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want 0", got)
	}

	conn := dial(t, srv)
	waitForClients(t, srv, 1)

	conn.Close()
	waitForClients(t, srv, 0)
}

func waitForClients(t *testing.T, srv *chattest.Server, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if srv.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", want, srv.ClientCount())
}
