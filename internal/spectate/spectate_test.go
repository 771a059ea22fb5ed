package spectate

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"arenahost/internal/worldstate"
)

func TestBroadcastReachesConnectedClient(t *testing.T) {
	hub := NewHub()
	ts := httptest.NewServer(NewServeMux(hub))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/spectate"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 registered client, got %d", hub.ClientCount())
	}

	hub.Broadcast(3, &worldstate.TransferState{MapSize: 10}, &worldstate.TransferState{MapSize: 10})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !strings.Contains(string(msg), `"turn":3`) {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestAllowThrottlesRepeatedConnectionsFromOneIP(t *testing.T) {
	hub := NewHub()
	ip := "203.0.113.5"

	allowed := 0
	for i := 0; i < 10; i++ {
		if hub.allow(ip) {
			allowed++
		}
	}
	if allowed == 0 {
		t.Fatal("expected the initial burst to be allowed")
	}
	if allowed >= 10 {
		t.Fatalf("expected later attempts in the burst to be throttled, got %d/10 allowed", allowed)
	}
}
