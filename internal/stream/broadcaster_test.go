package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"dexwatch/internal/domain"
)

func dialTestClient(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, b *Broadcaster, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if b.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, have %d", want, b.ClientCount())
}

func TestBroadcaster_DeliversToSubscribers(t *testing.T) {
	b := NewBroadcaster(nil)
	server := httptest.NewServer(b.Handler())
	defer server.Close()

	conn := dialTestClient(t, server)
	defer conn.Close()
	waitForClients(t, b, 1)

	result := &domain.AnalysisResult{
		PairAddress:  "PairAddr1",
		ChainID:      "solana",
		Symbol:       "WIF",
		Category:     domain.CategoryPumped,
		LiquidityUSD: 10000,
		Volume24h:    60000,
		PriceUSD:     0.01,
		AnalyzedAt:   1700000000000,
	}
	b.Broadcast(result)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["pair_address"] != "PairAddr1" {
		t.Errorf("unexpected pair_address %v", got["pair_address"])
	}
	if got["category"] != "pumped" {
		t.Errorf("unexpected category %v", got["category"])
	}
}

func TestBroadcaster_DropsDeadClients(t *testing.T) {
	b := NewBroadcaster(nil)
	server := httptest.NewServer(b.Handler())
	defer server.Close()

	conn := dialTestClient(t, server)
	waitForClients(t, b, 1)
	conn.Close()

	// The closed connection is evicted on the next write, at the
	// latest.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && b.ClientCount() > 0 {
		b.Broadcast(&domain.AnalysisResult{PairAddress: "X", Category: domain.CategoryNormal})
		time.Sleep(10 * time.Millisecond)
	}
	if got := b.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after close, got %d", got)
	}
}

func TestBroadcaster_NoClientsIsNoOp(t *testing.T) {
	b := NewBroadcaster(nil)
	// Must not panic or block.
	b.Broadcast(&domain.AnalysisResult{PairAddress: "X", Category: domain.CategoryNormal})
}
