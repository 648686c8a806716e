// Package stream pushes analysis results to subscribed websocket
// clients. Purely observational: a slow or dead client is dropped,
// never allowed to stall the poll loop.
package stream

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"dexwatch/internal/domain"
)

// Broadcaster fans analysis results out to websocket subscribers.
type Broadcaster struct {
	clients  map[*websocket.Conn]struct{}
	mu       sync.Mutex
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// Options configures the Broadcaster.
type Options struct {
	// Logger for connection lifecycle errors. Defaults to log.Default().
	Logger *log.Logger
}

// NewBroadcaster creates a broadcaster with no clients.
func NewBroadcaster(opts *Options) *Broadcaster {
	logger := log.Default()
	if opts != nil && opts.Logger != nil {
		logger = opts.Logger
	}
	return &Broadcaster{
		clients:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
	}
}

// event is the wire shape pushed to subscribers.
type event struct {
	PairAddress  string  `json:"pair_address"`
	ChainID      string  `json:"chain_id"`
	Symbol       string  `json:"symbol"`
	Category     string  `json:"category"`
	LiquidityUSD float64 `json:"liquidity_usd"`
	Volume24h    float64 `json:"volume_24h"`
	PriceUSD     float64 `json:"price_usd"`
	AnalyzedAt   int64   `json:"analyzed_at"`
}

// Broadcast sends one analysis result to every connected client.
// Clients that fail to accept the write are closed and removed.
func (b *Broadcaster) Broadcast(result *domain.AnalysisResult) {
	msg, err := json.Marshal(event{
		PairAddress:  result.PairAddress,
		ChainID:      result.ChainID,
		Symbol:       result.Symbol,
		Category:     result.Category.String(),
		LiquidityUSD: result.LiquidityUSD,
		Volume24h:    result.Volume24h,
		PriceUSD:     result.PriceUSD,
		AnalyzedAt:   result.AnalyzedAt,
	})
	if err != nil {
		b.logger.Printf("marshal analysis event: %v", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			b.logger.Printf("websocket write error: %v", err)
			c.Close()
			delete(b.clients, c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Handler returns an http.HandlerFunc that accepts websocket
// subscriptions.
func (b *Broadcaster) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			b.logger.Printf("websocket upgrade error: %v", err)
			return
		}
		b.mu.Lock()
		b.clients[conn] = struct{}{}
		b.mu.Unlock()

		// Read loop drains control frames and detects disconnects.
		go func() {
			defer func() {
				b.mu.Lock()
				delete(b.clients, conn)
				b.mu.Unlock()
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
		}()
	}
}
