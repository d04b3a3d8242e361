// Package hub implements the LiveHub: a stateful WebSocket broadcast
// component. Subscribers connect, optionally filter by region, and
// receive PRICE_UPDATE pushes whenever the orchestrator calls Broadcast
// with a fresh snapshot. The accept/read-loop/ping shape and its use of
// nhooyr.io/websocket are grounded on the teacher's
// internal/clients/tradernet.MarketStatusWebSocket (a client-side user of
// the same library); this is the server-side mirror of that pattern.
package hub

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const pingInterval = 30 * time.Second

// inboundMessage is the envelope for every client→hub frame.
type inboundMessage struct {
	Type    string   `json:"type"`
	Regions []string `json:"regions,omitempty"`
}

// subscriber is one connected WebSocket client.
type subscriber struct {
	conn        *websocket.Conn
	userID      string
	connectedAt time.Time

	mu sync.Mutex // serialises writes to conn, since nhooyr disallows concurrent writers

	regionsMu sync.RWMutex // guards regions, written by readLoop and read by Broadcast's wants()
	regions   map[domain.Region]bool
}

func (s *subscriber) send(ctx context.Context, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wsjson.Write(ctx, s.conn, v)
}

func (s *subscriber) setRegions(regions map[domain.Region]bool) {
	s.regionsMu.Lock()
	s.regions = regions
	s.regionsMu.Unlock()
}

func (s *subscriber) wants(region domain.Region) bool {
	s.regionsMu.RLock()
	defer s.regionsMu.RUnlock()
	if len(s.regions) == 0 {
		return true // empty filter means all regions
	}
	return s.regions[region]
}

// Hub owns the live subscriber set and the last-known price snapshot, and
// is safe for concurrent use.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	lastKnown   map[domain.Region]domain.DispatchPriceRow

	snapshotPath string
	log          zerolog.Logger
}

// New builds a Hub, restoring its last-known-price map from
// snapshotPath if present (spec.md §3's hub-local persistence).
func New(snapshotPath string, log zerolog.Logger) *Hub {
	h := &Hub{
		subscribers:  make(map[*subscriber]struct{}),
		lastKnown:    make(map[domain.Region]domain.DispatchPriceRow),
		snapshotPath: snapshotPath,
		log:          log.With().Str("component", "hub").Logger(),
	}
	h.restore()
	return h
}

func (h *Hub) restore() {
	if h.snapshotPath == "" {
		return
	}
	data, err := os.ReadFile(h.snapshotPath)
	if err != nil {
		return // absent on first boot; not an error
	}
	var snapshot map[domain.Region]domain.DispatchPriceRow
	if err := msgpack.Unmarshal(data, &snapshot); err != nil {
		h.log.Warn().Err(err).Msg("discarding corrupt hub snapshot")
		return
	}
	h.lastKnown = snapshot
}

func (h *Hub) persist() {
	if h.snapshotPath == "" {
		return
	}
	data, err := msgpack.Marshal(h.lastKnown)
	if err != nil {
		h.log.Warn().Err(err).Msg("encode hub snapshot failed")
		return
	}
	if err := os.WriteFile(h.snapshotPath, data, 0o644); err != nil {
		h.log.Warn().Err(err).Msg("write hub snapshot failed")
	}
}

// Accept upgrades an HTTP connection to a subscriber, sends the INITIAL
// frame, and blocks serving that connection until it closes.
func (h *Hub) Accept(ctx context.Context, conn *websocket.Conn, userID string, regions []domain.Region) {
	sub := &subscriber{
		conn:        conn,
		userID:      userID,
		regions:     regionSet(regions),
		connectedAt: time.Now().UTC(),
	}
	// set pre-registration, before any goroutine can reach wants(); no
	// lock needed yet since sub isn't visible to Broadcast until register.
	h.register(sub)
	defer h.unregister(sub)

	if err := sub.send(ctx, initialFrame(h.snapshot())); err != nil {
		return
	}

	pingCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go h.pingLoop(pingCtx, sub)

	h.readLoop(ctx, sub)
}

func regionSet(regions []domain.Region) map[domain.Region]bool {
	set := make(map[domain.Region]bool, len(regions))
	for _, r := range regions {
		set[r] = true
	}
	return set
}

func (h *Hub) register(sub *subscriber) {
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	delete(h.subscribers, sub)
	h.mu.Unlock()
}

func (h *Hub) snapshot() map[domain.Region]domain.DispatchPriceRow {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[domain.Region]domain.DispatchPriceRow, len(h.lastKnown))
	for k, v := range h.lastKnown {
		out[k] = v
	}
	return out
}

func (h *Hub) pingLoop(ctx context.Context, sub *subscriber) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sub.send(ctx, map[string]string{"type": "PING"}); err != nil {
				_ = sub.conn.Close(websocket.StatusNormalClosure, "ping failed")
				return
			}
		}
	}
}

func (h *Hub) readLoop(ctx context.Context, sub *subscriber) {
	for {
		var msg inboundMessage
		if err := wsjson.Read(ctx, sub.conn, &msg); err != nil {
			return
		}
		switch msg.Type {
		case "SUBSCRIBE":
			regions := make([]domain.Region, 0, len(msg.Regions))
			for _, r := range msg.Regions {
				regions = append(regions, domain.Region(r))
			}
			sub.setRegions(regionSet(regions))
		case "PONG":
			// liveness bookkeeping only; nothing to do
		case "TRADE":
			h.rebroadcastTrade(ctx, sub, msg)
		default:
			_ = sub.send(ctx, map[string]string{"type": "ERROR", "message": "unknown message type: " + msg.Type})
		}
	}
}

func (h *Hub) rebroadcastTrade(ctx context.Context, from *subscriber, msg inboundMessage) {
	frame := map[string]any{
		"type":      "TRADE",
		"userId":    from.userID,
		"timestamp": time.Now().UTC(),
		"regions":   msg.Regions,
	}
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for s := range h.subscribers {
		subs = append(subs, s)
	}
	h.mu.RUnlock()
	for _, s := range subs {
		_ = s.send(ctx, frame)
	}
}

func initialFrame(snapshot map[domain.Region]domain.DispatchPriceRow) map[string]any {
	return map[string]any{"type": "INITIAL", "prices": snapshot}
}

// Broadcast is called by the orchestrator after every ingestion tick with
// a fresh per-region snapshot. It updates the last-known map, persists
// it, and pushes a filtered PRICE_UPDATE to every subscriber whose region
// filter intersects the snapshot. Sends that fail drop the subscriber.
func (h *Hub) Broadcast(ctx context.Context, prices []domain.DispatchPriceRow) {
	h.mu.Lock()
	for _, p := range prices {
		h.lastKnown[p.Region] = p
	}
	h.persist()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for s := range h.subscribers {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		filtered := make([]domain.DispatchPriceRow, 0, len(prices))
		for _, p := range prices {
			if sub.wants(p.Region) {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			continue
		}
		if err := sub.send(ctx, map[string]any{"type": "PRICE_UPDATE", "prices": filtered}); err != nil {
			_ = sub.conn.Close(websocket.StatusNormalClosure, "send failed")
			h.unregister(sub)
		}
	}
}

// SubscriberCount reports the current number of live connections.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
