// Package spectate streams snapshots of running online matches to
// websocket clients.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
)

const (
	subscriberBuffer = 32
	writeTimeout     = 5 * time.Second
)

// Frame is one snapshot as sent to spectators.
type Frame struct {
	MatchID  multiplayer.MatchID      `json:"match_id"`
	GameID   string                   `json:"game_id"`
	Tick     uint64                   `json:"tick"`
	Snapshot multiplayer.GameSnapshot `json:"snapshot"`
}

// MatchLister reports the matches that can be watched.
type MatchLister interface {
	ActiveMatches() []multiplayer.MatchInfo
}

type subscriber struct {
	frames chan Frame
	ended  chan struct{}
}

// Hub fans match snapshots out to spectators. It implements
// multiplayer.Observer; a slow spectator loses frames, never the match loop.
type Hub struct {
	lister MatchLister
	logger *log.Logger

	mu   sync.Mutex
	subs map[multiplayer.MatchID]map[*subscriber]struct{}
}

var _ multiplayer.Observer = (*Hub)(nil)

// NewHub creates a hub. logger may be nil.
func NewHub(lister MatchLister, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		lister: lister,
		logger: logger,
		subs:   make(map[multiplayer.MatchID]map[*subscriber]struct{}),
	}
}

// ObserveSnapshot delivers a frame to every spectator of the match.
func (h *Hub) ObserveSnapshot(info multiplayer.MatchInfo, tick uint64, snap multiplayer.GameSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[info.ID]
	if len(subs) == 0 {
		return
	}
	f := Frame{MatchID: info.ID, GameID: info.GameID, Tick: tick, Snapshot: snap}
	for s := range subs {
		select {
		case s.frames <- f:
		default:
		}
	}
}

// MatchEnded disconnects every spectator of the match.
func (h *Hub) MatchEnded(id multiplayer.MatchID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs[id] {
		close(s.ended)
	}
	delete(h.subs, id)
}

// Subscribers returns the number of spectators watching a match.
func (h *Hub) Subscribers(id multiplayer.MatchID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[id])
}

func (h *Hub) subscribe(id multiplayer.MatchID) *subscriber {
	s := &subscriber{
		frames: make(chan Frame, subscriberBuffer),
		ended:  make(chan struct{}),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[id] == nil {
		h.subs[id] = make(map[*subscriber]struct{})
	}
	h.subs[id][s] = struct{}{}
	return s
}

func (h *Hub) unsubscribe(id multiplayer.MatchID, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subs[id]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(h.subs, id)
		}
	}
}

// Handler serves GET /matches and the GET /watch/{matchID} websocket.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /matches", h.handleMatches)
	mux.HandleFunc("GET /watch/{matchID}", h.handleWatch)
	return mux
}

func (h *Hub) handleMatches(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.lister.ActiveMatches()); err != nil {
		h.logger.Warn("cannot encode match list", "err", err)
	}
}

func (h *Hub) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := multiplayer.MatchID(r.PathValue("matchID"))
	if !h.running(id) {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		h.logger.Warn("websocket accept failed", "err", err)
		return
	}
	defer conn.CloseNow() //nolint:errcheck

	// Spectators only listen; CloseRead cancels ctx when they go away.
	ctx := conn.CloseRead(r.Context())

	s := h.subscribe(id)
	defer h.unsubscribe(id, s)
	h.logger.Debug("spectator joined", "match", id, "remote", r.RemoteAddr, "watchers", h.Subscribers(id))

	for {
		select {
		case f := <-s.frames:
			if err := h.write(ctx, conn, f); err != nil {
				if !errors.Is(err, context.Canceled) {
					h.logger.Debug("spectator write failed", "match", id, "err", err)
				}
				return
			}
		case <-s.ended:
			conn.Close(websocket.StatusNormalClosure, "match ended") //nolint:errcheck
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, f Frame) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, f)
}

func (h *Hub) running(id multiplayer.MatchID) bool {
	for _, m := range h.lister.ActiveMatches() {
		if m.ID == id {
			return true
		}
	}
	return false
}
