// Package gateway is the websocket side of event fan-out.
package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// writeWait bounds a single frame write. A client that stops reading
// fails the deadline instead of blocking the sender once kernel
// buffers fill.
const writeWait = 5 * time.Second

// Hub implements core.Fanout over websocket sessions. One identity may
// hold several sessions; an event to that identity goes to all of them.
// Delivery is best effort: a dead socket is dropped and logged, the
// membership mutation that triggered the event is already committed and
// stays committed.
type Hub struct {
	mu    sync.RWMutex
	conns map[domain.UserID]map[*session]struct{}
}

type session struct {
	user domain.UserID
	conn *websocket.Conn
	mu   sync.Mutex // gorilla allows one concurrent writer
}

func NewHub() *Hub {
	return &Hub{conns: make(map[domain.UserID]map[*session]struct{})}
}

// Attach registers a connected socket for an identity and returns a
// detach func the connection handler defers.
func (h *Hub) Attach(user domain.UserID, conn *websocket.Conn) func() {
	s := &session{user: user, conn: conn}
	h.mu.Lock()
	if h.conns[user] == nil {
		h.conns[user] = make(map[*session]struct{})
	}
	h.conns[user][s] = struct{}{}
	h.mu.Unlock()
	log.Info().Str("module", "gateway").Str("user", user.String()).Msg("session attached")

	return func() {
		h.detach(s)
		log.Info().Str("module", "gateway").Str("user", user.String()).Msg("session detached")
	}
}

func (h *Hub) detach(s *session) {
	h.mu.Lock()
	if set, ok := h.conns[s.user]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.conns, s.user)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) SendToUser(_ context.Context, user domain.UserID, ev core.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "gateway").Msg("marshal event")
		return
	}
	h.mu.RLock()
	sessions := lo.Keys(h.conns[user])
	h.mu.RUnlock()
	for _, s := range sessions {
		if err := s.write(payload); err != nil {
			// Non-fatal for the caller: the session is evicted and the
			// close wakes its read loop.
			log.Error().Err(err).Str("module", "gateway").
				Str("user", s.user.String()).Msg("event delivery failed, dropping session")
			h.detach(s)
			s.conn.Close()
		}
	}
}

func (h *Hub) SendToConversation(ctx context.Context, conv *domain.Conversation, ev core.Event, excluding ...domain.UserID) {
	recipients := lo.Filter(conv.Participants, func(u domain.UserID, _ int) bool {
		return !lo.Contains(excluding, u)
	})
	for _, u := range recipients {
		h.SendToUser(ctx, u, ev)
	}
}

func (s *session) write(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}
