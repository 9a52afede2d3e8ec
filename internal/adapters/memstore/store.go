// Package memstore holds the in-memory backends used in dev mode and tests.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// ConversationStore keeps canonical conversations in a map. Snapshots
// in, snapshots out: callers never share a Participants slice with the
// store.
type ConversationStore struct {
	mu    sync.RWMutex
	convs map[domain.ConversationID]*domain.Conversation
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{convs: make(map[domain.ConversationID]*domain.Conversation)}
}

func (s *ConversationStore) GetConversation(_ context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.convs[id]
	if !ok {
		return nil, fmt.Errorf("%w: conversation %d", core.ErrNotFound, id)
	}
	return conv.Clone(), nil
}

func (s *ConversationStore) SaveConversation(_ context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convs[conv.ID] = conv.Clone()
	return nil
}

type pair struct {
	a, b domain.UserID
}

func orderedPair(a, b domain.UserID) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a, b}
}

// RelationshipStore answers friendship facts from a seeded set.
// Friendship is symmetric, and everyone is a friend of themselves so
// self-initiated joins pass the uniform relationship check.
type RelationshipStore struct {
	mu      sync.RWMutex
	friends map[pair]struct{}
}

func NewRelationshipStore() *RelationshipStore {
	return &RelationshipStore{friends: make(map[pair]struct{})}
}

func (s *RelationshipStore) SetFriends(a, b domain.UserID) {
	s.mu.Lock()
	s.friends[orderedPair(a, b)] = struct{}{}
	s.mu.Unlock()
}

func (s *RelationshipStore) AreFriends(_ context.Context, a, b domain.UserID) (bool, error) {
	if a == b {
		return true, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.friends[orderedPair(a, b)]
	return ok, nil
}
