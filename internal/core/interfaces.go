package core

import (
	"context"

	"github.com/dkeye/Huddle/internal/domain"
)

// IDAllocator hands out globally unique, roughly time-ordered 64-bit
// identifiers. Never reuses a value.
type IDAllocator interface {
	NewID() int64
}

// RelationshipStore answers friendship facts. Owned elsewhere; the
// membership manager only reads it.
type RelationshipStore interface {
	AreFriends(ctx context.Context, a, b domain.UserID) (bool, error)
}

// ConversationStore persists canonical conversations. Get returns
// ErrNotFound for unknown ids. Implementations return snapshots; callers
// never see a shared Participants slice.
type ConversationStore interface {
	GetConversation(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error)
	SaveConversation(ctx context.Context, conv *domain.Conversation) error
}

// Fanout delivers tagged events to connected sessions. At-least-once to
// whoever is connected; offline identities get nothing from this path.
// Delivery failures are the transport's problem, never the caller's.
type Fanout interface {
	SendToUser(ctx context.Context, user domain.UserID, ev Event)
	SendToConversation(ctx context.Context, conv *domain.Conversation, ev Event, excluding ...domain.UserID)
}
