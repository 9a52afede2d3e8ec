package core

import "github.com/dkeye/Huddle/internal/domain"

type EventType string

const (
	// EventConversationCreate: full snapshot, sent to an identity that
	// has no prior knowledge of the conversation.
	EventConversationCreate EventType = "conversation_create"
	// EventConversationUpdate: incremental membership update for
	// identities that already hold the conversation.
	EventConversationUpdate EventType = "conversation_update"
	// EventConversationDelete: the conversation is gone from the
	// recipient's point of view.
	EventConversationDelete EventType = "conversation_delete"
	// EventSystemMessage: join/leave records shown inline in the
	// conversation. Durable storage is the messaging collaborator's job.
	EventSystemMessage EventType = "system_message"
)

// Event is the unit handed to the fanout transport. Conversation is a
// snapshot for create/update, an id-only stub for delete.
type Event struct {
	Type         EventType        `json:"type"`
	Conversation *ConversationDTO `json:"conversation,omitempty"`
	Message      *SystemMessage   `json:"message,omitempty"`
}

// ConversationDTO is the wire snapshot of a conversation (no internal
// pointers, stable for JSON).
type ConversationDTO struct {
	ID           domain.ConversationID   `json:"id"`
	Kind         domain.ConversationKind `json:"kind"`
	OwnerID      domain.UserID           `json:"owner_id,omitempty"`
	Participants []domain.UserID         `json:"participants"`
}

// SystemMessage records a membership change inline. Target == Actor
// distinguishes self-initiated joins and leaves.
type SystemMessage struct {
	ConversationID domain.ConversationID `json:"channel_id"`
	Actor          domain.UserID         `json:"actor_id"`
	Target         domain.UserID         `json:"target_id"`
	Content        string                `json:"content"`
}

func SnapshotOf(conv *domain.Conversation) *ConversationDTO {
	dto := &ConversationDTO{
		ID:           conv.ID,
		Kind:         conv.Kind,
		OwnerID:      conv.OwnerID,
		Participants: make([]domain.UserID, len(conv.Participants)),
	}
	copy(dto.Participants, conv.Participants)
	return dto
}
