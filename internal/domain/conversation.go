package domain

import "strconv"

type ConversationID int64

func (c ConversationID) String() string {
	return strconv.FormatInt(int64(c), 10)
}

type ConversationKind string

const (
	KindDyadic ConversationKind = "dyadic"
	KindGroup  ConversationKind = "group"
)

// Conversation is the canonical membership record.
// OwnerID is zero for dyadic conversations; a group conversation's owner
// is always present in Participants.
type Conversation struct {
	ID           ConversationID
	Kind         ConversationKind
	OwnerID      UserID
	Participants []UserID
}

func (c *Conversation) HasParticipant(u UserID) bool {
	for _, p := range c.Participants {
		if p == u {
			return true
		}
	}
	return false
}

// Clone returns an independent copy so stores can hand out snapshots
// without sharing the participants slice.
func (c *Conversation) Clone() *Conversation {
	cp := *c
	cp.Participants = make([]UserID, len(c.Participants))
	copy(cp.Participants, c.Participants)
	return &cp
}

// NewGroupConversation avoids raw literals in the app layer and keeps
// the owner-is-participant invariant obvious at construction.
func NewGroupConversation(id ConversationID, owner UserID, participants []UserID) *Conversation {
	conv := &Conversation{
		ID:      id,
		Kind:    KindGroup,
		OwnerID: owner,
	}
	conv.Participants = append(conv.Participants, participants...)
	if !conv.HasParticipant(owner) {
		conv.Participants = append(conv.Participants, owner)
	}
	return conv
}
