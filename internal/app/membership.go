package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// Membership owns group-conversation lifecycle: promotion from a dyadic
// conversation and add/remove of participants, each with its fan-out plan.
// All collaborators are injected; nothing here reaches global state.
type Membership struct {
	ids    core.IDAllocator
	convs  core.ConversationStore
	rels   core.RelationshipStore
	fanout core.Fanout
	locks  convLock
}

func NewMembership(ids core.IDAllocator, convs core.ConversationStore, rels core.RelationshipStore, fanout core.Fanout) *Membership {
	return &Membership{ids: ids, convs: convs, rels: rels, fanout: fanout}
}

// PromoteToGroup creates a new group conversation owned by actor from an
// existing dyadic conversation. The dyadic conversation is left as is;
// the group is a distinct entity with a fresh id and starts with the
// actor as its only participant. Emits no notifications: the caller
// immediately AddRecipients the second dyadic participant, and that add
// is what delivers their creation snapshot. Promotion alone never
// produces a group invisible to its intended second member.
func (m *Membership) PromoteToGroup(ctx context.Context, actor domain.UserID, id domain.ConversationID) (domain.ConversationID, error) {
	mu := m.locks.lock(id)
	defer mu.Unlock()

	conv, err := m.convs.GetConversation(ctx, id)
	if err != nil {
		return 0, err
	}
	if !conv.HasParticipant(actor) {
		return 0, fmt.Errorf("%w: conversation %d", core.ErrNotFound, id)
	}
	if conv.Kind != domain.KindDyadic {
		return 0, fmt.Errorf("%w: conversation %d is already a group", core.ErrConflict, id)
	}

	newID := domain.ConversationID(m.ids.NewID())
	group := domain.NewGroupConversation(newID, actor, nil)
	if err := m.convs.SaveConversation(ctx, group); err != nil {
		return 0, err
	}

	log.Info().Str("module", "app.membership").
		Int64("dyadic", int64(id)).Int64("group", int64(newID)).
		Str("owner", actor.String()).Msg("promoted to group")
	return newID, nil
}

// AddRecipient inserts peer into a group conversation. Checks run in
// order existence, membership, uniqueness, friendship, so the most
// specific error always surfaces; nothing is mutated or dispatched on
// failure. On success peer gets a creation snapshot, everyone else an
// incremental update, and a system message records the join.
func (m *Membership) AddRecipient(ctx context.Context, actor domain.UserID, id domain.ConversationID, peer domain.UserID) (*core.ConversationDTO, error) {
	mu := m.locks.lock(id)
	defer mu.Unlock()

	conv, err := m.convs.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.Kind != domain.KindGroup || !conv.HasParticipant(actor) {
		return nil, fmt.Errorf("%w: conversation %d", core.ErrNotFound, id)
	}
	if conv.HasParticipant(peer) {
		return nil, fmt.Errorf("%w: user %s already a recipient", core.ErrConflict, peer)
	}
	friends, err := m.rels.AreFriends(ctx, actor, peer)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, fmt.Errorf("%w: cannot insert peer into group", core.ErrBadRequest)
	}

	conv.Participants = append(conv.Participants, peer)
	if err := m.convs.SaveConversation(ctx, conv); err != nil {
		return nil, err
	}

	// Mutation is committed; fan-out happens strictly after, and its
	// failures stay inside the transport.
	m.fanout.SendToConversation(ctx, conv, core.Event{
		Type: core.EventSystemMessage,
		Message: &core.SystemMessage{
			ConversationID: conv.ID,
			Actor:          actor,
			Target:         peer,
			Content:        joinContent(actor, peer),
		},
	})
	snapshot := core.SnapshotOf(conv)
	m.fanout.SendToUser(ctx, peer, core.Event{
		Type:         core.EventConversationCreate,
		Conversation: snapshot,
	})
	m.fanout.SendToConversation(ctx, conv, core.Event{
		Type:         core.EventConversationUpdate,
		Conversation: snapshot,
	}, peer)

	log.Info().Str("module", "app.membership").
		Int64("conversation", int64(id)).
		Str("actor", actor.String()).Str("peer", peer.String()).
		Msg("recipient added")
	return snapshot, nil
}

// joinContent records a join, attributed to the actor when the addition
// was invitee-initiated. The actor == peer form covers self-initiated
// joins, which enter through paths that add on the user's own behalf
// (invite redemption); the AddRecipient preconditions rule it out for
// member-invited adds.
func joinContent(actor, peer domain.UserID) string {
	if actor == peer {
		return fmt.Sprintf("<@%s> joined the group.", peer)
	}
	return fmt.Sprintf("<@%s> added <@%s> to the group.", actor, peer)
}

// leaveContent distinguishes a voluntary leave from a forced removal.
func leaveContent(actor, target domain.UserID) string {
	if actor == target {
		return fmt.Sprintf("<@%s> left the group.", target)
	}
	return fmt.Sprintf("<@%s> removed <@%s> from the group.", actor, target)
}

// RemoveRecipient deletes target from a group conversation. Self-removal
// is always allowed; removing someone else requires ownership; the owner
// can never be removed. The membership mutation commits before any
// notification, so target re-querying after its deletion event never
// sees itself still listed.
func (m *Membership) RemoveRecipient(ctx context.Context, actor domain.UserID, id domain.ConversationID, target domain.UserID) error {
	mu := m.locks.lock(id)
	defer mu.Unlock()

	conv, err := m.convs.GetConversation(ctx, id)
	if err != nil {
		return err
	}
	if conv.Kind != domain.KindGroup || !conv.HasParticipant(actor) {
		return fmt.Errorf("%w: conversation %d", core.ErrNotFound, id)
	}
	if !conv.HasParticipant(target) {
		return fmt.Errorf("%w: user %s", core.ErrNotFound, target)
	}
	if target == conv.OwnerID {
		return fmt.Errorf("%w: owner cannot be removed", core.ErrConflict)
	}
	if actor != target && actor != conv.OwnerID {
		return fmt.Errorf("%w: only the owner can remove others", core.ErrForbidden)
	}

	kept := conv.Participants[:0]
	for _, p := range conv.Participants {
		if p != target {
			kept = append(kept, p)
		}
	}
	conv.Participants = kept
	if err := m.convs.SaveConversation(ctx, conv); err != nil {
		return err
	}

	m.fanout.SendToConversation(ctx, conv, core.Event{
		Type: core.EventSystemMessage,
		Message: &core.SystemMessage{
			ConversationID: conv.ID,
			Actor:          actor,
			Target:         target,
			Content:        leaveContent(actor, target),
		},
	})
	m.fanout.SendToUser(ctx, target, core.Event{
		Type:         core.EventConversationDelete,
		Conversation: &core.ConversationDTO{ID: conv.ID, Kind: conv.Kind},
	})
	m.fanout.SendToConversation(ctx, conv, core.Event{
		Type:         core.EventConversationUpdate,
		Conversation: core.SnapshotOf(conv),
	})

	log.Info().Str("module", "app.membership").
		Int64("conversation", int64(id)).
		Str("actor", actor.String()).Str("target", target.String()).
		Msg("recipient removed")
	return nil
}
