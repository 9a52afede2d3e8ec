package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/Huddle/internal/adapters/memstore"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/dkeye/Huddle/internal/mocks"
	"github.com/dkeye/Huddle/internal/snowflake"
)

const (
	userA = domain.UserID(1)
	userB = domain.UserID(2)
	userC = domain.UserID(3)
)

// fanoutRecorder tallies per-recipient deliveries so tests can assert
// the exact notification plan.
type fanoutRecorder struct {
	mu       sync.Mutex
	byTarget map[domain.UserID]map[core.EventType]int
}

func newFanoutRecorder() *fanoutRecorder {
	return &fanoutRecorder{byTarget: make(map[domain.UserID]map[core.EventType]int)}
}

func (f *fanoutRecorder) record(user domain.UserID, ev core.Event) {
	if f.byTarget[user] == nil {
		f.byTarget[user] = make(map[core.EventType]int)
	}
	f.byTarget[user][ev.Type]++
}

func (f *fanoutRecorder) SendToUser(_ context.Context, user domain.UserID, ev core.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(user, ev)
}

func (f *fanoutRecorder) SendToConversation(_ context.Context, conv *domain.Conversation, ev core.Event, excluding ...domain.UserID) {
	f.mu.Lock()
	defer f.mu.Unlock()
outer:
	for _, p := range conv.Participants {
		for _, ex := range excluding {
			if p == ex {
				continue outer
			}
		}
		f.record(p, ev)
	}
}

func (f *fanoutRecorder) count(user domain.UserID, t core.EventType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byTarget[user][t]
}

func newTestMembership(fanout core.Fanout) (*Membership, *memstore.ConversationStore, *memstore.RelationshipStore) {
	convs := memstore.NewConversationStore()
	rels := memstore.NewRelationshipStore()
	return NewMembership(snowflake.New(), convs, rels, fanout), convs, rels
}

func seedDyadic(t *testing.T, convs *memstore.ConversationStore, id domain.ConversationID, a, b domain.UserID) {
	t.Helper()
	err := convs.SaveConversation(context.Background(), &domain.Conversation{
		ID:           id,
		Kind:         domain.KindDyadic,
		Participants: []domain.UserID{a, b},
	})
	require.NoError(t, err)
}

func TestPromoteToGroup_CreatesDistinctGroup(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	fanout := newFanoutRecorder()
	m, convs, _ := newTestMembership(fanout)
	seedDyadic(t, convs, 10, userA, userB)

	groupID, err := m.PromoteToGroup(ctx, userA, 10)
	req.NoError(err)
	req.NotEqual(domain.ConversationID(10), groupID)

	group, err := convs.GetConversation(ctx, groupID)
	req.NoError(err)
	req.Equal(domain.KindGroup, group.Kind)
	req.Equal(userA, group.OwnerID)
	req.Equal([]domain.UserID{userA}, group.Participants)

	// The dyadic conversation is untouched.
	dyadic, err := convs.GetConversation(ctx, 10)
	req.NoError(err)
	req.Equal(domain.KindDyadic, dyadic.Kind)
	req.Len(dyadic.Participants, 2)

	// Promotion alone dispatches nothing.
	req.Empty(fanout.byTarget)
}

func TestPromoteToGroup_Errors(t *testing.T) {
	ctx := context.Background()
	m, convs, _ := newTestMembership(newFanoutRecorder())
	seedDyadic(t, convs, 10, userA, userB)

	_, err := m.PromoteToGroup(ctx, userA, 99)
	require.ErrorIs(t, err, core.ErrNotFound)

	_, err = m.PromoteToGroup(ctx, userC, 10)
	require.ErrorIs(t, err, core.ErrNotFound)

	groupID, err := m.PromoteToGroup(ctx, userA, 10)
	require.NoError(t, err)
	_, err = m.PromoteToGroup(ctx, userA, groupID)
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestAddRecipient_NotificationPlan(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	fanout := newFanoutRecorder()
	m, convs, rels := newTestMembership(fanout)
	seedDyadic(t, convs, 10, userA, userB)
	rels.SetFriends(userA, userB)

	groupID, err := m.PromoteToGroup(ctx, userA, 10)
	req.NoError(err)

	snapshot, err := m.AddRecipient(ctx, userA, groupID, userB)
	req.NoError(err)
	req.ElementsMatch([]domain.UserID{userA, userB}, snapshot.Participants)

	// B gets exactly one creation snapshot and no update.
	req.Equal(1, fanout.count(userB, core.EventConversationCreate))
	req.Equal(0, fanout.count(userB, core.EventConversationUpdate))
	// A gets exactly one update and no creation.
	req.Equal(1, fanout.count(userA, core.EventConversationUpdate))
	req.Equal(0, fanout.count(userA, core.EventConversationCreate))
	// The join message lands once per participant.
	req.Equal(1, fanout.count(userA, core.EventSystemMessage))
	req.Equal(1, fanout.count(userB, core.EventSystemMessage))
}

func TestSystemMessageContent(t *testing.T) {
	req := require.New(t)

	req.Equal("<@2> joined the group.", joinContent(userB, userB))
	req.Equal("<@1> added <@2> to the group.", joinContent(userA, userB))
	req.Equal("<@2> left the group.", leaveContent(userB, userB))
	req.Equal("<@1> removed <@2> from the group.", leaveContent(userA, userB))
}

func TestAddRecipient_DuplicateConflict(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	fanout := newFanoutRecorder()
	m, convs, rels := newTestMembership(fanout)
	seedDyadic(t, convs, 10, userA, userB)
	rels.SetFriends(userA, userB)

	groupID, err := m.PromoteToGroup(ctx, userA, 10)
	req.NoError(err)

	_, err = m.AddRecipient(ctx, userA, groupID, userB)
	req.NoError(err)

	_, err = m.AddRecipient(ctx, userA, groupID, userB)
	req.ErrorIs(err, core.ErrConflict)

	group, err := convs.GetConversation(ctx, groupID)
	req.NoError(err)
	req.Len(group.Participants, 2)
	// No notifications from the failed attempt.
	req.Equal(1, fanout.count(userB, core.EventConversationCreate))
	req.Equal(1, fanout.count(userA, core.EventConversationUpdate))
}

func TestAddRecipient_NotFriends_BadRequest(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	convs := memstore.NewConversationStore()
	mockRels := mocks.NewMockRelationshipStore(ctrl)
	fanout := newFanoutRecorder()
	m := NewMembership(snowflake.New(), convs, mockRels, fanout)
	seedDyadic(t, convs, 10, userA, userB)

	// Given the relationship store denies the pair
	mockRels.EXPECT().AreFriends(gomock.Any(), userA, userC).Return(false, nil).Times(1)

	groupID, err := m.PromoteToGroup(ctx, userA, 10)
	req.NoError(err)

	// When a non-friend is added
	_, err = m.AddRecipient(ctx, userA, groupID, userC)

	// Then the call fails and membership is unchanged
	req.ErrorIs(err, core.ErrBadRequest)
	group, err := convs.GetConversation(ctx, groupID)
	req.NoError(err)
	req.Equal([]domain.UserID{userA}, group.Participants)
	req.Empty(fanout.byTarget)
}

func TestAddRecipient_UnknownConversation(t *testing.T) {
	m, _, _ := newTestMembership(newFanoutRecorder())
	_, err := m.AddRecipient(context.Background(), userA, 99, userB)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func buildGroup(t *testing.T, m *Membership, convs *memstore.ConversationStore, rels *memstore.RelationshipStore, members ...domain.UserID) domain.ConversationID {
	t.Helper()
	ctx := context.Background()
	seedDyadic(t, convs, 10, members[0], members[1])
	for _, u := range members[1:] {
		rels.SetFriends(members[0], u)
	}
	groupID, err := m.PromoteToGroup(ctx, members[0], 10)
	require.NoError(t, err)
	for _, u := range members[1:] {
		_, err := m.AddRecipient(ctx, members[0], groupID, u)
		require.NoError(t, err)
	}
	return groupID
}

func TestRemoveRecipient_OwnerConflict(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	m, convs, rels := newTestMembership(newFanoutRecorder())
	groupID := buildGroup(t, m, convs, rels, userA, userB, userC)

	err := m.RemoveRecipient(ctx, userB, groupID, userA)
	req.ErrorIs(err, core.ErrConflict)
	err = m.RemoveRecipient(ctx, userA, groupID, userA)
	req.ErrorIs(err, core.ErrConflict)

	group, err := convs.GetConversation(ctx, groupID)
	req.NoError(err)
	req.Len(group.Participants, 3)
}

func TestRemoveRecipient_ForcedRemovalIsOwnerOnly(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	m, convs, rels := newTestMembership(newFanoutRecorder())
	groupID := buildGroup(t, m, convs, rels, userA, userB, userC)

	// Non-owner cannot force-remove someone else...
	err := m.RemoveRecipient(ctx, userB, groupID, userC)
	req.ErrorIs(err, core.ErrForbidden)

	// ...but can always leave.
	err = m.RemoveRecipient(ctx, userB, groupID, userB)
	req.NoError(err)

	// Owner removes others freely.
	err = m.RemoveRecipient(ctx, userA, groupID, userC)
	req.NoError(err)

	group, err := convs.GetConversation(ctx, groupID)
	req.NoError(err)
	req.Equal([]domain.UserID{userA}, group.Participants)
}

func TestRemoveRecipient_NotificationPlan(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	fanout := newFanoutRecorder()
	m, convs, rels := newTestMembership(fanout)
	groupID := buildGroup(t, m, convs, rels, userA, userB, userC)

	before := fanout.count(userC, core.EventConversationUpdate)
	err := m.RemoveRecipient(ctx, userA, groupID, userB)
	req.NoError(err)

	// Target gets the deletion, never the update.
	req.Equal(1, fanout.count(userB, core.EventConversationDelete))
	// Remaining participants each get one update.
	req.Equal(before+1, fanout.count(userC, core.EventConversationUpdate))
	req.Equal(0, fanout.count(userA, core.EventConversationDelete))

	// Target can no longer resolve the conversation membership.
	group, err := convs.GetConversation(ctx, groupID)
	req.NoError(err)
	req.False(group.HasParticipant(userB))
}

func TestOwnerStaysParticipant(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	m, convs, rels := newTestMembership(newFanoutRecorder())
	groupID := buildGroup(t, m, convs, rels, userA, userB, userC)

	req.NoError(m.RemoveRecipient(ctx, userC, groupID, userC))
	rels.SetFriends(userA, userC)
	_, err := m.AddRecipient(ctx, userA, groupID, userC)
	req.NoError(err)
	req.NoError(m.RemoveRecipient(ctx, userA, groupID, userB))

	group, err := convs.GetConversation(ctx, groupID)
	req.NoError(err)
	req.True(group.HasParticipant(group.OwnerID))
}

func TestAddRecipient_ConcurrentAddsSerialized(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	fanout := newFanoutRecorder()
	m, convs, rels := newTestMembership(fanout)
	seedDyadic(t, convs, 10, userA, userB)

	groupID, err := m.PromoteToGroup(ctx, userA, 10)
	req.NoError(err)

	const peers = 16
	for i := 0; i < peers; i++ {
		rels.SetFriends(userA, domain.UserID(100+i))
	}

	var wg sync.WaitGroup
	for i := 0; i < peers; i++ {
		wg.Add(1)
		go func(peer domain.UserID) {
			defer wg.Done()
			_, err := m.AddRecipient(ctx, userA, groupID, peer)
			require.NoError(t, err)
		}(domain.UserID(100 + i))
	}
	wg.Wait()

	group, err := convs.GetConversation(ctx, groupID)
	req.NoError(err)
	req.Len(group.Participants, peers+1)

	seen := make(map[domain.UserID]bool)
	for _, p := range group.Participants {
		req.False(seen[p], "duplicate participant %s", p)
		seen[p] = true
	}
	// Each joining peer got exactly one creation snapshot.
	for i := 0; i < peers; i++ {
		req.Equal(1, fanout.count(domain.UserID(100+i), core.EventConversationCreate))
	}
}
