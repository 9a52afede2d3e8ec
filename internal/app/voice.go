package app

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

type voiceKey struct {
	conv domain.ConversationID
	user domain.UserID
}

// VoiceRegistry tracks canonical voice presences in memory. Presences
// are ephemeral: connections drop on restart, so the registry resets
// with them. Reads hand out viewer-scoped projections only, never the
// canonical record.
type VoiceRegistry struct {
	mu     sync.RWMutex
	states map[voiceKey]*domain.VoicePresence
}

func NewVoiceRegistry() *VoiceRegistry {
	return &VoiceRegistry{states: make(map[voiceKey]*domain.VoicePresence)}
}

// Join creates the presence for a user entering voice and returns its
// session token. Joining twice replaces the previous session.
func (r *VoiceRegistry) Join(conv domain.ConversationID, user domain.UserID) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.states[voiceKey{conv, user}] = &domain.VoicePresence{
		ConversationID: conv,
		UserID:         user,
		SessionToken:   token,
	}
	r.mu.Unlock()
	log.Info().Str("module", "app.voice").
		Int64("conversation", int64(conv)).Str("user", user.String()).
		Msg("voice join")
	return token
}

func (r *VoiceRegistry) Leave(conv domain.ConversationID, user domain.UserID) {
	r.mu.Lock()
	delete(r.states, voiceKey{conv, user})
	r.mu.Unlock()
	log.Info().Str("module", "app.voice").
		Int64("conversation", int64(conv)).Str("user", user.String()).
		Msg("voice leave")
}

type VoiceFlag int

const (
	FlagSelfMute VoiceFlag = iota
	FlagSelfDeaf
	FlagServerMute
	FlagServerDeaf
)

// SetFlag flips one of the four independent booleans on a presence.
func (r *VoiceRegistry) SetFlag(conv domain.ConversationID, user domain.UserID, flag VoiceFlag, on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[voiceKey{conv, user}]
	if !ok {
		return fmt.Errorf("%w: no voice state for user %s", core.ErrNotFound, user)
	}
	switch flag {
	case FlagSelfMute:
		st.SelfMute = on
	case FlagSelfDeaf:
		st.SelfDeaf = on
	case FlagServerMute:
		st.Mute = on
	case FlagServerDeaf:
		st.Deaf = on
	}
	return nil
}

// Suppress records holder as the suppression authority over target's
// presence. Authorization of the holder happens before this call, by
// the permissions collaborator. At most one holder at a time, so a new
// holder displaces the previous one.
func (r *VoiceRegistry) Suppress(conv domain.ConversationID, holder, target domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[voiceKey{conv, target}]
	if !ok {
		return fmt.Errorf("%w: no voice state for user %s", core.ErrNotFound, target)
	}
	st.SuppressedBy = holder
	return nil
}

func (r *VoiceRegistry) Unsuppress(conv domain.ConversationID, target domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[voiceKey{conv, target}]
	if !ok {
		return fmt.Errorf("%w: no voice state for user %s", core.ErrNotFound, target)
	}
	st.SuppressedBy = 0
	return nil
}

// ViewFor returns the presence of user projected for viewer.
func (r *VoiceRegistry) ViewFor(conv domain.ConversationID, user, viewer domain.UserID) (domain.VoiceStateView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.states[voiceKey{conv, user}]
	if !ok {
		return domain.VoiceStateView{}, fmt.Errorf("%w: no voice state for user %s", core.ErrNotFound, user)
	}
	return st.ViewFor(viewer), nil
}
