package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewFor_SuppressIsViewerRelative(t *testing.T) {
	req := require.New(t)
	presence := VoicePresence{
		ConversationID: 100,
		UserID:         7,
		SessionToken:   "tok",
		SelfMute:       true,
		SuppressedBy:   5,
	}

	// Only the holder sees suppress.
	req.True(presence.ViewFor(5).Suppress)
	req.False(presence.ViewFor(6).Suppress)
	req.False(presence.ViewFor(7).Suppress)

	// Everything else carries over unchanged.
	view := presence.ViewFor(6)
	req.Equal(presence.UserID, view.UserID)
	req.Equal(presence.SessionToken, view.SessionToken)
	req.True(view.SelfMute)
	req.False(view.Mute)
}

func TestViewFor_NoHolder(t *testing.T) {
	presence := VoicePresence{ConversationID: 100, UserID: 7}
	require.False(t, presence.ViewFor(7).Suppress)
	require.False(t, presence.ViewFor(0).Suppress)
}

func TestViewFor_Pure(t *testing.T) {
	req := require.New(t)
	presence := VoicePresence{ConversationID: 100, UserID: 7, SuppressedBy: 5}

	first := presence.ViewFor(5)
	second := presence.ViewFor(5)
	req.Equal(first, second)
	// Canonical record untouched.
	req.Equal(UserID(5), presence.SuppressedBy)
}

func TestViewFor_HolderNeverSerialized(t *testing.T) {
	req := require.New(t)
	presence := VoicePresence{ConversationID: 100, UserID: 7, SuppressedBy: 5}

	raw, err := json.Marshal(presence.ViewFor(6))
	req.NoError(err)

	var fields map[string]any
	req.NoError(json.Unmarshal(raw, &fields))
	req.NotContains(fields, "suppressed_by")
	req.Contains(fields, "suppress")
}
