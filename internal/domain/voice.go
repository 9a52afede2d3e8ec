package domain

// VoicePresence is the canonical voice state of one user in one
// voice-enabled conversation. SuppressedBy names the identity currently
// holding suppression authority over this presence, zero when none.
// SuppressedBy is never serialized to clients; see ViewFor.
type VoicePresence struct {
	ConversationID ConversationID
	UserID         UserID
	SessionToken   string
	Deaf           bool
	Mute           bool
	SelfDeaf       bool
	SelfMute       bool
	SuppressedBy   UserID
}

// VoiceStateView is a read-only rendering of a VoicePresence for one
// viewer. Suppress is viewer-relative: only the holder named in
// SuppressedBy sees true. Constructed only via ViewFor.
type VoiceStateView struct {
	ConversationID ConversationID `json:"channel_id"`
	UserID         UserID         `json:"user_id"`
	SessionToken   string         `json:"session_id"`
	Deaf           bool           `json:"deaf"`
	Mute           bool           `json:"mute"`
	SelfDeaf       bool           `json:"self_deaf"`
	SelfMute       bool           `json:"self_mute"`
	Suppress       bool           `json:"suppress"`
}

// ViewFor projects the presence for a specific viewer. Pure: no
// mutation, two viewers of the same presence get independent values.
func (v VoicePresence) ViewFor(viewer UserID) VoiceStateView {
	return VoiceStateView{
		ConversationID: v.ConversationID,
		UserID:         v.UserID,
		SessionToken:   v.SessionToken,
		Deaf:           v.Deaf,
		Mute:           v.Mute,
		SelfDeaf:       v.SelfDeaf,
		SelfMute:       v.SelfMute,
		Suppress:       v.SuppressedBy != 0 && v.SuppressedBy == viewer,
	}
}
