// Package http exposes the membership and voice surface over gin.
package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/adapters/gateway"
	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

type Handlers struct {
	Membership *app.Membership
	Voice      *app.VoiceRegistry
	Convs      core.ConversationStore
	Rels       core.RelationshipStore
	Hub        *gateway.Hub
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewHandlers(m *app.Membership, v *app.VoiceRegistry, convs core.ConversationStore, rels core.RelationshipStore, hub *gateway.Hub, readLimit int64, pingPeriod time.Duration) *Handlers {
	return &Handlers{Membership: m, Voice: v, Convs: convs, Rels: rels, Hub: hub, ReadLimit: readLimit, PingPeriod: pingPeriod}
}

func paramID(c *gin.Context, name string) (int64, error) {
	uid, err := domain.ParseUserID(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s", core.ErrBadRequest, name)
	}
	return int64(uid), nil
}

// AddToGroup adds a recipient to a group conversation OR, when the
// target conversation is still dyadic, promotes it first: the actor
// becomes owner, the original peer is added (and thereby notified), then
// the invited peer. Subsequent operations go to the returned id.
func (h *Handlers) AddToGroup(c *gin.Context) {
	actor := actorOf(c)
	chanID, err := paramID(c, "channel_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	peerID, err := paramID(c, "peer_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	convID := domain.ConversationID(chanID)
	peer := domain.UserID(peerID)
	ctx := c.Request.Context()

	conv, err := h.Convs.GetConversation(ctx, convID)
	if err != nil {
		abortErr(c, err)
		return
	}
	if !conv.HasParticipant(actor) {
		abortErr(c, fmt.Errorf("%w: conversation %d", core.ErrNotFound, convID))
		return
	}

	// Friendship is checked up front so a denied add never leaves a
	// freshly promoted group behind.
	friends, err := h.Rels.AreFriends(ctx, actor, peer)
	if err != nil {
		abortErr(c, err)
		return
	}
	if !friends {
		abortErr(c, fmt.Errorf("%w: cannot insert peer into dm", core.ErrBadRequest))
		return
	}

	if conv.Kind == domain.KindDyadic {
		groupID, err := h.Membership.PromoteToGroup(ctx, actor, convID)
		if err != nil {
			abortErr(c, err)
			return
		}
		for _, p := range conv.Participants {
			if p == actor || p == peer {
				continue
			}
			if _, err := h.Membership.AddRecipient(ctx, actor, groupID, p); err != nil {
				abortErr(c, err)
				return
			}
		}
		convID = groupID
	}

	snapshot, err := h.Membership.AddRecipient(ctx, actor, convID, peer)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// RemoveFromGroup removes a recipient. Leaving is open to everyone,
// removing someone else is owner-only; both answer 204.
func (h *Handlers) RemoveFromGroup(c *gin.Context) {
	actor := actorOf(c)
	chanID, err := paramID(c, "channel_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	targetID, err := paramID(c, "user_id")
	if err != nil {
		abortErr(c, err)
		return
	}

	if err := h.Membership.RemoveRecipient(c.Request.Context(), actor, domain.ConversationID(chanID), domain.UserID(targetID)); err != nil {
		abortErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) VoiceJoin(c *gin.Context) {
	actor := actorOf(c)
	chanID, err := paramID(c, "channel_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	token := h.Voice.Join(domain.ConversationID(chanID), actor)
	c.JSON(http.StatusOK, gin.H{"session_id": token})
}

func (h *Handlers) VoiceLeave(c *gin.Context) {
	actor := actorOf(c)
	chanID, err := paramID(c, "channel_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	h.Voice.Leave(domain.ConversationID(chanID), actor)
	c.Status(http.StatusNoContent)
}

type voiceFlagsPayload struct {
	SelfMute *bool `json:"self_mute"`
	SelfDeaf *bool `json:"self_deaf"`
	Mute     *bool `json:"mute"`
	Deaf     *bool `json:"deaf"`
}

// VoiceSetFlags flips the flags present in the payload. Self flags apply
// to the actor; server mute/deafen of another user goes through the
// permissions collaborator before it reaches this surface.
func (h *Handlers) VoiceSetFlags(c *gin.Context) {
	actor := actorOf(c)
	chanID, err := paramID(c, "channel_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	var p voiceFlagsPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		abortErr(c, fmt.Errorf("%w: bad payload", core.ErrBadRequest))
		return
	}
	conv := domain.ConversationID(chanID)
	for flag, val := range map[app.VoiceFlag]*bool{
		app.FlagSelfMute:   p.SelfMute,
		app.FlagSelfDeaf:   p.SelfDeaf,
		app.FlagServerMute: p.Mute,
		app.FlagServerDeaf: p.Deaf,
	} {
		if val == nil {
			continue
		}
		if err := h.Voice.SetFlag(conv, actor, flag, *val); err != nil {
			abortErr(c, err)
			return
		}
	}
	view, err := h.Voice.ViewFor(conv, actor, actor)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ViewVoiceState returns the target's presence projected for the
// requesting identity. Two different requesters can get different
// suppress values for the same presence.
func (h *Handlers) ViewVoiceState(c *gin.Context) {
	viewer := actorOf(c)
	chanID, err := paramID(c, "channel_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	userID, err := paramID(c, "user_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	view, err := h.Voice.ViewFor(domain.ConversationID(chanID), domain.UserID(userID), viewer)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handlers) VoiceSuppress(c *gin.Context) {
	holder := actorOf(c)
	chanID, err := paramID(c, "channel_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	targetID, err := paramID(c, "user_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	if err := h.Voice.Suppress(domain.ConversationID(chanID), holder, domain.UserID(targetID)); err != nil {
		abortErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) VoiceUnsuppress(c *gin.Context) {
	chanID, err := paramID(c, "channel_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	targetID, err := paramID(c, "user_id")
	if err != nil {
		abortErr(c, err)
		return
	}
	if err := h.Voice.Unsuppress(domain.ConversationID(chanID), domain.UserID(targetID)); err != nil {
		abortErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// GatewayWS upgrades the connection and parks it in the hub until the
// client goes away. The read loop only drains control frames; events
// flow one way, server to client.
func (h *Handlers) GatewayWS(c *gin.Context) {
	user := actorOf(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("ws upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.ReadLimit)

	detach := h.Hub.Attach(user, conn)
	defer detach()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(h.PingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					return
				}
			case <-stop:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
