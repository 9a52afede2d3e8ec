package http

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/config"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

const identityHeader = "X-User-ID"

// IdentityMiddleware resolves the acting identity. Token verification
// lives in the auth collaborator upstream; by the time a request gets
// here the identity header is trusted.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(identityHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   true,
				"status":  http.StatusUnauthorized,
				"message": "missing identity",
			})
			return
		}
		uid, err := domain.ParseUserID(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   true,
				"status":  http.StatusUnauthorized,
				"message": "bad identity",
			})
			return
		}
		c.Set("user_id", int64(uid))
		c.Next()
	}
}

func actorOf(c *gin.Context) domain.UserID {
	return domain.UserID(c.GetInt64("user_id"))
}

// abortErr maps the error taxonomy onto HTTP statuses with the standard
// error body.
func abortErr(c *gin.Context, err error) {
	status := core.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("module", "adapters.http").Msg("internal error")
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":   true,
		"status":  status,
		"message": err.Error(),
	})
}

func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("HuddleSessions", store))

	log.Info().Str("module", "adapters.http").Msg("router setup")

	api := r.Group("/api", IdentityMiddleware())

	api.GET("/ws/gateway", h.GatewayWS)

	channels := api.Group("/channels/:channel_id")
	channels.PUT("/recipients/:peer_id", h.AddToGroup)
	channels.DELETE("/recipients/:user_id", h.RemoveFromGroup)

	channels.POST("/voice-states", h.VoiceJoin)
	channels.DELETE("/voice-states", h.VoiceLeave)
	channels.PATCH("/voice-states", h.VoiceSetFlags)
	channels.GET("/voice-states/:user_id", h.ViewVoiceState)
	channels.PUT("/voice-states/:user_id/suppress", h.VoiceSuppress)
	channels.DELETE("/voice-states/:user_id/suppress", h.VoiceUnsuppress)

	return r
}
