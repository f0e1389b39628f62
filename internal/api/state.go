package api

import (
	"net/http"

	"quickcart/internal/auth"
	"quickcart/internal/logger"
	"quickcart/internal/session"
	"quickcart/internal/storefront"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const stateKey = "storefront_state"

// WithState resolves the caller's session state and syncs the signed-in user
// into it.
func (h *Handler) WithState() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := session.IDFrom(ctx)

		state, err := h.sessions.Get(ctx, id)
		if err != nil {
			logger.FromCtx(ctx).Warn("no usable session", zap.String("session_id", id), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing session"})
			return
		}

		state.SetUser(auth.UserFrom(ctx))
		c.Set(stateKey, state)
		c.Next()
	}
}

// RequireSeller rejects callers whose seller flag is not set.
func RequireSeller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !stateFrom(c).IsSeller() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "seller access required"})
			return
		}
		c.Next()
	}
}

func stateFrom(c *gin.Context) *storefront.State {
	return c.MustGet(stateKey).(*storefront.State)
}
