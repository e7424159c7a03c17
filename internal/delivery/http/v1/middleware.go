package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/agua-vida/internal/models"
)

const userCtxKey = "user"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		abort(c, newUnauthorizedError(errNotLoggedIn))
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}

// resolveUser turns the session cookie into a stored user. Any failure
// along the way means there is no session.
func (h *handlerImpl) resolveUser(c *gin.Context) (*models.User, bool) {
	token, err := c.Cookie(h.cookie.Name)
	if err != nil || token == "" {
		h.logger.Debug().Msg("no session cookie")
		return nil, false
	}

	userID, err := h.sessions.Parse(token)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse session")
		return nil, false
	}

	user, err := h.users.GetByID(c, userID)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("session user not found")
		return nil, false
	}
	return user, true
}

func userFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userCtxKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
