package v1

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
)

func (h *handlerImpl) HandleGoogleLogin(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate oauth state")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.setCookie(c, oauthStateCookie, state, oauthStateTTL)
	c.Redirect(http.StatusFound, h.identity.AuthCodeURL(state))
}

func (h *handlerImpl) HandleGoogleCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		h.logger.Error().Msg("oauth state mismatch")
		abort(c, newBadRequestError(errInvalidState))
		return
	}
	h.clearCookie(c, oauthStateCookie)

	code := c.Query("code")
	if code == "" {
		h.logger.Error().
			Str("error", c.Query("error")).
			Msg("no authorization code provided")
		abort(c, newBadRequestError(errMissingCode))
		return
	}

	profile, err := h.identity.Exchange(c, code)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to exchange identity")
		abort(c, newUnauthorizedError(errAuthFailed))
		return
	}

	user, err := h.users.FindOrCreate(c, *profile)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to find or create user")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	session, err := h.sessions.Issue(user.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to issue session")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.setCookie(c, h.cookie.Name, session.Token, time.Until(session.ExpiresAt))
	h.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	c.Redirect(http.StatusFound, h.frontendURL)
}

// HandleCurrentUser answers with an empty body when nobody is logged in.
func (h *handlerImpl) HandleCurrentUser(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	h.clearCookie(c, h.cookie.Name)
	h.logger.Info().Msg("logged out")
	c.Redirect(http.StatusFound, h.frontendURL)
}

func generateState() (string, error) {
	const length = 32
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func (h *handlerImpl) setCookie(c *gin.Context, name, value string, maxAge time.Duration) {
	const httpOnly = true
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(maxAge.Seconds()),
		"/", "", h.cookie.Secure, httpOnly)
}

func (h *handlerImpl) clearCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1,
		"/", "", h.cookie.Secure, true)
}
