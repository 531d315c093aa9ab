package handlers

import (
	"fmt"
	"time"

	"github.com/dataroom/backend/internal/middleware"
	"github.com/dataroom/backend/internal/services"
	"github.com/dataroom/backend/pkg/logger"
	"github.com/dataroom/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	SSO         *services.SSOService
	FrontendURL string
}

func NewAuthHandler(sso *services.SSOService, frontendURL string) *AuthHandler {
	return &AuthHandler{SSO: sso, FrontendURL: frontendURL}
}

// GoogleLogin starts the OAuth flow: generates a state nonce, pins it in a
// short-lived cookie, and hands the consent URL to the frontend.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	oauthCfg, err := h.SSO.OAuthConfig()
	if err != nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "google sign-in is not configured")
	}

	state, err := h.SSO.GenerateState()
	if err != nil {
		logger.Error("oauth_state_generation_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to start sign-in")
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	url := oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"url": url})
}

// GoogleCallback completes the OAuth flow: verifies the state, exchanges
// the code, validates the id_token, upserts the user, and redirects back to
// the frontend with a session token.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		logger.Warn("oauth_state_mismatch", map[string]interface{}{"ip": c.IP()})
		return utils.Error(c, fiber.StatusBadRequest, "invalid oauth state")
	}
	c.ClearCookie(oauthStateCookie)

	code := c.Query("code")
	if code == "" {
		return utils.Error(c, fiber.StatusBadRequest, "missing authorization code")
	}

	token, err := h.SSO.Exchange(c.Context(), code)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "failed to exchange authorization code")
	}

	profile, err := h.SSO.VerifyIDToken(c.Context(), token)
	if err != nil {
		logger.Warn("oidc_verification_failed", map[string]interface{}{"error": err.Error()})
		return utils.Error(c, fiber.StatusUnauthorized, "failed to verify identity")
	}

	user, err := h.SSO.FindOrCreateUser(c.Context(), profile, token)
	if err != nil {
		logger.Error("user_upsert_failed", err, map[string]interface{}{"email": profile.Email})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	jwtToken, err := utils.GenerateToken(user)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "jwt_generation_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to create session")
	}

	logger.InfoWithUser(user.ID.String(), "user_signed_in", map[string]interface{}{
		"email": user.Email,
	})
	return c.Redirect(fmt.Sprintf("%s/auth/callback?token=%s", h.FrontendURL, jwtToken), fiber.StatusTemporaryRedirect)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"user": user})
}

// Session exposes the stored Google access token so the frontend can open
// the picker without a second consent round-trip.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	if user.AccessToken == nil || *user.AccessToken == "" {
		return utils.Error(c, fiber.StatusNotFound, "no drive session available")
	}
	if user.TokenExpiry != nil && user.TokenExpiry.Before(time.Now()) {
		return utils.Error(c, fiber.StatusUnauthorized, "drive session expired")
	}

	data := fiber.Map{"accessToken": *user.AccessToken}
	if user.TokenExpiry != nil {
		data["expiresAt"] = user.TokenExpiry
	}
	return utils.Success(c, fiber.StatusOK, data)
}
