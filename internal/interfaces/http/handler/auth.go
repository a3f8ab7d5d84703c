package handler

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"

	appidentity "github.com/ayustore/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// AuthHandler serves registration, login and the Google OAuth flow
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	userService *appidentity.UserService
	frontendURL string
	auth        gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	authService *appidentity.AuthService,
	userService *appidentity.UserService,
	frontendURL string,
	auth gin.HandlerFunc,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		frontendURL: frontendURL,
		auth:        auth,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.GET("/google", h.GoogleRedirect)
	auth.GET("/google/callback", h.GoogleCallback)
	auth.GET("/me", h.auth, h.Me)
}

// Register creates a password account
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Login authenticates a password account
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GoogleRedirect sends the browser to the Google consent page with a
// random state bound to a short-lived cookie
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	authURL, err := h.authService.GoogleAuthURL(state)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback finishes the OAuth flow and redirects to the frontend
// with the issued token
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		h.BadRequest(c, "Invalid OAuth state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.BadRequest(c, "Missing authorization code")
		return
	}

	result, err := h.authService.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	redirect := h.frontendURL + "/auth/callback?token=" + url.QueryEscape(result.Token)
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	result, err := h.userService.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func randomState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
