package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jatinbuilds/trio/backend/go-services/internal/config"
	"github.com/jatinbuilds/trio/backend/go-services/internal/sessions"
	"github.com/jatinbuilds/trio/backend/go-services/internal/tokens"
	"github.com/jatinbuilds/trio/backend/go-services/internal/users"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/logger"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/middleware"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// LoginRequest carries the identity provider's ID token. The frontend
// completes the OIDC flow itself and hands us the result.
type LoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// AuthHandler exchanges verified identities for service-issued tokens.
type AuthHandler struct {
	cfg         *config.Config
	verifier    middleware.Verifier
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
}

func NewAuthHandler(cfg *config.Config, ver middleware.Verifier, u *users.Service, s *sessions.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, verifier: ver, usersSvc: u, sessionsSvc: s}
}

func (h *AuthHandler) accessTTL() time.Duration {
	if h.cfg.JWT.AccessTokenTTL > 0 {
		return h.cfg.JWT.AccessTokenTTL
	}
	return defaultAccessTokenTTL
}

func (h *AuthHandler) refreshTTL() time.Duration {
	if h.cfg.JWT.RefreshTokenTTL > 0 {
		return h.cfg.JWT.RefreshTokenTTL
	}
	return defaultRefreshTokenTTL
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

// Login verifies the ID token, provisions the user on first sight, and
// returns an access JWT plus a refresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tok, err := h.verifier.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid id token", "details": err.Error()})
		return
	}
	var claims map[string]interface{}
	if err := tok.Claims(&claims); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
		return
	}

	u, err := h.usersSvc.EnsureFromClaims(c.Request.Context(), claims)
	if err != nil {
		logger.Errorf("user provisioning error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user provisioning failed"})
		return
	}

	rft, err := h.sessionsSvc.CreateSession(c.Request.Context(), u.ID, h.refreshTTL())
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, u, h.accessTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": rft,
		"user":         u,
		"expiresIn":    int(h.accessTTL().Seconds()),
	})
}

// Refresh trades a valid refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.sessionsSvc.ValidateRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), sess.UserID)
	if err != nil || u == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, u, h.accessTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access, "expiresIn": int(h.accessTTL().Seconds())})
}

// Logout drops the refresh session and, when a Bearer access token is
// attached, blacklists it for its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if auth := c.GetHeader("Authorization"); auth != "" {
		var at string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &at); n == 1 {
			if exp, err := parseExpFromJWT(at); err == nil {
				if ttl := time.Until(exp); ttl > 0 {
					if err := sessions.BlacklistAccessToken(c.Request.Context(), at, ttl); err != nil {
						c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to blacklist access token"})
						return
					}
				}
			}
		}
	}

	if err := h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// parseExpFromJWT decodes the JWT payload and returns the `exp` claim.
// Payload-only parsing, no signature check; only used to size blacklist
// TTLs.
func parseExpFromJWT(tok string) (time.Time, error) {
	parts := strings.Split(tok, ".")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid token")
	}
	b, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		b, err = base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return time.Time{}, err
		}
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(b, &claims); err != nil {
		return time.Time{}, err
	}
	switch v := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0), nil
	case json.Number:
		i64, err := v.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(i64, 0), nil
	default:
		return time.Time{}, fmt.Errorf("exp claim not present")
	}
}
