package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/enlistment/internal/app/auth"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/pkg/auth"
	"github.com/yigit/enlistment/internal/pkg/logger"
	"github.com/yigit/enlistment/internal/pkg/tokenstore"
)

// Context keys set by JWTAuth
const (
	UserIDKey         = "userID"
	TokenIDKey        = "tokenID"
	TokenExpiresAtKey = "tokenExpiresAt"
)

// TokenVerifier validates a session token
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	tokens      TokenVerifier
	revocations tokenstore.RevocationStore
	authz       *appauth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens TokenVerifier, revocations tokenstore.RevocationStore, authz *appauth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:      tokens,
		revocations: revocations,
		authz:       authz,
	}
}

// authFailure is the response JWTAuth sends when a request cannot be authenticated
type authFailure struct {
	status int
	body   *dto.ErrorResponse
}

// authenticate verifies the bearer token of the request and checks it was not revoked
func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, *authFailure) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, &authFailure{http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required")}
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil, &authFailure{http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Invalid token format")}
	}

	claims, err := m.tokens.Verify(tokenString)
	if err != nil {
		return nil, &authFailure{http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid or expired token")}
	}

	revoked, err := m.revocations.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		logger.Error().Err(err).Str("tokenID", claims.ID).Msg("Failed to check token revocation")
		return nil, &authFailure{http.StatusInternalServerError,
			dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error")}
	}
	if revoked {
		return nil, &authFailure{http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid or expired token")}
	}

	return claims, nil
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(TokenIDKey, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(TokenExpiresAtKey, claims.ExpiresAt.Time)
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, failure := m.authenticate(c)
		if failure != nil {
			c.AbortWithStatusJSON(failure.status, failure.body)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a usable token is presented. Missing,
// malformed, expired or revoked tokens leave the request anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, failure := m.authenticate(c); failure == nil {
			setClaims(c, claims)
		} else if c.GetHeader("Authorization") != "" {
			logger.Debug().Int("status", failure.status).Msg("Ignoring unusable token on optional auth route")
		}
		c.Next()
	}
}

// RequireCapability aborts with 403 unless the authenticated caller holds capability.
// Must run after JWTAuth.
func (m *AuthMiddleware) RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
			return
		}

		if err := m.authz.Authorize(c.Request.Context(), userID, capability); err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Next()
	}
}

// CurrentUserID returns the user id stored by JWTAuth
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// CurrentToken returns the id and expiry of the token that authenticated the request
func CurrentToken(c *gin.Context) (string, time.Time, bool) {
	id := c.GetString(TokenIDKey)
	if id == "" {
		return "", time.Time{}, false
	}
	return id, c.GetTime(TokenExpiresAtKey), true
}
