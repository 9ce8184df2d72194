package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"table-booking/internal/domain/user"
	"table-booking/internal/pkg/jwt"
)

// TokenValidator checks bearer tokens issued by the auth service.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortJSON(c, http.StatusUnauthorized, "Access token required")
			return
		}

		userID, role, err := m.validate(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			abortJSON(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		setUser(c, userID, role)
		c.Next()
	}
}

// RequireStaff must run after RequireAuth.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			abortJSON(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !role.IsStaff() {
			abortJSON(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, role, err := m.validate(token)
		if err != nil {
			// Invalid token; continue as a guest.
			slog.Debug("Ignoring invalid token on optional auth route", "error", err.Error())
			c.Next()
			return
		}

		setUser(c, userID, role)
		c.Next()
	}
}

func (m *AuthMiddleware) validate(token string) (uuid.UUID, user.Role, error) {
	claims, err := m.tokenValidator.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := claims.ParsedRole()
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, role, nil
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func setUser(c *gin.Context, userID uuid.UUID, role user.Role) {
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxUserRoleKey, role)
	c.Set("jwt_claims", map[string]any{
		"user_id": userID.String(),
		"role":    string(role),
	})
}

func abortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"message": msg}})
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// IsStaff reports whether the caller authenticated with a staff role.
func IsStaff(c *gin.Context) bool {
	role, ok := GetUserRole(c)
	return ok && role.IsStaff()
}
