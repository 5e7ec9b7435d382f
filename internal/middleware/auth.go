package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/blogzone/core/internal/models"
	"github.com/blogzone/core/internal/pkg/jwt"
	"github.com/blogzone/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ContextKeyUser = "auth_user"

// UserLoader fetches the live user record for an authenticated ID. The role
// is always taken from the fetched record, never from the token, so a role
// change takes effect on the next request.
type UserLoader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Auth returns a middleware that enforces bearer-token authentication.
func Auth(issuer *jwt.Issuer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := resolveUser(c, issuer, users)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUser, u)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present. An absent,
// malformed, or expired token silently downgrades the request to anonymous.
func OptionalAuth(issuer *jwt.Issuer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, err := resolveUser(c, issuer, users); err == nil {
			c.Set(ContextKeyUser, u)
		}
		c.Next()
	}
}

// CurrentUser extracts the authenticated caller from context, nil when
// anonymous.
func CurrentUser(c *gin.Context) *models.User {
	v, _ := c.Get(ContextKeyUser)
	u, _ := v.(*models.User)
	return u
}

func resolveUser(c *gin.Context, issuer *jwt.Issuer, users UserLoader) (*models.User, error) {
	token := NormalizeToken(c.GetHeader("Authorization"))
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, err
	}

	u, err := users.FindByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.New("user no longer exists")
	}
	return u, nil
}

// NormalizeToken trims spaces and strips the optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
