package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is the type of the keys this package stores in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	userIDKey      = contextKey("userID")
	bearerTokenKey = contextKey("bearerToken")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	return GetUserIDFromCtx(c.Request.Context())
}

// GetUserIDFromCtx retrieves the authenticated user ID from a request context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithBearerToken returns a copy of ctx carrying the caller's raw bearer token, so that
// outgoing backend calls can act on the caller's behalf.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey, token)
}

// GetBearerTokenFromCtx returns the caller's raw bearer token, or "" outside a request.
func GetBearerTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey).(string)
	return token
}
