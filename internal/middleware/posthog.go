package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":        true,
	"/api/v1/health": true,
}

// routeEvents maps API routes to analytics event names.
var routeEvents = map[string]string{
	http.MethodGet + " /api/v1/accounts":                                    "portfolio_viewed",
	http.MethodGet + " /api/v1/accounts/:accountID":                         "account_viewed",
	http.MethodGet + " /api/v1/accounts/:accountID/transactions":            "transactions_viewed",
	http.MethodGet + " /api/v1/accounts/:accountID/settlement":              "settlement_viewed",
	http.MethodPost + " /api/v1/accounts/:accountID/settlement":             "settlement_begun",
	http.MethodPost + " /api/v1/accounts/:accountID/settlement/counterpart": "settlement_counterpart_selected",
	http.MethodDelete + " /api/v1/accounts/:accountID/settlement":           "settlement_cancelled",
}

// EventEnqueuer receives analytics events. The PostHog wrapper drops them when it has no key.
type EventEnqueuer interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// routeEventName returns the event for a matched route. Unnamed routes fall back to the
// route path, e.g. "/api/v1/x/:id" -> "api_v1_x_:id".
func routeEventName(method string, fullPath string) string {
	if name, ok := routeEvents[method+" "+fullPath]; ok {
		return name
	}
	eventName := strings.TrimPrefix(fullPath, "/")
	return strings.ReplaceAll(eventName, "/", "_")
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog
func PosthogMiddleware(events EventEnqueuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not configured or path is in skip list
		if events == nil || pathsToSkip[c.Request.URL.Path] || strings.HasPrefix(c.Request.URL.Path, "/swagger/") {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Skip if there was an error processing the request
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Get user ID from context (set by auth middleware)
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// Skip unmatched routes
		if c.FullPath() == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if accountID := c.Param("accountID"); accountID != "" {
			props["account_id"] = accountID
		}

		events.Enqueue(userID, routeEventName(c.Request.Method, c.FullPath()), props)
	}
}
