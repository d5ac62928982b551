package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	"github.com/SscSPs/pleasybank_client/internal/middleware"
)

// DefaultBackendTimeout bounds a single backend call when no timeout is configured.
const DefaultBackendTimeout = 10 * time.Second

// BaseService provides common functionality for all services
type BaseService struct {
	// BackendTimeout bounds every backend call issued by the service.
	BackendTimeout time.Duration
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// callContext derives the context for one backend call.
func (s *BaseService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.BackendTimeout
	if timeout <= 0 {
		timeout = DefaultBackendTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// backendError translates backend answers the API layer has a status for. Other errors
// are wrapped with what and passed through.
func backendError(err error, what string) error {
	var remoteErr *apperrors.RemoteError
	if errors.As(err, &remoteErr) {
		switch remoteErr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s: %w", apperrors.ErrNotFound, what, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s: %w", apperrors.ErrUnauthorized, what, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}
