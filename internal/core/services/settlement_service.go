package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	portsrepo "github.com/SscSPs/pleasybank_client/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/utils/mapping"
	"golang.org/x/sync/errgroup"
)

// Analytics events emitted when a settlement reaches a terminal phase.
const (
	EventSettlementCompleted = "settlement_completed"
	EventSettlementFailed    = "settlement_failed"
)

// DefaultSettlementLockTTL is how long an account stays locked by a workflow that is
// waiting for its counterpart.
const DefaultSettlementLockTTL = 2 * time.Minute

// settlementEntry is the registry slot of one account. Exactly one of workflow and
// final is set: workflow while the settlement runs, final once it has finished.
type settlementEntry struct {
	workflow  *SettlementWorkflow
	final     *domain.SettlementState
	owner     string
	userID    string
	startedAt time.Time
}

type settlementService struct {
	BaseService
	backend   portssvc.BackendClient
	locks     portsrepo.SettlementLockRepository
	analytics portssvc.AnalyticsClient
	lockTTL   time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*settlementEntry
}

// SettlementServiceOption is a functional option for configuring the settlement service
type SettlementServiceOption func(*settlementService)

// WithSettlementAnalytics adds the analytics client used for terminal events.
func WithSettlementAnalytics(client portssvc.AnalyticsClient) SettlementServiceOption {
	return func(s *settlementService) {
		s.analytics = client
	}
}

// WithSettlementLockTTL sets how long an account lock lives without renewal.
func WithSettlementLockTTL(ttl time.Duration) SettlementServiceOption {
	return func(s *settlementService) {
		s.lockTTL = ttl
	}
}

// WithSettlementBackendTimeout bounds every backend call of the service and its workflows.
func WithSettlementBackendTimeout(timeout time.Duration) SettlementServiceOption {
	return func(s *settlementService) {
		s.BackendTimeout = timeout
	}
}

// WithSettlementClock replaces the service clock.
func WithSettlementClock(now func() time.Time) SettlementServiceOption {
	return func(s *settlementService) {
		s.now = now
	}
}

// NewSettlementService creates a new settlement service with the provided options
func NewSettlementService(backend portssvc.BackendClient, locks portsrepo.SettlementLockRepository, options ...SettlementServiceOption) portssvc.SettlementSvcFacade {
	svc := &settlementService{
		backend: backend,
		locks:   locks,
		lockTTL: DefaultSettlementLockTTL,
		now:     time.Now,
		entries: make(map[string]*settlementEntry),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

func (s *settlementService) BeginSettlement(ctx context.Context, userID string, accountID string) (*domain.SettlementState, error) {
	entry, staleOwner, err := s.reserve(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if staleOwner != "" {
		s.releaseLock(ctx, accountID, staleOwner)
	}
	workflow := entry.workflow

	acquired, err := s.locks.AcquireSettlementLock(ctx, accountID, entry.owner, s.lockTTL)
	if err != nil {
		s.unreserve(accountID, entry)
		s.LogError(ctx, err, "Failed to acquire settlement lock", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	if !acquired {
		s.unreserve(accountID, entry)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSettlementInProgress, accountID)
	}

	req, err := s.prefetch(ctx, accountID)
	if err != nil {
		s.releaseLock(ctx, accountID, entry.owner)
		s.unreserve(accountID, entry)
		return nil, err
	}

	state, err := workflow.Start(ctx, req)
	if state.Phase == domain.PhaseIdle {
		// Rejected before anything happened; nothing to remember.
		s.releaseLock(ctx, accountID, entry.owner)
		s.unreserve(accountID, entry)
		return nil, err
	}
	s.afterStep(ctx, accountID, entry, state)
	return &state, err
}

func (s *settlementService) SelectCounterpart(ctx context.Context, userID string, accountID string, counterpartAccountID string) (*domain.SettlementState, error) {
	entry, workflow, err := s.activeEntry(userID, accountID)
	if err != nil {
		return nil, err
	}

	// The user may have taken a while to choose; make sure the lock is still ours
	// before money moves.
	held, err := s.locks.ExtendSettlementLock(ctx, accountID, entry.owner, s.lockTTL)
	if err != nil {
		s.LogError(ctx, err, "Failed to extend settlement lock", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	if !held {
		state, _ := workflow.Cancel(ctx)
		s.afterStep(ctx, accountID, entry, state)
		return nil, fmt.Errorf("%w: %s was locked by another request", apperrors.ErrSettlementInProgress, accountID)
	}

	state, err := workflow.SelectCounterpart(ctx, counterpartAccountID)
	s.afterStep(ctx, accountID, entry, state)
	return &state, err
}

func (s *settlementService) CancelSettlement(ctx context.Context, userID string, accountID string) (*domain.SettlementState, error) {
	entry, workflow, err := s.activeEntry(userID, accountID)
	if err != nil {
		return nil, err
	}
	state, err := workflow.Cancel(ctx)
	if err != nil {
		return &state, err
	}
	s.afterStep(ctx, accountID, entry, state)
	return &state, nil
}

func (s *settlementService) GetSettlement(ctx context.Context, userID string, accountID string) (*domain.SettlementState, error) {
	s.mu.Lock()
	entry, ok := s.entries[accountID]
	var final *domain.SettlementState
	var workflow *SettlementWorkflow
	if ok {
		final, workflow = entry.final, entry.workflow
	}
	s.mu.Unlock()

	switch {
	case !ok, entry.userID != userID:
		return nil, fmt.Errorf("%w: no settlement for account %s", apperrors.ErrNotFound, accountID)
	case final != nil:
		state := *final
		return &state, nil
	}
	state := workflow.State()
	return &state, nil
}

// reserve claims the registry slot of an account for a new workflow. A finished
// workflow is replaced; a running one rejects the request, unless it has been waiting
// for its counterpart longer than the lock lives. The lock owner of a replaced workflow
// is returned so the caller can release it outside the registry mutex.
func (s *settlementService) reserve(ctx context.Context, userID string, accountID string) (*settlementEntry, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var staleOwner string
	if existing, ok := s.entries[accountID]; ok && existing.workflow != nil {
		state := existing.workflow.State()
		abandoned := state.Phase == domain.PhaseAwaitingCounterpart && s.now().Sub(existing.startedAt) > s.lockTTL
		if !abandoned {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrSettlementInProgress, accountID)
		}
		s.LogInfo(ctx, "Replacing abandoned settlement", slog.String("account_id", accountID), slog.String("workflow_id", state.WorkflowID))
		if _, err := existing.workflow.Cancel(ctx); err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrSettlementInProgress, accountID)
		}
		staleOwner = existing.owner
	}

	workflow := NewSettlementWorkflow(s.backend, s.backend,
		WithWorkflowCallTimeout(s.BackendTimeout),
		WithWorkflowClock(s.now))
	entry := &settlementEntry{
		workflow:  workflow,
		owner:     workflow.State().WorkflowID,
		userID:    userID,
		startedAt: s.now(),
	}
	s.entries[accountID] = entry
	return entry, staleOwner, nil
}

func (s *settlementService) unreserve(accountID string, entry *settlementEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries[accountID] == entry {
		delete(s.entries, accountID)
	}
}

// activeEntry returns the running workflow of an account. Workflows of other users are
// reported as missing.
func (s *settlementService) activeEntry(userID string, accountID string) (*settlementEntry, *SettlementWorkflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[accountID]
	switch {
	case !ok, entry.userID != userID:
		return nil, nil, fmt.Errorf("%w: no settlement in progress for account %s", apperrors.ErrNotFound, accountID)
	case entry.final != nil:
		return nil, nil, apperrors.ErrSettlementTerminal
	}
	return entry, entry.workflow, nil
}

// prefetch loads the closing account and the caller's accounts concurrently.
func (s *settlementService) prefetch(ctx context.Context, accountID string) (domain.SettlementRequest, error) {
	var rawAccount any
	var rawAccounts []any

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		callCtx, cancel := s.callContext(gctx)
		defer cancel()
		raw, err := s.backend.GetAccount(callCtx, accountID)
		if err != nil {
			return backendError(err, "get account "+accountID)
		}
		rawAccount = raw
		return nil
	})
	g.Go(func() error {
		callCtx, cancel := s.callContext(gctx)
		defer cancel()
		raws, err := s.backend.ListAccounts(callCtx)
		if err != nil {
			return backendError(err, "list accounts")
		}
		rawAccounts = raws
		return nil
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load accounts for settlement", slog.String("account_id", accountID))
		}
		return domain.SettlementRequest{}, err
	}

	account := mapping.NormalizeAccount(rawAccount)
	if account.ID == "" {
		account.ID = accountID
	}
	return domain.SettlementRequest{
		Account:    account,
		Candidates: mapping.NormalizeAccounts(rawAccounts),
	}, nil
}

// afterStep discards a workflow that reached a terminal phase: the lock is released,
// only its final state is kept, and the outcome is reported.
func (s *settlementService) afterStep(ctx context.Context, accountID string, entry *settlementEntry, state domain.SettlementState) {
	if !state.Phase.IsTerminal() {
		return
	}

	s.mu.Lock()
	if entry.final != nil {
		s.mu.Unlock()
		return
	}
	final := state
	entry.final = &final
	entry.workflow = nil
	s.mu.Unlock()

	s.releaseLock(ctx, accountID, entry.owner)

	event := EventSettlementCompleted
	if state.Phase == domain.PhaseFailed {
		event = EventSettlementFailed
	}
	s.LogInfo(ctx, "Settlement finished",
		slog.String("account_id", accountID),
		slog.String("workflow_id", state.WorkflowID),
		slog.String("phase", string(state.Phase)),
		slog.String("failure_reason", string(state.FailureReason)))

	if s.analytics == nil {
		return
	}
	properties := map[string]any{
		"workflow_id":    state.WorkflowID,
		"account_id":     accountID,
		"account_type":   string(state.AccountType),
		"residual":       state.ResidualBalance.String(),
		"close_attempts": state.CloseAttempts,
	}
	if state.Phase == domain.PhaseFailed {
		properties["failed_phase"] = string(state.FailedPhase)
		properties["failure_reason"] = string(state.FailureReason)
	}
	s.analytics.Enqueue(entry.userID, event, properties)
}

func (s *settlementService) releaseLock(ctx context.Context, accountID string, owner string) {
	releaseCtx, cancel := s.callContext(context.WithoutCancel(ctx))
	defer cancel()
	if err := s.locks.ReleaseSettlementLock(releaseCtx, accountID, owner); err != nil {
		s.LogError(ctx, err, "Failed to release settlement lock", slog.String("account_id", accountID))
	}
}
