package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/utils/accounting"
	"github.com/SscSPs/pleasybank_client/internal/utils/mapping"
	"github.com/sourcegraph/conc/iter"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the page size from which records are classified in parallel.
const DefaultParallelThreshold = 256

type historyService struct {
	BaseService
	accounts          portssvc.AccountClient
	history           portssvc.HistoryClient
	parallelThreshold int
}

// HistoryServiceOption is a functional option for configuring the history service
type HistoryServiceOption func(*historyService)

// WithParallelThreshold sets the page size from which classification runs in parallel.
func WithParallelThreshold(threshold int) HistoryServiceOption {
	return func(s *historyService) {
		s.parallelThreshold = threshold
	}
}

// WithHistoryBackendTimeout bounds every backend call of the service.
func WithHistoryBackendTimeout(timeout time.Duration) HistoryServiceOption {
	return func(s *historyService) {
		s.BackendTimeout = timeout
	}
}

// NewHistoryService creates a new history service with the provided options
func NewHistoryService(accounts portssvc.AccountClient, history portssvc.HistoryClient, options ...HistoryServiceOption) portssvc.HistorySvc {
	svc := &historyService{
		accounts:          accounts,
		history:           history,
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.HistorySvc = (*historyService)(nil)

func (s *historyService) ListClassifiedTransactions(ctx context.Context, accountID string, filter domain.TransactionFilter) (*domain.HistoryPage, error) {
	var rawAccount any
	var raws []any

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		callCtx, cancel := s.callContext(gctx)
		defer cancel()
		raw, err := s.accounts.GetAccount(callCtx, accountID)
		if err != nil {
			return backendError(err, "get account "+accountID)
		}
		rawAccount = raw
		return nil
	})
	g.Go(func() error {
		callCtx, cancel := s.callContext(gctx)
		defer cancel()
		page, err := s.history.ListTransactions(callCtx, accountID, filter)
		if err != nil {
			return backendError(err, "list transactions of account "+accountID)
		}
		raws = page
		return nil
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account history", slog.String("account_id", accountID))
		}
		return nil, err
	}

	viewed := mapping.NormalizeAccount(rawAccount)
	if viewed.ID == "" {
		viewed.ID = accountID
	}

	txs, malformed := mapping.NormalizeTransactions(raws)
	if malformed > 0 {
		s.GetLogger(ctx).Warn("Malformed transaction records shown with defaults",
			slog.String("account_id", accountID),
			slog.Int("malformed", malformed),
			slog.Int("page_size", len(raws)))
	}

	entries := s.classify(txs, viewed)
	for _, entry := range entries {
		if entry.Decision.Ambiguous {
			// AmbiguousDirection: the rule table has no case for this record yet.
			s.LogDebug(ctx, "Classification fell back to raw sign",
				slog.String("account_id", viewed.ID),
				slog.String("transaction_id", entry.Transaction.ID),
				slog.String("raw_type", entry.Transaction.RawType))
		}
	}

	return &domain.HistoryPage{
		Account:   viewed,
		Entries:   entries,
		Page:      filter.Page,
		HasMore:   filter.Size > 0 && len(raws) >= filter.Size,
		Malformed: malformed,
	}, nil
}

// classify runs the classifier over a page. Classification is pure, so large pages are
// split across goroutines.
func (s *historyService) classify(txs []domain.Transaction, viewed domain.Account) []domain.ClassifiedTransaction {
	classifyOne := func(tx *domain.Transaction) domain.ClassifiedTransaction {
		return domain.ClassifiedTransaction{Transaction: *tx, Decision: accounting.Classify(*tx, viewed)}
	}
	if s.parallelThreshold > 0 && len(txs) >= s.parallelThreshold {
		return iter.Map(txs, classifyOne)
	}
	entries := make([]domain.ClassifiedTransaction, len(txs))
	for i := range txs {
		entries[i] = classifyOne(&txs[i])
	}
	return entries
}
