package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/utils/accounting"
	"github.com/SscSPs/pleasybank_client/internal/utils/mapping"
	"github.com/google/uuid"
)

// clearingRejectedStatuses are transfer statuses meaning the money did not move even
// though the backend answered successfully.
var clearingRejectedStatuses = map[string]bool{
	"FAILED":    true,
	"REJECTED":  true,
	"CANCELLED": true,
	"CANCELED":  true,
}

// closeVerbs is the fixed close policy: the primary verb, then the alternate one.
var closeVerbs = [domain.MaxCloseAttempts]domain.CloseVerb{domain.ClosePrimary, domain.CloseAlternate}

// WorkflowOption configures a SettlementWorkflow.
type WorkflowOption func(*SettlementWorkflow)

// WithWorkflowClock replaces the clock used to timestamp transitions.
func WithWorkflowClock(now func() time.Time) WorkflowOption {
	return func(w *SettlementWorkflow) {
		w.now = now
	}
}

// WithWorkflowCallTimeout bounds every remote call the workflow makes.
func WithWorkflowCallTimeout(timeout time.Duration) WorkflowOption {
	return func(w *SettlementWorkflow) {
		w.BackendTimeout = timeout
	}
}

// SettlementWorkflow is the clear-then-close state machine for one account. It is used
// for exactly one settlement and discarded once it reaches DONE or FAILED.
//
// Remote calls are made without holding the mutex; a phase is claimed before the call,
// so State stays readable while a transfer or close is outstanding.
type SettlementWorkflow struct {
	BaseService
	transfers portssvc.TransferClient
	accounts  portssvc.AccountClient
	now       func() time.Time

	mu      sync.Mutex
	account domain.Account
	state   domain.SettlementState
}

// NewSettlementWorkflow creates an IDLE workflow.
func NewSettlementWorkflow(transfers portssvc.TransferClient, accounts portssvc.AccountClient, options ...WorkflowOption) *SettlementWorkflow {
	w := &SettlementWorkflow{
		transfers: transfers,
		accounts:  accounts,
		now:       time.Now,
		state: domain.SettlementState{
			WorkflowID:  uuid.NewString(),
			Phase:       domain.PhaseIdle,
			Transitions: []domain.PhaseTransition{},
		},
	}
	for _, option := range options {
		option(w)
	}
	return w
}

// State returns a copy of the current state.
func (w *SettlementWorkflow) State() domain.SettlementState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// Start evaluates a close request. Depending on the residual balance the workflow either
// waits for a counterpart, closes the account straight away, or fails without a single
// remote call.
func (w *SettlementWorkflow) Start(ctx context.Context, req domain.SettlementRequest) (domain.SettlementState, error) {
	w.mu.Lock()
	if err := w.expectPhase(domain.PhaseIdle); err != nil {
		defer w.mu.Unlock()
		return w.snapshot(), err
	}
	if !req.Account.IsActive() {
		defer w.mu.Unlock()
		return w.snapshot(), fmt.Errorf("%w: account %s is already closed", apperrors.ErrValidation, req.Account.ID)
	}

	w.account = req.Account
	w.state.AccountID = req.Account.ID
	w.state.AccountType = req.Account.AccountType
	w.state.Currency = req.Account.Currency
	w.state.ResidualBalance = accounting.ResidualBalance(req.Account)

	logger := w.GetLogger(ctx).With(slog.String("workflow_id", w.state.WorkflowID), slog.String("account_id", w.state.AccountID))

	switch {
	case w.state.ResidualBalance.IsZero():
		w.transition(ctx, domain.PhaseClosing)
		w.mu.Unlock()
		return w.runClose(context.WithoutCancel(ctx))

	case w.state.ResidualBalance.IsNegative():
		// An overdrawn deposit account needs money in, which an outgoing transfer cannot do.
		err := w.fail(ctx, domain.ReasonUnsupportedResidual, apperrors.ErrUnsupportedResidual, nil)
		defer w.mu.Unlock()
		logger.Warn("Settlement rejected, negative residual", slog.String("residual", w.state.ResidualBalance.String()))
		return w.snapshot(), err
	}

	candidates := counterpartCandidates(req.Account, req.Candidates)
	if len(candidates) == 0 {
		err := w.fail(ctx, domain.ReasonNoCounterpartAvailable, apperrors.ErrNoCounterpartAvailable, nil)
		defer w.mu.Unlock()
		logger.Warn("Settlement rejected, no counterpart available", slog.String("residual", w.state.ResidualBalance.String()))
		return w.snapshot(), err
	}

	w.state.Candidates = candidates
	w.transition(ctx, domain.PhaseAwaitingCounterpart)
	defer w.mu.Unlock()
	return w.snapshot(), nil
}

// SelectCounterpart issues the clearing transfer with the chosen counterpart and then
// closes the account. Once the transfer is dispatched the caller's cancellation no longer
// applies: the workflow always runs to DONE or FAILED.
func (w *SettlementWorkflow) SelectCounterpart(ctx context.Context, counterpartAccountID string) (domain.SettlementState, error) {
	w.mu.Lock()
	if err := w.expectPhase(domain.PhaseAwaitingCounterpart); err != nil {
		defer w.mu.Unlock()
		return w.snapshot(), err
	}
	counterpart, ok := findAccount(w.state.Candidates, counterpartAccountID)
	if !ok {
		defer w.mu.Unlock()
		return w.snapshot(), fmt.Errorf("%w: account %s is not an eligible counterpart", apperrors.ErrValidation, counterpartAccountID)
	}
	w.state.CounterpartAccountID = counterpart.ID
	w.transition(ctx, domain.PhaseClearing)
	req := w.clearingRequest(counterpart)
	w.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	logger := w.GetLogger(ctx).With(slog.String("workflow_id", w.state.WorkflowID), slog.String("account_id", req.FromAccountID))
	logger.Info("Dispatching clearing transfer",
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
		slog.String("amount", req.Amount.String()))

	result, err := w.transfer(ctx, req)

	w.mu.Lock()
	if err != nil {
		settleErr := w.fail(ctx, domain.ReasonClearingFailed, apperrors.ErrClearingFailed, err)
		defer w.mu.Unlock()
		return w.snapshot(), settleErr
	}
	clearing := clearingTransaction(result, req)
	w.state.ClearingTransaction = &clearing
	if clearingRejectedStatuses[clearing.Status] {
		settleErr := w.fail(ctx, domain.ReasonClearingFailed, apperrors.ErrClearingFailed,
			fmt.Errorf("transfer %s reported status %s", clearing.ID, clearing.Status))
		defer w.mu.Unlock()
		return w.snapshot(), settleErr
	}
	w.transition(ctx, domain.PhaseClosing)
	w.mu.Unlock()

	return w.runClose(ctx)
}

// Cancel abandons a workflow that is still waiting for its counterpart. Nothing has been
// sent to the backend at that point.
func (w *SettlementWorkflow) Cancel(ctx context.Context) (domain.SettlementState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.state.Phase.IsTerminal():
		return w.snapshot(), apperrors.ErrSettlementTerminal
	case w.state.Phase != domain.PhaseAwaitingCounterpart:
		return w.snapshot(), fmt.Errorf("%w (phase %s)", apperrors.ErrCancelNotAllowed, w.state.Phase)
	}
	_ = w.fail(ctx, domain.ReasonCancelled, apperrors.ErrSettlementCancelled, nil)
	return w.snapshot(), nil
}

// runClose makes at most two close attempts: the primary verb, then the alternate verb
// unless the backend definitively rejected the first one.
func (w *SettlementWorkflow) runClose(ctx context.Context) (domain.SettlementState, error) {
	w.mu.Lock()
	accountID := w.state.AccountID
	logger := w.GetLogger(ctx).With(slog.String("workflow_id", w.state.WorkflowID), slog.String("account_id", accountID))
	w.mu.Unlock()

	var lastErr error
	for _, verb := range closeVerbs {
		w.mu.Lock()
		w.state.CloseAttempts++
		w.mu.Unlock()

		raw, err := w.closeAccount(ctx, accountID, verb)
		if err == nil {
			w.mu.Lock()
			defer w.mu.Unlock()
			closed := w.closedAccount(raw)
			w.state.ClosedAccount = &closed
			w.transition(ctx, domain.PhaseDone)
			return w.snapshot(), nil
		}

		lastErr = err
		logger.Warn("Close attempt failed", slog.String("verb", string(verb)), slog.String("error", err.Error()))
		if apperrors.IsDefinitiveRejection(err) {
			break
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	settleErr := w.fail(ctx, domain.ReasonCloseFailed, apperrors.ErrCloseFailed, lastErr)
	if w.state.ClearingTransaction != nil {
		logger.Error("Account left open after clearing transfer", slog.String("error", lastErr.Error()))
	}
	return w.snapshot(), settleErr
}

func (w *SettlementWorkflow) transfer(ctx context.Context, req domain.TransferRequest) (any, error) {
	callCtx, cancel := w.callContext(ctx)
	defer cancel()
	return w.transfers.Transfer(callCtx, req)
}

func (w *SettlementWorkflow) closeAccount(ctx context.Context, accountID string, verb domain.CloseVerb) (any, error) {
	callCtx, cancel := w.callContext(ctx)
	defer cancel()
	return w.accounts.CloseAccount(callCtx, accountID, verb)
}

// clearingRequest builds the transfer that empties the account. A deposit account pays
// its balance out to the counterpart; a loan is paid off by the counterpart.
func (w *SettlementWorkflow) clearingRequest(counterpart domain.Account) domain.TransferRequest {
	if w.account.AccountType.IsLoan() {
		return domain.TransferRequest{
			FromAccountID: counterpart.ID,
			ToAccountID:   w.account.ID,
			Amount:        w.state.ResidualBalance,
			Description:   domain.LoanClosureDescription,
			Category:      domain.CategoryLoanRepayment,
		}
	}
	return domain.TransferRequest{
		FromAccountID: w.account.ID,
		ToAccountID:   counterpart.ID,
		Amount:        w.state.ResidualBalance,
		Description:   domain.ClosureSettlementDescription,
	}
}

// clearingTransaction reads the transfer result, filling in what the request already
// tells us when the backend answered with something unrecognizable.
func clearingTransaction(result any, req domain.TransferRequest) domain.Transaction {
	if tx, ok := mapping.NormalizeTransactionChecked(result); ok {
		return tx
	}
	rawType := domain.CodeTransfer
	if req.Category == domain.CategoryLoanRepayment {
		rawType = domain.CodeLoanPayment
	}
	return domain.Transaction{
		Amount:                  req.Amount,
		RawAmount:               req.Amount,
		RawType:                 rawType,
		CounterpartyAccountType: domain.UnknownAccountType,
		FromAccountID:           req.FromAccountID,
		ToAccountID:             req.ToAccountID,
		Description:             req.Description,
	}
}

func (w *SettlementWorkflow) closedAccount(raw any) domain.Account {
	closed := mapping.NormalizeAccount(raw)
	if closed.ID == "" {
		closed = w.account
	}
	closed.Status = domain.Closed
	return closed
}

// expectPhase must be called with the mutex held.
func (w *SettlementWorkflow) expectPhase(want domain.SettlementPhase) error {
	switch phase := w.state.Phase; {
	case phase == want:
		return nil
	case phase.IsTerminal():
		return apperrors.ErrSettlementTerminal
	case phase == domain.PhaseClearing || phase == domain.PhaseClosing:
		return fmt.Errorf("%w: workflow is %s", apperrors.ErrSettlementInProgress, phase)
	default:
		return fmt.Errorf("%w: workflow is %s, expected %s", apperrors.ErrConflict, phase, want)
	}
}

// transition must be called with the mutex held.
func (w *SettlementWorkflow) transition(ctx context.Context, to domain.SettlementPhase) {
	from := w.state.Phase
	w.state.Phase = to
	w.state.Transitions = append(w.state.Transitions, domain.PhaseTransition{From: from, To: to, At: w.now().UTC()})
	w.LogInfo(ctx, "Settlement phase changed",
		slog.String("workflow_id", w.state.WorkflowID),
		slog.String("account_id", w.state.AccountID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
}

// fail moves the workflow to FAILED, remembering the phase it failed in. It must be
// called with the mutex held.
func (w *SettlementWorkflow) fail(ctx context.Context, reason domain.FailureReason, kind error, cause error) *domain.SettlementError {
	settleErr := &domain.SettlementError{
		Phase:  w.state.Phase,
		Reason: reason,
		Kind:   kind,
		Err:    cause,
	}
	w.state.FailedPhase = w.state.Phase
	w.state.FailureReason = reason
	if cause != nil {
		w.state.ErrorMessage = cause.Error()
	} else {
		w.state.ErrorMessage = kind.Error()
	}
	w.transition(ctx, domain.PhaseFailed)
	return settleErr
}

// snapshot must be called with the mutex held.
func (w *SettlementWorkflow) snapshot() domain.SettlementState {
	s := w.state
	if w.state.Candidates != nil {
		s.Candidates = make([]domain.Account, len(w.state.Candidates))
		copy(s.Candidates, w.state.Candidates)
	}
	s.Transitions = make([]domain.PhaseTransition, len(w.state.Transitions))
	copy(s.Transitions, w.state.Transitions)
	if w.state.ClearingTransaction != nil {
		tx := *w.state.ClearingTransaction
		s.ClearingTransaction = &tx
	}
	if w.state.ClosedAccount != nil {
		acc := *w.state.ClosedAccount
		s.ClosedAccount = &acc
	}
	return s
}

// counterpartCandidates keeps the accounts that can receive the residual or pay a loan
// off: active, not the closing account, not a loan, and in the same currency.
func counterpartCandidates(closing domain.Account, accounts []domain.Account) []domain.Account {
	candidates := make([]domain.Account, 0, len(accounts))
	for _, acc := range accounts {
		switch {
		case acc.ID == "" || acc.ID == closing.ID:
		case !acc.IsActive():
		case acc.AccountType.IsLoan():
		case acc.Currency != "" && closing.Currency != "" && acc.Currency != closing.Currency:
		default:
			candidates = append(candidates, acc)
		}
	}
	return candidates
}

func findAccount(accounts []domain.Account, accountID string) (domain.Account, bool) {
	for _, acc := range accounts {
		if acc.ID == accountID {
			return acc, true
		}
	}
	return domain.Account{}, false
}
