package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SettlementPhase is a state of the clear-then-close workflow.
type SettlementPhase string

const (
	PhaseIdle                SettlementPhase = "IDLE"
	PhaseAwaitingCounterpart SettlementPhase = "AWAITING_COUNTERPART"
	PhaseClearing            SettlementPhase = "CLEARING"
	PhaseClosing             SettlementPhase = "CLOSING"
	PhaseDone                SettlementPhase = "DONE"
	PhaseFailed              SettlementPhase = "FAILED"
)

// IsTerminal reports whether the phase ends the workflow.
func (p SettlementPhase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// FailureReason tells the UI what went wrong in a FAILED workflow.
type FailureReason string

const (
	ReasonNoCounterpartAvailable FailureReason = "NO_COUNTERPART_AVAILABLE"
	ReasonUnsupportedResidual    FailureReason = "UNSUPPORTED_RESIDUAL"
	ReasonClearingFailed         FailureReason = "CLEARING_FAILED"
	ReasonCloseFailed            FailureReason = "CLOSE_FAILED"
	ReasonCancelled              FailureReason = "CANCELLED"
)

// CloseVerb selects which close call the backend receives.
type CloseVerb string

const (
	ClosePrimary   CloseVerb = "PRIMARY"
	CloseAlternate CloseVerb = "ALTERNATE"
)

// MaxCloseAttempts bounds the close step: one primary call, one alternate call.
const MaxCloseAttempts = 2

// Descriptions attached to clearing transfers.
const (
	ClosureSettlementDescription = "account-closure settlement"
	LoanClosureDescription       = "loan-closure repayment"
)

// SettlementRequest starts a settlement. Candidates are the caller's other accounts; the
// workflow filters them down to valid counterparts.
type SettlementRequest struct {
	Account    Account
	Candidates []Account
}

// PhaseTransition records one move of the state machine.
type PhaseTransition struct {
	From SettlementPhase `json:"from"`
	To   SettlementPhase `json:"to"`
	At   time.Time       `json:"at"`
}

// SettlementState is the observable state of one settlement workflow.
type SettlementState struct {
	WorkflowID           string            `json:"workflowId"`
	AccountID            string            `json:"accountId"`
	AccountType          AccountType       `json:"accountType"`
	Currency             string            `json:"currency"`
	ResidualBalance      decimal.Decimal   `json:"residualBalance"`
	Candidates           []Account         `json:"candidates,omitempty"`
	CounterpartAccountID string            `json:"counterpartAccountId,omitempty"`
	Phase                SettlementPhase   `json:"phase"`
	ClearingTransaction  *Transaction      `json:"clearingTransaction,omitempty"`
	ClosedAccount        *Account          `json:"closedAccount,omitempty"`
	CloseAttempts        int               `json:"closeAttempts"`
	FailedPhase          SettlementPhase   `json:"failedPhase,omitempty"`
	FailureReason        FailureReason     `json:"failureReason,omitempty"`
	ErrorMessage         string            `json:"error,omitempty"`
	Transitions          []PhaseTransition `json:"transitions"`
}

// SettlementError carries the phase at which a workflow failed, so the caller can
// explain precisely what did and did not happen.
type SettlementError struct {
	Phase  SettlementPhase
	Reason FailureReason
	// Kind is one of the apperrors settlement sentinels.
	Kind error
	// Err is the underlying cause, surfaced verbatim. Nil for precondition failures.
	Err error
}

func (e *SettlementError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("settlement failed during %s: %v", e.Phase, e.Kind)
	}
	return fmt.Sprintf("settlement failed during %s: %v: %v", e.Phase, e.Kind, e.Err)
}

func (e *SettlementError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
