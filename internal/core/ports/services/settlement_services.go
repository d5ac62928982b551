package services

import (
	"context"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
)

// SettlementReaderSvc reads settlement workflows.
type SettlementReaderSvc interface {
	// GetSettlement returns the current or last finished workflow of an account, provided
	// userID started it.
	GetSettlement(ctx context.Context, userID string, accountID string) (*domain.SettlementState, error)
}

// SettlementWriterSvc drives settlement workflows. Failed workflows are returned together
// with a *domain.SettlementError so callers can show what did and did not happen.
type SettlementWriterSvc interface {
	// BeginSettlement starts the clear-then-close workflow for an account.
	BeginSettlement(ctx context.Context, userID string, accountID string) (*domain.SettlementState, error)

	// SelectCounterpart picks the account that receives the residual balance (or pays the
	// loan off) and runs the workflow to a terminal phase.
	SelectCounterpart(ctx context.Context, userID string, accountID string, counterpartAccountID string) (*domain.SettlementState, error)

	// CancelSettlement abandons a workflow that is still awaiting its counterpart.
	CancelSettlement(ctx context.Context, userID string, accountID string) (*domain.SettlementState, error)
}

// SettlementSvcFacade combines all settlement service interfaces.
type SettlementSvcFacade interface {
	SettlementReaderSvc
	SettlementWriterSvc
}
