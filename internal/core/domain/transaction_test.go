package domain_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccountType_IsLoan(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		want        bool
	}{
		{name: "loan", accountType: domain.Loan, want: true},
		{name: "checking", accountType: domain.Checking, want: false},
		{name: "savings", accountType: domain.Savings, want: false},
		{name: "unknown counterparty", accountType: domain.UnknownAccountType, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.IsLoan())
		})
	}
}

func TestSettlementPhase_IsTerminal(t *testing.T) {
	terminal := map[domain.SettlementPhase]bool{
		domain.PhaseIdle:                false,
		domain.PhaseAwaitingCounterpart: false,
		domain.PhaseClearing:            false,
		domain.PhaseClosing:             false,
		domain.PhaseDone:                true,
		domain.PhaseFailed:              true,
	}
	for phase, want := range terminal {
		assert.Equal(t, want, phase.IsTerminal(), string(phase))
	}
}

func TestSettlementError(t *testing.T) {
	cause := errors.New("insufficient funds in counterpart")
	err := &domain.SettlementError{
		Phase:  domain.PhaseClearing,
		Reason: domain.ReasonClearingFailed,
		Kind:   apperrors.ErrClearingFailed,
		Err:    cause,
	}

	assert.ErrorIs(t, err, apperrors.ErrClearingFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "settlement failed during CLEARING: clearing transfer failed: insufficient funds in counterpart", err.Error())

	precondition := &domain.SettlementError{
		Phase:  domain.PhaseIdle,
		Reason: domain.ReasonNoCounterpartAvailable,
		Kind:   apperrors.ErrNoCounterpartAvailable,
	}
	assert.ErrorIs(t, precondition, apperrors.ErrNoCounterpartAvailable)
	assert.Equal(t, "settlement failed during IDLE: no counterpart account available", precondition.Error())
}
