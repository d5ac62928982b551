package dto

import (
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	"github.com/SscSPs/pleasybank_client/internal/utils"
	"golang.org/x/text/language"
)

// SelectCounterpartRequest names the account that receives the residual balance, or pays
// a loan off.
type SelectCounterpartRequest struct {
	CounterpartAccountID string `json:"counterpartAccountID" binding:"required"`
}

// SettlementResponse is the workflow state plus display helpers.
type SettlementResponse struct {
	domain.SettlementState
	FormattedResidual string `json:"formattedResidual"`
}

// ToSettlementResponse converts a domain.SettlementState to SettlementResponse DTO
func ToSettlementResponse(state *domain.SettlementState, tag language.Tag) SettlementResponse {
	return SettlementResponse{
		SettlementState:   *state,
		FormattedResidual: utils.FormatAmount(state.ResidualBalance, state.Currency, tag),
	}
}
