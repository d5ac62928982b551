package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raw transaction codes sent by the banking backend. RawType keeps whatever the backend
// sent (upper-cased); these are the codes the engine understands.
const (
	CodeDeposit          = "DEPOSIT"
	CodeInitialDeposit   = "INITIAL_DEPOSIT"
	CodeWithdrawal       = "WITHDRAWAL"
	CodeWithdraw         = "WITHDRAW"
	CodePayment          = "PAYMENT"
	CodeTransfer         = "TRANSFER"
	CodeTransferIn       = "TRANSFER_IN"
	CodeTransferOut      = "TRANSFER_OUT"
	CodeFee              = "FEE"
	CodeInterest         = "INTEREST"
	CodeLoanDisbursement = "LOAN_DISBURSEMENT"
	CodeLoanPayment      = "LOAN_PAYMENT"
	CodeLoanRepayment    = "LOAN_REPAYMENT"
	CodeOther            = "OTHER"
)

// Transaction is the canonical transaction record. Direction and sign are never stored:
// the same record yields a different PresentationDecision per viewing account.
type Transaction struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	// Amount is the unsigned magnitude.
	Amount decimal.Decimal `json:"amount"`
	// RawAmount is the amount exactly as the backend signed it; only raw-sign fallbacks read it.
	RawAmount               decimal.Decimal  `json:"rawAmount"`
	RawType                 string           `json:"rawType"`
	CounterpartyAccountType AccountType      `json:"counterpartyAccountType"`
	FromAccountID           string           `json:"fromAccountId,omitempty"`
	ToAccountID             string           `json:"toAccountId,omitempty"`
	FromAccountNumber       string           `json:"fromAccountNumber,omitempty"`
	ToAccountNumber         string           `json:"toAccountNumber,omitempty"`
	Description             string           `json:"description"`
	BalanceAfter            *decimal.Decimal `json:"balanceAfter,omitempty"`
	Status                  string           `json:"status,omitempty"`

	// Advisory hints for the classifier, derived from type codes and description keywords.
	LooksLikeDisbursement bool `json:"looksLikeDisbursement"`
	LooksLikeRepayment    bool `json:"looksLikeRepayment"`
}

// TransactionFilter narrows one page of account history.
type TransactionFilter struct {
	Page      int
	Size      int
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
}

// TransferRequest is what the engine asks the transfer service to move.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
	// Category is optional; set for transfers the classifier must later recognise (loan payoffs).
	Category Category
}
