package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType is the product family of a customer account.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
	Deposit  AccountType = "DEPOSIT"
	Fund     AccountType = "FUND"
	Loan     AccountType = "LOAN"
	Other    AccountType = "OTHER"

	// UnknownAccountType is used for a transaction counterparty whose type the backend did not send.
	UnknownAccountType AccountType = "UNKNOWN"
)

// IsLoan reports whether the account type stores debt rather than spendable money.
func (t AccountType) IsLoan() bool {
	return t == Loan
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	Active AccountStatus = "ACTIVE"
	Closed AccountStatus = "CLOSED"
)

// DefaultCurrency is assumed when the backend omits the currency of an account.
const DefaultCurrency = "KRW"

// Account is the canonical, backend-shape-independent account.
// For LOAN accounts StoredBalance is never positive: it holds the outstanding debt as a
// negative number (0 = fully repaid). For every other type it is the spendable balance.
type Account struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	Name          string          `json:"accountName,omitempty"`
	AccountType   AccountType     `json:"accountType"`
	StoredBalance decimal.Decimal `json:"storedBalance"`
	Status        AccountStatus   `json:"status"`
	Currency      string          `json:"currency"`
}

// IsActive reports whether the account can still take part in transfers.
func (a Account) IsActive() bool {
	return a.Status == Active
}
