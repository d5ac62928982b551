package domain

import (
	"github.com/shopspring/decimal"
)

// AccountSummary is one row of the portfolio report.
type AccountSummary struct {
	Account        Account         `json:"account"`
	DisplayBalance decimal.Decimal `json:"displayBalance"`
	// Contribution is the signed amount this account adds to the net worth.
	Contribution decimal.Decimal `json:"contribution"`
}

// PortfolioReport summarizes the caller's accounts for the dashboard.
type PortfolioReport struct {
	Accounts    []AccountSummary `json:"accounts"`
	NetWorth    decimal.Decimal  `json:"netWorth"`    // Sum of contributions of active accounts
	TotalAssets decimal.Decimal  `json:"totalAssets"` // Active non-loan balances
	TotalDebt   decimal.Decimal  `json:"totalDebt"`   // Active loan debt, as a positive amount
	Currency    string           `json:"currency"`
}
