package dto

import (
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	"github.com/SscSPs/pleasybank_client/internal/utils"
	"github.com/SscSPs/pleasybank_client/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// AccountResponse defines the data returned for an account.
// Balance is what the user should see: loans show the amount still owed as a positive number.
type AccountResponse struct {
	AccountID        string               `json:"accountID"`
	AccountNumber    string               `json:"accountNumber,omitempty"`
	Name             string               `json:"name,omitempty"`
	AccountType      domain.AccountType   `json:"accountType"`
	Status           domain.AccountStatus `json:"status"`
	Currency         string               `json:"currency"`
	Balance          decimal.Decimal      `json:"balance"`
	BalanceLabel     string               `json:"balanceLabel"`
	FormattedBalance string               `json:"formattedBalance"`
	Contribution     decimal.Decimal      `json:"contribution"` // Signed share of the net worth
}

// PortfolioResponse defines the data returned for the dashboard.
type PortfolioResponse struct {
	Accounts          []AccountResponse `json:"accounts"`
	NetWorth          decimal.Decimal   `json:"netWorth"`
	FormattedNetWorth string            `json:"formattedNetWorth"`
	TotalAssets       decimal.Decimal   `json:"totalAssets"`
	TotalDebt         decimal.Decimal   `json:"totalDebt"`
	Currency          string            `json:"currency"`
}

// ToAccountResponse converts a domain.AccountSummary to AccountResponse DTO
func ToAccountResponse(summary domain.AccountSummary, tag language.Tag) AccountResponse {
	acc := summary.Account
	return AccountResponse{
		AccountID:        acc.ID,
		AccountNumber:    acc.AccountNumber,
		Name:             acc.Name,
		AccountType:      acc.AccountType,
		Status:           acc.Status,
		Currency:         acc.Currency,
		Balance:          summary.DisplayBalance,
		BalanceLabel:     accounting.BalanceLabel(acc, tag),
		FormattedBalance: utils.FormatAmount(summary.DisplayBalance, acc.Currency, tag),
		Contribution:     summary.Contribution,
	}
}

// ToPortfolioResponse converts a domain.PortfolioReport to PortfolioResponse DTO
func ToPortfolioResponse(report *domain.PortfolioReport, tag language.Tag) PortfolioResponse {
	accounts := make([]AccountResponse, len(report.Accounts))
	for i, summary := range report.Accounts {
		accounts[i] = ToAccountResponse(summary, tag)
	}
	return PortfolioResponse{
		Accounts:          accounts,
		NetWorth:          report.NetWorth,
		FormattedNetWorth: utils.FormatAmount(report.NetWorth, report.Currency, tag),
		TotalAssets:       report.TotalAssets,
		TotalDebt:         report.TotalDebt,
		Currency:          report.Currency,
	}
}
