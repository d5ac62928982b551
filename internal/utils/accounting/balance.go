package accounting

import (
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DisplayBalance is the balance shown to the user. Loans show the outstanding debt as a
// positive amount; every other type shows the stored balance as is.
func DisplayBalance(acc domain.Account) decimal.Decimal {
	if acc.AccountType.IsLoan() {
		return acc.StoredBalance.Abs()
	}
	return acc.StoredBalance
}

// PortfolioContribution is what acc adds to a net-worth total. The stored balance is
// returned unchanged: loans are already negative and subtract themselves.
func PortfolioContribution(acc domain.Account) decimal.Decimal {
	return acc.StoredBalance
}

// PortfolioTotal sums the contributions of the active accounts.
func PortfolioTotal(accounts []domain.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		if !acc.IsActive() {
			continue
		}
		total = total.Add(PortfolioContribution(acc))
	}
	return total
}

// ResidualBalance is the amount a settlement has to move before acc can be closed: the
// debt still owed for a loan, the stored balance otherwise.
func ResidualBalance(acc domain.Account) decimal.Decimal {
	if acc.AccountType.IsLoan() {
		return DisplayBalance(acc)
	}
	return acc.StoredBalance
}
