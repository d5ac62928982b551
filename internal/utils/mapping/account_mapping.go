package mapping

import (
	"strings"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
)

var (
	accountIDKeys       = []string{"id", "accountId", "accountID"}
	accountNumberKeys   = []string{"accountNumber", "accountNo"}
	accountNameKeys     = []string{"accountName", "name", "productName", "product.name"}
	accountTypeKeys     = []string{"accountType", "type", "productCategory", "product.category"}
	accountBalanceKeys  = []string{"balance", "storedBalance", "currentBalance", "availableBalance"}
	accountStatusKeys   = []string{"status", "accountStatus"}
	accountActiveKeys   = []string{"isActive", "active"}
	accountClosedKeys   = []string{"closed", "isClosed"}
	accountCurrencyKeys = []string{"currency", "currencyCode"}
)

// accountTypeAliases folds the product names seen across backend endpoints onto the
// canonical account types.
var accountTypeAliases = map[string]domain.AccountType{
	"CHECKING":        domain.Checking,
	"DEMAND":          domain.Checking,
	"DEMAND_DEPOSIT":  domain.Checking,
	"입출금":             domain.Checking,
	"SAVINGS":         domain.Savings,
	"SAVING":          domain.Savings,
	"INSTALLMENT":     domain.Savings,
	"적금":              domain.Savings,
	"DEPOSIT":         domain.Deposit,
	"TIME_DEPOSIT":    domain.Deposit,
	"FIXED_DEPOSIT":   domain.Deposit,
	"예금":              domain.Deposit,
	"FUND":            domain.Fund,
	"INVESTMENT":      domain.Fund,
	"펀드":              domain.Fund,
	"LOAN":            domain.Loan,
	"CREDIT_LOAN":     domain.Loan,
	"MORTGAGE":        domain.Loan,
	"대출":              domain.Loan,
	"OTHER":           domain.Other,
	"UNKNOWN":         domain.Other,
	"ETC":             domain.Other,
	"SUBSCRIPTION":    domain.Other,
	"HOUSING_SAVINGS": domain.Savings,
}

var (
	activeStatuses = map[string]bool{"ACTIVE": true, "OPEN": true, "NORMAL": true, "Y": true, "TRUE": true}
	closedStatuses = map[string]bool{"CLOSED": true, "TERMINATED": true, "INACTIVE": true, "CANCELLED": true, "N": true, "FALSE": true}
)

// NormalizeAccount converts any known raw account shape into the canonical Account.
// Like NormalizeTransaction it never fails and returns canonical input unchanged.
// A positive balance reported for a LOAN account is stored as negative debt.
func NormalizeAccount(raw any) domain.Account {
	switch v := raw.(type) {
	case domain.Account:
		return v
	case *domain.Account:
		if v != nil {
			return *v
		}
		return unrecognizedAccount()
	}

	rec, ok := toRecord(raw)
	if !ok {
		return unrecognizedAccount()
	}

	acc := domain.Account{
		ID:            rec.string(accountIDKeys...),
		AccountNumber: rec.string(accountNumberKeys...),
		Name:          rec.string(accountNameKeys...),
		AccountType:   parseAccountType(rec.string(accountTypeKeys...)),
		Status:        resolveStatus(rec),
		Currency:      strings.ToUpper(rec.string(accountCurrencyKeys...)),
	}
	if acc.Currency == "" {
		acc.Currency = domain.DefaultCurrency
	}
	balance, _ := rec.decimal(accountBalanceKeys...)
	if acc.AccountType.IsLoan() {
		balance = balance.Abs().Neg()
	}
	acc.StoredBalance = balance
	return acc
}

// NormalizeAccounts normalizes a list of raw accounts, preserving order.
func NormalizeAccounts(raws []any) []domain.Account {
	accounts := make([]domain.Account, len(raws))
	for i, raw := range raws {
		accounts[i] = NormalizeAccount(raw)
	}
	return accounts
}

func unrecognizedAccount() domain.Account {
	return domain.Account{
		AccountType: domain.Other,
		Status:      domain.Active,
		Currency:    domain.DefaultCurrency,
	}
}

func parseAccountType(raw string) domain.AccountType {
	code := normalizeCode(raw)
	if t, ok := accountTypeAliases[code]; ok {
		return t
	}
	// Product names such as "KB_LOAN_PLUS" or "FREE_SAVINGS".
	for _, t := range []domain.AccountType{domain.Loan, domain.Savings, domain.Checking, domain.Deposit, domain.Fund} {
		if strings.Contains(code, string(t)) {
			return t
		}
	}
	return domain.Other
}

// resolveStatus reads whichever of the status enum, the active flag or the closed flag
// the endpoint sent, in that order.
func resolveStatus(rec rawRecord) domain.AccountStatus {
	if status := strings.ToUpper(rec.string(accountStatusKeys...)); status != "" {
		switch {
		case activeStatuses[status]:
			return domain.Active
		case closedStatuses[status]:
			return domain.Closed
		}
	}
	for _, key := range accountActiveKeys {
		if v, ok := rec.path(key); ok {
			if active, ok := asBool(v); ok {
				if active {
					return domain.Active
				}
				return domain.Closed
			}
		}
	}
	for _, key := range accountClosedKeys {
		if v, ok := rec.path(key); ok {
			if closed, ok := asBool(v); ok {
				if closed {
					return domain.Closed
				}
				return domain.Active
			}
		}
	}
	return domain.Active
}
