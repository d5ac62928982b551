package mapping

import (
	"strings"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
)

// Field resolution order for transactions. The first key holding a usable value wins;
// canonical keys are listed too so that a serialized canonical record maps back to itself.
var (
	transactionIDKeys     = []string{"id", "transactionId", "transactionID"}
	occurredAtKeys        = []string{"occurredAt", "transactionDatetime", "transactionDate", "createdAt", "timestamp"}
	transactionTypeKeys   = []string{"transactionType", "type", "rawType", "kind"}
	amountKeys            = []string{"rawAmount", "amount", "transactionAmount", "value"}
	fromAccountIDKeys     = []string{"fromAccountId", "fromAccountID", "sourceAccountId", "fromAccount.id"}
	toAccountIDKeys       = []string{"toAccountId", "toAccountID", "targetAccountId", "toAccount.id"}
	fromAccountNumberKeys = []string{"fromAccountNumber", "fromAccount.accountNumber"}
	toAccountNumberKeys   = []string{"toAccountNumber", "toAccount.accountNumber"}
	descriptionKeys       = []string{"description", "memo", "note"}
	counterpartyTypeKeys  = []string{"counterpartyAccountType", "counterpartAccountType"}
	balanceAfterKeys      = []string{"balanceAfter", "balanceAfterTransaction"}
	statusKeys            = []string{"status", "transactionStatus"}
)

var (
	disbursementCodes = map[string]bool{domain.CodeInitialDeposit: true, domain.CodeLoanDisbursement: true}
	repaymentCodes    = map[string]bool{domain.CodeLoanPayment: true, domain.CodeLoanRepayment: true}

	// Free-text markers used by the backend and by tellers. "실행" is "execute" (a loan
	// being paid out), "상환" is "repay".
	disbursementKeywords = []string{"실행", "disburse"}
	repaymentKeywords    = []string{"상환", "repay"}
)

// NormalizeTransaction converts any known raw transaction shape into the canonical
// Transaction. It never fails: unrecognized input yields a record with RawType OTHER and
// every other field at its default. Canonical input is returned unchanged.
func NormalizeTransaction(raw any) domain.Transaction {
	tx, _ := NormalizeTransactionChecked(raw)
	return tx
}

// NormalizeTransactionChecked is NormalizeTransaction that also reports whether the
// input was a recognizable transaction record.
func NormalizeTransactionChecked(raw any) (domain.Transaction, bool) {
	switch v := raw.(type) {
	case domain.Transaction:
		return v, true
	case *domain.Transaction:
		if v != nil {
			return *v, true
		}
		return unrecognizedTransaction(), false
	}

	rec, ok := toRecord(raw)
	if !ok {
		return unrecognizedTransaction(), false
	}
	if _, found := rec.first(append(append(append([]string{}, transactionIDKeys...), transactionTypeKeys...), amountKeys...)...); !found {
		return unrecognizedTransaction(), false
	}

	rawAmount, _ := rec.decimal(amountKeys...)
	occurredAt, _ := rec.time(occurredAtKeys...)

	tx := domain.Transaction{
		ID:                      rec.string(transactionIDKeys...),
		OccurredAt:              occurredAt,
		Amount:                  rawAmount.Abs(),
		RawAmount:               rawAmount,
		RawType:                 normalizeCode(rec.string(transactionTypeKeys...)),
		CounterpartyAccountType: counterpartyType(rec.string(counterpartyTypeKeys...)),
		FromAccountID:           rec.string(fromAccountIDKeys...),
		ToAccountID:             rec.string(toAccountIDKeys...),
		FromAccountNumber:       rec.string(fromAccountNumberKeys...),
		ToAccountNumber:         rec.string(toAccountNumberKeys...),
		Description:             rec.string(descriptionKeys...),
		Status:                  strings.ToUpper(rec.string(statusKeys...)),
	}
	if balanceAfter, ok := rec.decimal(balanceAfterKeys...); ok {
		tx.BalanceAfter = &balanceAfter
	}
	applyHints(&tx)
	return tx, true
}

// NormalizeTransactions normalizes one page of raw records and counts the malformed ones.
// A corrupt record never drops the rest of the page.
func NormalizeTransactions(raws []any) ([]domain.Transaction, int) {
	out := make([]domain.Transaction, len(raws))
	malformed := 0
	for i, raw := range raws {
		tx, ok := NormalizeTransactionChecked(raw)
		if !ok {
			malformed++
		}
		out[i] = tx
	}
	return out, malformed
}

func unrecognizedTransaction() domain.Transaction {
	return domain.Transaction{
		RawType:                 domain.CodeOther,
		CounterpartyAccountType: domain.UnknownAccountType,
	}
}

// normalizeCode upper-cases a backend code and folds separators, so "transfer-in",
// "Transfer In" and "TRANSFER_IN" agree.
func normalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.CodeOther
	}
	return strings.NewReplacer("-", "_", " ", "_").Replace(code)
}

func counterpartyType(raw string) domain.AccountType {
	if raw == "" {
		return domain.UnknownAccountType
	}
	if normalizeCode(raw) == string(domain.UnknownAccountType) {
		return domain.UnknownAccountType
	}
	return parseAccountType(raw)
}

// applyHints tags likely loan movements. Explicit type codes outrank keywords: a keyword
// never raises the hint for the opposite movement of an explicit loan code.
func applyHints(tx *domain.Transaction) {
	positive := tx.Amount.IsPositive()
	desc := strings.ToLower(tx.Description)

	disbursementCode := disbursementCodes[tx.RawType]
	repaymentCode := repaymentCodes[tx.RawType]

	disbursementKeyword := !repaymentCode && containsAny(desc, disbursementKeywords)
	repaymentKeyword := !disbursementCode && containsAny(desc, repaymentKeywords)

	tx.LooksLikeDisbursement = positive && (disbursementCode || disbursementKeyword)
	tx.LooksLikeRepayment = positive && (repaymentCode || repaymentKeyword)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
