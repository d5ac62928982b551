package accounting_test

import (
	"testing"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	"github.com/SscSPs/pleasybank_client/internal/utils/accounting"
	"github.com/SscSPs/pleasybank_client/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func checking(id string) domain.Account {
	return domain.Account{ID: id, AccountType: domain.Checking, Status: domain.Active}
}

func loan(id string, balance int64) domain.Account {
	return domain.Account{ID: id, AccountType: domain.Loan, Status: domain.Active, StoredBalance: decimal.NewFromInt(balance)}
}

func tx(rawType string, amount int64, from, to string) domain.Transaction {
	return mapping.NormalizeTransaction(map[string]any{
		"id":              "t-1",
		"transactionType": rawType,
		"amount":          amount,
		"fromAccountId":   from,
		"toAccountId":     to,
	})
}

func assertDecision(t *testing.T, want domain.PresentationDecision, got domain.PresentationDecision) {
	t.Helper()
	assert.Equal(t, want.Direction, got.Direction, "direction")
	assert.Equal(t, want.Category, got.Category, "category")
	assert.True(t, want.DisplayAmount.Equal(got.DisplayAmount), "displayAmount: want %s, got %s", want.DisplayAmount, got.DisplayAmount)
	assert.Equal(t, want.Glyph, got.Glyph, "glyph")
	assert.Equal(t, want.Ambiguous, got.Ambiguous, "ambiguous")
}

func decision(direction domain.Direction, category domain.Category, amount int64, glyph string) domain.PresentationDecision {
	return domain.PresentationDecision{
		Direction:     direction,
		Category:      category,
		DisplayAmount: decimal.NewFromInt(amount),
		Glyph:         glyph,
	}
}

func TestClassify_TransferBetweenOwnAccounts(t *testing.T) {
	transfer := mapping.NormalizeTransaction(map[string]any{
		"transactionType": "TRANSFER",
		"amount":          200000,
		"fromAccountId":   1,
		"toAccountId":     2,
	})

	source := accounting.Classify(transfer, checking("1"))
	destination := accounting.Classify(transfer, checking("2"))

	assertDecision(t, decision(domain.Debit, domain.CategoryTransferOut, -200000, "-"), source)
	assertDecision(t, decision(domain.Credit, domain.CategoryTransferIn, 200000, "+"), destination)
	assert.True(t, source.DisplayAmount.Abs().Equal(destination.DisplayAmount.Abs()))
}

func TestClassify_LoanRepaymentLowersDebt(t *testing.T) {
	account := loan("loan-1", -3000000)
	repayment := tx("TRANSFER", 500000, "chk-1", "loan-1")

	assert.True(t, decimal.NewFromInt(3000000).Equal(accounting.DisplayBalance(account)))
	assertDecision(t, decision(domain.Debit, domain.CategoryLoanRepayment, -500000, "-"), accounting.Classify(repayment, account))
}

func TestClassify_LoanAccount(t *testing.T) {
	account := loan("loan-1", -3000000)

	tests := []struct {
		name string
		tx   domain.Transaction
		want domain.PresentationDecision
	}{
		{
			name: "disbursement code",
			tx:   tx("LOAN_DISBURSEMENT", 3000000, "loan-1", "chk-1"),
			want: decision(domain.Credit, domain.CategoryLoanDisbursement, 3000000, "+"),
		},
		{
			name: "initial deposit on a loan is the payout",
			tx:   tx("INITIAL_DEPOSIT", 3000000, "", "loan-1"),
			want: decision(domain.Credit, domain.CategoryLoanDisbursement, 3000000, "+"),
		},
		{
			name: "disbursement keyword",
			tx: mapping.NormalizeTransaction(map[string]any{
				"type": "TRANSFER", "amount": 1000000, "fromAccountId": "loan-1", "toAccountId": "chk-1", "description": "대출금 실행",
			}),
			want: decision(domain.Credit, domain.CategoryLoanDisbursement, 1000000, "+"),
		},
		{
			name: "loan payment code",
			tx:   tx("LOAN_PAYMENT", 500000, "chk-1", "other"),
			want: decision(domain.Debit, domain.CategoryLoanRepayment, -500000, "-"),
		},
		{
			name: "deposit code",
			tx:   tx("DEPOSIT", 10000, "", ""),
			want: decision(domain.Debit, domain.CategoryLoanRepayment, -10000, "-"),
		},
		{
			name: "repayment keyword",
			tx: mapping.NormalizeTransaction(map[string]any{
				"type": "AUTO_DEBIT", "amount": 70000, "description": "3월 대출 상환",
			}),
			want: decision(domain.Debit, domain.CategoryLoanRepayment, -70000, "-"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecision(t, tt.want, accounting.Classify(tt.tx, account))
		})
	}
}

func TestClassify_LoanFallsBackToRawSign(t *testing.T) {
	account := loan("loan-1", -100)

	interest := mapping.NormalizeTransaction(map[string]any{"type": "INTEREST_ACCRUAL", "amount": -1200})
	got := accounting.Classify(interest, account)
	assert.Equal(t, domain.Debit, got.Direction)
	assert.Equal(t, domain.CategoryOther, got.Category)
	assert.True(t, decimal.NewFromInt(-1200).Equal(got.DisplayAmount))
	assert.True(t, got.Ambiguous)
}

func TestClassify_DepositAccount(t *testing.T) {
	account := checking("chk-1")

	tests := []struct {
		name string
		tx   domain.Transaction
		want domain.PresentationDecision
	}{
		{name: "deposit", tx: tx("DEPOSIT", 1000, "", "chk-1"), want: decision(domain.Credit, domain.CategoryDeposit, 1000, "+")},
		{name: "initial deposit", tx: tx("INITIAL_DEPOSIT", 1000, "", "chk-1"), want: decision(domain.Credit, domain.CategoryDeposit, 1000, "+")},
		{name: "interest", tx: tx("INTEREST", 15, "", ""), want: decision(domain.Credit, domain.CategoryInterest, 15, "+")},
		{name: "withdrawal", tx: tx("WITHDRAWAL", 500, "chk-1", ""), want: decision(domain.Debit, domain.CategoryWithdrawal, -500, "-")},
		{name: "withdraw alias", tx: tx("withdraw", 500, "", ""), want: decision(domain.Debit, domain.CategoryWithdrawal, -500, "-")},
		{name: "payment alias", tx: tx("PAYMENT", 9900, "", ""), want: decision(domain.Debit, domain.CategoryWithdrawal, -9900, "-")},
		{name: "fee", tx: tx("FEE", 500, "", ""), want: decision(domain.Debit, domain.CategoryFee, -500, "-")},
		{name: "transfer in code without ids", tx: tx("TRANSFER_IN", 700, "", ""), want: decision(domain.Credit, domain.CategoryTransferIn, 700, "+")},
		{name: "transfer out code without ids", tx: tx("TRANSFER_OUT", 700, "", ""), want: decision(domain.Debit, domain.CategoryTransferOut, -700, "-")},
		{name: "ids outrank transfer code", tx: tx("TRANSFER_IN", 700, "chk-1", "sav-1"), want: decision(domain.Debit, domain.CategoryTransferOut, -700, "-")},
		{name: "loan payoff from this account", tx: tx("LOAN_PAYMENT", 500000, "chk-1", "loan-1"), want: decision(domain.Debit, domain.CategoryLoanRepayment, -500000, "-")},
		{name: "loan payout into this account", tx: tx("LOAN_DISBURSEMENT", 3000000, "loan-1", "chk-1"), want: decision(domain.Credit, domain.CategoryLoanDisbursement, 3000000, "+")},
		{
			name: "transfer to a loan counterparty",
			tx: mapping.NormalizeTransaction(map[string]any{
				"type": "TRANSFER", "amount": 500000, "fromAccountId": "chk-1", "toAccountId": "loan-1", "counterpartyAccountType": "LOAN",
			}),
			want: decision(domain.Debit, domain.CategoryLoanRepayment, -500000, "-"),
		},
		{name: "self transfer", tx: tx("TRANSFER", 300, "chk-1", "chk-1"), want: decision(domain.Internal, domain.CategoryTransferIn, 300, "↔")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecision(t, tt.want, accounting.Classify(tt.tx, account))
		})
	}
}

func TestClassify_RawSignFallback(t *testing.T) {
	account := checking("chk-1")

	tests := []struct {
		name string
		raw  map[string]any
		want domain.PresentationDecision
	}{
		{
			name: "unknown code, negative",
			raw:  map[string]any{"type": "CARD_SETTLEMENT", "amount": -4500},
			want: domain.PresentationDecision{Direction: domain.Debit, Category: domain.CategoryOther, DisplayAmount: decimal.NewFromInt(-4500), Glyph: "-", Ambiguous: true},
		},
		{
			name: "unknown code, positive",
			raw:  map[string]any{"type": "CASHBACK", "amount": 120},
			want: domain.PresentationDecision{Direction: domain.Credit, Category: domain.CategoryOther, DisplayAmount: decimal.NewFromInt(120), Glyph: "+", Ambiguous: true},
		},
		{
			name: "transfer between third parties",
			raw:  map[string]any{"type": "TRANSFER", "amount": -100, "fromAccountId": "x", "toAccountId": "y"},
			want: domain.PresentationDecision{Direction: domain.Debit, Category: domain.CategoryTransferOut, DisplayAmount: decimal.NewFromInt(-100), Glyph: "-", Ambiguous: true},
		},
		{
			name: "zero amount has no direction",
			raw:  map[string]any{"type": "ADJUSTMENT", "amount": 0},
			want: domain.PresentationDecision{Direction: domain.Credit, Category: domain.CategoryOther, DisplayAmount: decimal.Zero, Glyph: "", Ambiguous: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecision(t, tt.want, accounting.Classify(mapping.NormalizeTransaction(tt.raw), account))
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	transfer := tx("TRANSFER", 200000, "1", "2")
	viewed := checking("1")

	first := accounting.Classify(transfer, viewed)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, accounting.Classify(transfer, viewed))
	}

	// Only id and type of the viewed account matter.
	renamed := viewed
	renamed.Name = "another name"
	renamed.StoredBalance = decimal.NewFromInt(999)
	renamed.Status = domain.Closed
	assert.Equal(t, first, accounting.Classify(transfer, renamed))
}
