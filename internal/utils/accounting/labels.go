package accounting

import (
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	"golang.org/x/text/language"
)

// supportedLanguages are the label languages, in the same order as the columns of
// categoryLabels. The first entry is the fallback.
var supportedLanguages = []language.Tag{
	language.Korean,
	language.English,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

type labelKey struct {
	loan     bool
	category domain.Category
}

// categoryLabels is the only place category names live. Loan rows override the
// non-loan row for the same category; missing loan rows fall back to it.
var categoryLabels = map[labelKey][2]string{
	{false, domain.CategoryDeposit}:          {"입금", "Deposit"},
	{false, domain.CategoryWithdrawal}:       {"출금", "Withdrawal"},
	{false, domain.CategoryTransferIn}:       {"이체 입금", "Transfer in"},
	{false, domain.CategoryTransferOut}:      {"이체 출금", "Transfer out"},
	{false, domain.CategoryLoanDisbursement}: {"대출금 입금", "Loan proceeds"},
	{false, domain.CategoryLoanRepayment}:    {"대출금 상환", "Loan payment"},
	{false, domain.CategoryFee}:              {"수수료", "Fee"},
	{false, domain.CategoryInterest}:         {"이자", "Interest"},
	{false, domain.CategoryOther}:            {"기타", "Other"},

	{true, domain.CategoryLoanDisbursement}: {"대출금 실행", "Loan disbursement"},
	{true, domain.CategoryLoanRepayment}:    {"대출금 상환", "Loan repayment"},
	{true, domain.CategoryInterest}:         {"대출 이자", "Loan interest"},
}

var balanceLabels = map[bool][2]string{
	false: {"현재 잔액", "Current balance"},
	true:  {"대출 잔액", "Amount still owed"},
}

// MatchLanguage picks the supported label language closest to the caller's preferences.
func MatchLanguage(preferred ...language.Tag) language.Tag {
	_, index, _ := languageMatcher.Match(preferred...)
	return supportedLanguages[index]
}

// CategoryLabel returns the localized name of a category.
func CategoryLabel(isLoan bool, category domain.Category, tag language.Tag) string {
	_, column, _ := languageMatcher.Match(tag)
	if row, ok := categoryLabels[labelKey{isLoan, category}]; ok {
		return row[column]
	}
	if row, ok := categoryLabels[labelKey{false, category}]; ok {
		return row[column]
	}
	return categoryLabels[labelKey{false, domain.CategoryOther}][column]
}

// BalanceLabel names the balance shown for acc ("amount still owed" for loans).
func BalanceLabel(acc domain.Account, tag language.Tag) string {
	_, column, _ := languageMatcher.Match(tag)
	return balanceLabels[acc.AccountType.IsLoan()][column]
}
