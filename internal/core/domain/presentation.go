package domain

import "github.com/shopspring/decimal"

// Direction is how a movement affects the viewed account from its owner's point of view.
type Direction string

const (
	Credit   Direction = "CREDIT"
	Debit    Direction = "DEBIT"
	Internal Direction = "INTERNAL"
)

// Category is the semantic kind of a movement as shown to the user.
type Category string

const (
	CategoryDeposit          Category = "DEPOSIT"
	CategoryWithdrawal       Category = "WITHDRAWAL"
	CategoryTransferIn       Category = "TRANSFER_IN"
	CategoryTransferOut      Category = "TRANSFER_OUT"
	CategoryLoanDisbursement Category = "LOAN_DISBURSEMENT"
	CategoryLoanRepayment    Category = "LOAN_REPAYMENT"
	CategoryFee              Category = "FEE"
	CategoryInterest         Category = "INTEREST"
	CategoryOther            Category = "OTHER"
)

// Categories lists every category, in display order.
var Categories = []Category{
	CategoryDeposit,
	CategoryWithdrawal,
	CategoryTransferIn,
	CategoryTransferOut,
	CategoryLoanDisbursement,
	CategoryLoanRepayment,
	CategoryFee,
	CategoryInterest,
	CategoryOther,
}

// PresentationDecision is derived per (transaction, viewed account) and never cached
// across account contexts.
type PresentationDecision struct {
	Direction     Direction       `json:"direction"`
	Category      Category        `json:"category"`
	DisplayAmount decimal.Decimal `json:"displayAmount"`
	Glyph         string          `json:"glyph"`
	// Ambiguous is set when the rule table fell through to the raw numeric sign.
	Ambiguous bool `json:"-"`
}

// ClassifiedTransaction pairs a canonical transaction with its decision for one viewed account.
type ClassifiedTransaction struct {
	Transaction Transaction          `json:"transaction"`
	Decision    PresentationDecision `json:"decision"`
}

// HistoryPage is one classified page of an account's history.
type HistoryPage struct {
	Account Account                 `json:"account"`
	Entries []ClassifiedTransaction `json:"entries"`
	Page    int                     `json:"page"`
	HasMore bool                    `json:"hasMore"`
	// Malformed counts records that could not be read and were shown with defaults.
	Malformed int `json:"malformed"`
}
