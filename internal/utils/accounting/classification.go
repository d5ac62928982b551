package accounting

import (
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Display glyphs for the direction of a movement.
const (
	GlyphCredit   = "+"
	GlyphDebit    = "-"
	GlyphInternal = "↔"
)

// kind is the closed set of movements the classifier understands, derived from the
// backend code once so that every rule below is a single switch.
type kind int

const (
	kindOther kind = iota
	kindDeposit
	kindInitialDeposit
	kindWithdrawal
	kindTransfer
	kindTransferIn
	kindTransferOut
	kindFee
	kindInterest
	kindLoanDisbursement
	kindLoanPayment
)

var kindsByCode = map[string]kind{
	domain.CodeDeposit:          kindDeposit,
	domain.CodeInitialDeposit:   kindInitialDeposit,
	domain.CodeWithdrawal:       kindWithdrawal,
	domain.CodeWithdraw:         kindWithdrawal,
	domain.CodePayment:          kindWithdrawal,
	domain.CodeTransfer:         kindTransfer,
	domain.CodeTransferIn:       kindTransferIn,
	domain.CodeTransferOut:      kindTransferOut,
	domain.CodeFee:              kindFee,
	domain.CodeInterest:         kindInterest,
	domain.CodeLoanDisbursement: kindLoanDisbursement,
	domain.CodeLoanPayment:      kindLoanPayment,
	domain.CodeLoanRepayment:    kindLoanPayment,
}

func kindOf(rawType string) kind {
	if k, ok := kindsByCode[rawType]; ok {
		return k
	}
	return kindOther
}

// Classify decides how tx is presented from the point of view of the viewed account.
// It reads only tx, viewed.ID and viewed.AccountType, so equal inputs always give equal
// decisions.
func Classify(tx domain.Transaction, viewed domain.Account) domain.PresentationDecision {
	legs := legsOf(tx, viewed.ID)
	if viewed.AccountType.IsLoan() {
		return classifyLoan(tx, legs)
	}
	return classifyDeposit(tx, legs)
}

// legs records which side(s) of the transfer the viewed account is on.
type legs struct {
	source      bool
	destination bool
}

func legsOf(tx domain.Transaction, viewedID string) legs {
	if viewedID == "" {
		return legs{}
	}
	return legs{
		source:      tx.FromAccountID == viewedID,
		destination: tx.ToAccountID == viewedID,
	}
}

// classifyLoan covers accounts that hold debt. Money arriving at a loan lowers the debt,
// so it is shown as a debit from the borrower's point of view.
func classifyLoan(tx domain.Transaction, l legs) domain.PresentationDecision {
	k := kindOf(tx.RawType)
	switch {
	case tx.LooksLikeDisbursement || k == kindInitialDeposit || k == kindLoanDisbursement:
		return credit(domain.CategoryLoanDisbursement, tx.Amount)
	case l.destination || k == kindDeposit || k == kindTransferIn || k == kindLoanPayment || tx.LooksLikeRepayment:
		return debit(domain.CategoryLoanRepayment, tx.Amount)
	default:
		return rawSign(tx, domain.CategoryOther, domain.CategoryOther)
	}
}

func classifyDeposit(tx domain.Transaction, l legs) domain.PresentationDecision {
	switch kindOf(tx.RawType) {
	case kindDeposit, kindInitialDeposit:
		return credit(domain.CategoryDeposit, tx.Amount)
	case kindInterest:
		return credit(domain.CategoryInterest, tx.Amount)
	case kindWithdrawal:
		return debit(domain.CategoryWithdrawal, tx.Amount)
	case kindFee:
		return debit(domain.CategoryFee, tx.Amount)
	case kindTransfer:
		return transferLeg(tx, l, func() domain.PresentationDecision {
			return rawSign(tx, inboundCategory(tx), outboundCategory(tx))
		})
	case kindTransferIn:
		return transferLeg(tx, l, func() domain.PresentationDecision {
			return credit(inboundCategory(tx), tx.Amount)
		})
	case kindTransferOut:
		return transferLeg(tx, l, func() domain.PresentationDecision {
			return debit(outboundCategory(tx), tx.Amount)
		})
	case kindLoanPayment:
		// The paying side of a loan payoff, unless the ids put this account on the receiving end.
		if l.destination && !l.source {
			return credit(domain.CategoryTransferIn, tx.Amount)
		}
		return debit(domain.CategoryLoanRepayment, tx.Amount)
	case kindLoanDisbursement:
		if l.source && !l.destination {
			return debit(domain.CategoryTransferOut, tx.Amount)
		}
		return credit(domain.CategoryLoanDisbursement, tx.Amount)
	default:
		return rawSign(tx, domain.CategoryOther, domain.CategoryOther)
	}
}

// transferLeg decides a transfer by comparing ids. When the viewed account is on neither
// side, unmatched decides.
func transferLeg(tx domain.Transaction, l legs, unmatched func() domain.PresentationDecision) domain.PresentationDecision {
	switch {
	case l.source && l.destination:
		return domain.PresentationDecision{
			Direction:     domain.Internal,
			Category:      domain.CategoryTransferIn,
			DisplayAmount: tx.Amount,
			Glyph:         GlyphInternal,
		}
	case l.source:
		return debit(outboundCategory(tx), tx.Amount)
	case l.destination:
		return credit(inboundCategory(tx), tx.Amount)
	default:
		return unmatched()
	}
}

// inboundCategory refines an incoming transfer that the backend marked as a loan payout.
func inboundCategory(tx domain.Transaction) domain.Category {
	if tx.LooksLikeDisbursement {
		return domain.CategoryLoanDisbursement
	}
	return domain.CategoryTransferIn
}

// outboundCategory refines an outgoing transfer that pays off a loan.
func outboundCategory(tx domain.Transaction) domain.Category {
	if tx.LooksLikeRepayment || tx.CounterpartyAccountType.IsLoan() {
		return domain.CategoryLoanRepayment
	}
	return domain.CategoryTransferOut
}

func credit(category domain.Category, amount decimal.Decimal) domain.PresentationDecision {
	return domain.PresentationDecision{
		Direction:     domain.Credit,
		Category:      category,
		DisplayAmount: amount.Abs(),
		Glyph:         GlyphCredit,
	}
}

func debit(category domain.Category, amount decimal.Decimal) domain.PresentationDecision {
	return domain.PresentationDecision{
		Direction:     domain.Debit,
		Category:      category,
		DisplayAmount: amount.Abs().Neg(),
		Glyph:         GlyphDebit,
	}
}

// rawSign is the fallback when no rule matched: the direction is whatever sign the
// backend put on the amount. A zero amount carries no direction, so it is shown as an
// unsigned credit without a glyph.
func rawSign(tx domain.Transaction, positive, negative domain.Category) domain.PresentationDecision {
	signed := tx.RawAmount
	if signed.IsZero() {
		signed = tx.Amount
	}

	var decision domain.PresentationDecision
	switch signed.Sign() {
	case 1:
		decision = credit(positive, signed)
	case -1:
		decision = debit(negative, signed)
	default:
		decision = domain.PresentationDecision{
			Direction:     domain.Credit,
			Category:      positive,
			DisplayAmount: decimal.Zero,
		}
	}
	decision.Ambiguous = true
	return decision
}
