package accounting

import (
	"fmt"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount converts a posting line into the delta it applies to its
// account's balance, given the account's nature.
// A debit grows a debit-nature account and shrinks a credit-nature one,
// and symmetrically for credits.
func SignedAmount(p domain.JournalPosting, nature domain.AccountNature) decimal.Decimal {
	net := p.Debit.Sub(p.Credit)
	if nature == domain.CreditNature {
		return net.Neg()
	}
	return net
}

// ValidateLines checks the shape of a set of posting lines: at least two
// lines, and each line a pure debit or a pure credit with a positive amount.
func ValidateLines(postings []domain.JournalPosting) error {
	if len(postings) < 2 {
		return apperrors.ErrEmptyEntry
	}
	for i, p := range postings {
		debitSet := p.Debit.IsPositive()
		creditSet := p.Credit.IsPositive()
		if p.Debit.IsNegative() || p.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if debitSet == creditSet { // both set or both zero
			return fmt.Errorf("%w: line %d must carry exactly one of debit or credit", apperrors.ErrEmptyEntry, i+1)
		}
	}
	return nil
}

// ValidateBalance checks the zero-sum invariant over a set of posting lines.
// Monetary equality is exact: no epsilon, ever.
func ValidateBalance(postings []domain.JournalPosting) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, p := range postings {
		debits = debits.Add(p.Debit)
		credits = credits.Add(p.Credit)
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s, credits to %s",
			apperrors.ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// MirrorPostings returns the debit/credit-swapped copy of the given lines,
// used to build a reversal entry.
func MirrorPostings(postings []domain.JournalPosting) []domain.JournalPosting {
	mirrored := make([]domain.JournalPosting, len(postings))
	for i, p := range postings {
		mirrored[i] = domain.JournalPosting{
			AccountID:   p.AccountID,
			AccountCode: p.AccountCode,
			Debit:       p.Credit,
			Credit:      p.Debit,
		}
	}
	return mirrored
}
