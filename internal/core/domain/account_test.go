package domain_test

import (
	"testing"

	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalNature(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        domain.AccountNature
	}{
		{domain.Asset, domain.DebitNature},
		{domain.Expense, domain.DebitNature},
		{domain.Liability, domain.CreditNature},
		{domain.Equity, domain.CreditNature},
		{domain.Revenue, domain.CreditNature},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalNature(tt.accountType))
		})
	}
}

func TestAccount_IsContra(t *testing.T) {
	tests := []struct {
		name    string
		account domain.Account
		want    bool
	}{
		{
			name:    "regular asset account",
			account: domain.Account{AccountType: domain.Asset, Nature: domain.DebitNature},
			want:    false,
		},
		{
			name:    "accumulated depreciation (contra asset)",
			account: domain.Account{AccountType: domain.Asset, Nature: domain.CreditNature},
			want:    true,
		},
		{
			name:    "sales discounts (contra revenue)",
			account: domain.Account{AccountType: domain.Revenue, Nature: domain.DebitNature},
			want:    true,
		},
		{
			name:    "regular revenue account",
			account: domain.Account{AccountType: domain.Revenue, Nature: domain.CreditNature},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.IsContra())
		})
	}
}
