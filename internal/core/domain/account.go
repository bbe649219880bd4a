package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountNature indicates which side (debit or credit) increases an account's balance.
type AccountNature string

const (
	DebitNature  AccountNature = "DEBIT"
	CreditNature AccountNature = "CREDIT"
)

// NormalNature returns the conventional nature for an account type:
// asset/expense accounts grow on the debit side, the rest on the credit side.
func NormalNature(t AccountType) AccountNature {
	switch t {
	case Asset, Expense:
		return DebitNature
	default:
		return CreditNature
	}
}

// Account represents one node of the chart of accounts.
type Account struct {
	AccountID        int64           `json:"accountID"`        // Primary Key
	Code             string          `json:"code"`             // Unique user-facing code, e.g. "4111"
	Name             string          `json:"name"`             // Display name
	LocalName        string          `json:"localName"`        // Localized display name (optional)
	AccountType      AccountType     `json:"accountType"`      // ASSET, LIABILITY, etc.
	Nature           AccountNature   `json:"nature"`           // Side that increases the balance
	ParentAccountID  *int64          `json:"parentAccountID"`  // Nullable FK -> accounts.account_id
	OpeningBalance   decimal.Decimal `json:"openingBalance"`   // Balance carried in from before the ledger
	AllowManualEntry bool            `json:"allowManualEntry"` // Whether uncoupled manual postings may target it
	AuditFields
}

// IsContra reports whether the account's nature deviates from its type's
// conventional side (e.g. accumulated depreciation, sales discounts).
func (a Account) IsContra() bool {
	return a.Nature != NormalNature(a.AccountType)
}

// AccountNode is an account with its resolved children, used when the chart
// is assembled into a forest.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}
