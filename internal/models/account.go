package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// AccountNature mirrors domain.AccountNature at the storage layer.
type AccountNature string

// Account represents a chart-of-accounts row.
type Account struct {
	AccountID        int64           `db:"account_id"`
	Code             string          `db:"code"`
	Name             string          `db:"name"`
	LocalName        string          `db:"local_name"` // Empty string when unset
	AccountType      AccountType     `db:"account_type"`
	Nature           AccountNature   `db:"nature"`
	ParentAccountID  *int64          `db:"parent_account_id"` // Nullable
	OpeningBalance   decimal.Decimal `db:"opening_balance"`
	AllowManualEntry bool            `db:"allow_manual_entry"`
	AuditFields
}
