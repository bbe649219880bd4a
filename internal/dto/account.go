package dto

import (
	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest creates a chart-of-accounts node. Code is optional:
// when omitted the registry assigns the next sibling code under ParentCode.
// Nature defaults to the conventional side for Type; overriding it requires
// the Contra flag.
type CreateAccountRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name" binding:"required"`
	LocalName        string          `json:"localName"`
	Type             string          `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Nature           string          `json:"nature" binding:"omitempty,oneof=DEBIT CREDIT"`
	Contra           bool            `json:"contra"`
	ParentCode       string          `json:"parentCode"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	AllowManualEntry *bool           `json:"allowManualEntry"` // defaults to true
}

// UpdateAccountRequest renames or reparents an account. Nil fields are untouched.
type UpdateAccountRequest struct {
	Name       *string `json:"name"`
	LocalName  *string `json:"localName"`
	ParentCode *string `json:"parentCode"` // empty string detaches to top level
}

// AccountResponse is the account representation returned to callers.
type AccountResponse struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	LocalName        string          `json:"localName,omitempty"`
	Type             string          `json:"type"`
	Nature           string          `json:"nature"`
	ParentCode       string          `json:"parentCode,omitempty"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	AllowManualEntry bool            `json:"allowManualEntry"`
}

// AccountNodeResponse is an account with its children, used by the tree view.
type AccountNodeResponse struct {
	AccountResponse
	Children []AccountNodeResponse `json:"children"`
}

// ToAccountResponse converts a domain.Account. The parent code is resolved by
// the caller when needed; passing "" leaves it out.
func ToAccountResponse(a *domain.Account, parentCode string) AccountResponse {
	return AccountResponse{
		Code:             a.Code,
		Name:             a.Name,
		LocalName:        a.LocalName,
		Type:             string(a.AccountType),
		Nature:           string(a.Nature),
		ParentCode:       parentCode,
		OpeningBalance:   a.OpeningBalance,
		AllowManualEntry: a.AllowManualEntry,
	}
}

// ToAccountForest converts resolved account nodes into the response shape.
func ToAccountForest(nodes []*domain.AccountNode) []AccountNodeResponse {
	out := make([]AccountNodeResponse, len(nodes))
	for i, n := range nodes {
		out[i] = AccountNodeResponse{
			AccountResponse: ToAccountResponse(&n.Account, ""),
			Children:        ToAccountForest(n.Children),
		}
	}
	return out
}
