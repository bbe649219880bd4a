package mapping

import (
	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/finbooks/ledger/internal/models"
)

// ToModelAccount converts a domain.Account to its storage representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:        d.AccountID,
		Code:             d.Code,
		Name:             d.Name,
		LocalName:        d.LocalName,
		AccountType:      models.AccountType(d.AccountType),
		Nature:           models.AccountNature(d.Nature),
		ParentAccountID:  d.ParentAccountID,
		OpeningBalance:   d.OpeningBalance,
		AllowManualEntry: d.AllowManualEntry,
		AuditFields:      toModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a storage account back into the domain type.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		Code:             m.Code,
		Name:             m.Name,
		LocalName:        m.LocalName,
		AccountType:      domain.AccountType(m.AccountType),
		Nature:           domain.AccountNature(m.Nature),
		ParentAccountID:  m.ParentAccountID,
		OpeningBalance:   m.OpeningBalance,
		AllowManualEntry: m.AllowManualEntry,
		AuditFields:      toDomainAuditFields(m.AuditFields),
	}
}
