package mapping

import (
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/KANAL1234/business-erp-system-sub002/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: string(d.AccountType),
		IsActive:    d.IsActive,
		Balance:     d.Balance,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		IsActive:    m.IsActive,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
