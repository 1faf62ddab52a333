package services

import (
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/config"
	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, roleCodes map[domain.AccountRole]string, m *metrics.Ledger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Directory = NewAccountDirectory(repos.AccountRepo, roleCodes)
	container.Sequence = NewSequenceService(repos.SequenceRepo)

	// Balances are recomputed after every post, so the aggregator comes before both posting paths.
	container.Balance = NewBalanceService(repos.JournalRepo, repos.AccountRepo, m)
	container.Journal = NewJournalService(repos.JournalRepo, repos.FiscalPeriodRepo, container.Account, container.Balance)
	container.Posting = NewPostingService(
		repos.EventRepo,
		repos.JournalRepo,
		repos.FiscalPeriodRepo,
		container.Directory,
		container.Balance,
		m,
	)
	container.Outbox = NewOutboxWorker(repos.OutboxRepo, container.Posting, cfg.Outbox, m)

	return container
}
