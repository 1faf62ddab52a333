package pgsql

import (
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, sequenceRepo)
	eventRepo := newPgxEventRepository(dbPool)
	outboxRepo := newPgxOutboxRepository(dbPool)
	fiscalPeriodRepo := newPgxFiscalPeriodRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		JournalRepo:      journalRepo,
		SequenceRepo:     sequenceRepo,
		EventRepo:        eventRepo,
		OutboxRepo:       outboxRepo,
		FiscalPeriodRepo: fiscalPeriodRepo,
	}
}
