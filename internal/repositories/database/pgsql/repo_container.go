package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository into a provider.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		BankRepo:       newPgxBankRepository(dbPool),
		AccountRepo:    newPgxAccountRepository(dbPool),
		InvitationRepo: newPgxInvitationRepository(dbPool),
		MovementRepo:   newPgxMovementRepository(dbPool),
		TxnRepo:        newPgxTransactionRepository(dbPool),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		ScheduleRepo:   newPgxScheduleRepository(dbPool),
	}
}
