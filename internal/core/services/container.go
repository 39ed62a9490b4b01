package services

import (
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/pkg/config"
)

// NewServiceProvider wires every service with its repositories and the
// economy parameters from configuration.
func NewServiceProvider(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceProvider {
	provider := &portssvc.ServiceProvider{}

	provider.UserSvc = NewUserService(repos.UserRepo, repos.MovementRepo, cfg.InitialMoney)
	provider.BankSvc = NewBankService(repos.BankRepo, repos.AccountRepo, repos.UserRepo, repos.InvitationRepo, BankServiceConfig{
		CreationCost:            cfg.BankCreationCost,
		GovernmentAccountNumber: cfg.GovernmentAccountNumber,
		MaxBanksPerOwner:        cfg.MaxBanksPerOwner,
	})
	provider.AccountSvc = NewAccountService(repos.AccountRepo, repos.BankRepo, repos.UserRepo, repos.InvitationRepo)
	provider.LedgerSvc = NewLedgerService(repos.AccountRepo, repos.BankRepo, repos.UserRepo, repos.MovementRepo, repos.TxnRepo)
	provider.InvoiceSvc = NewInvoiceService(repos.InvoiceRepo, repos.AccountRepo, repos.BankRepo, repos.UserRepo, repos.MovementRepo, InvoiceServiceConfig{
		TaxPercent:              cfg.TaxPercent,
		GovernmentAccountNumber: cfg.GovernmentAccountNumber,
	})
	provider.ScheduleSvc = NewScheduleService(repos.ScheduleRepo, repos.InvoiceRepo, repos.AccountRepo)

	return provider
}
