package repositories

// RepositoryProvider bundles every repository handed to the service layer.
// Constructed once at startup; there is no global store state.
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	BankRepo       BankRepositoryFacade
	AccountRepo    AccountRepositoryFacade
	InvitationRepo InvitationRepositoryFacade
	MovementRepo   MovementRepositoryFacade
	TxnRepo        TransactionRepositoryFacade
	InvoiceRepo    InvoiceRepositoryFacade
	ScheduleRepo   ScheduleRepositoryFacade
}
