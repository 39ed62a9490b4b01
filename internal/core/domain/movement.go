package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement is the unit of work of every money-moving operation: a set of
// balance deltas plus the history rows and optional invoice transition that
// belong to them. The persistence layer applies a Movement in a single
// database transaction with row locks; a Movement is never half-applied.
type Movement struct {
	WalletDeltas  map[uuid.UUID]decimal.Decimal
	AccountDeltas map[int64]decimal.Decimal
	BankDeltas    map[int64]decimal.Decimal

	Transactions     []Transaction
	BankTransactions []BankTransaction

	Invoice *InvoiceTransition
}

// InvoiceTransition moves an invoice to a terminal status as part of a
// Movement, replacing its event journal with the appended version.
type InvoiceTransition struct {
	InvoiceID int64
	Status    InvoiceStatus
	Events    []InvoiceEvent
}

// NewMovement returns an empty Movement ready to accumulate deltas.
func NewMovement() *Movement {
	return &Movement{
		WalletDeltas:  make(map[uuid.UUID]decimal.Decimal),
		AccountDeltas: make(map[int64]decimal.Decimal),
		BankDeltas:    make(map[int64]decimal.Decimal),
	}
}

// AddWalletDelta accumulates a delta against a player's pocket balance.
func (m *Movement) AddWalletDelta(playerID uuid.UUID, delta decimal.Decimal) {
	m.WalletDeltas[playerID] = m.WalletDeltas[playerID].Add(delta)
}

// AddAccountDelta accumulates a delta against an account balance.
func (m *Movement) AddAccountDelta(accountID int64, delta decimal.Decimal) {
	m.AccountDeltas[accountID] = m.AccountDeltas[accountID].Add(delta)
}

// AddBankDelta accumulates a delta against a bank balance.
func (m *Movement) AddBankDelta(bankID int64, delta decimal.Decimal) {
	m.BankDeltas[bankID] = m.BankDeltas[bankID].Add(delta)
}

// LogTransaction appends an account history row to the movement.
func (m *Movement) LogTransaction(accountID int64, txnType TransactionType, amount decimal.Decimal, actorID uuid.UUID) {
	m.Transactions = append(m.Transactions, Transaction{
		AccountID: accountID,
		Type:      txnType,
		Amount:    amount,
		ActorID:   actorID,
	})
}

// LogBankTransaction appends a bank history row to the movement.
func (m *Movement) LogBankTransaction(bankID int64, txnType TransactionType, amount decimal.Decimal, actorID uuid.UUID) {
	m.BankTransactions = append(m.BankTransactions, BankTransaction{
		BankID:  bankID,
		Type:    txnType,
		Amount:  amount,
		ActorID: actorID,
	})
}

// NewBankDeletionSweep consolidates the residual value of a bank under
// teardown into the government account: every positive account balance plus
// the bank's own fee income. The swept total is logged once on the treasury
// account and once on the treasury's bank. Returns nil when there is
// nothing to sweep.
//
// Balances must be read under row locks in the same transaction that
// applies the sweep and deletes the rows, or a concurrent deposit could be
// destroyed with the account.
func NewBankDeletionSweep(accounts []Account, bank Bank, treasury Account, actorID uuid.UUID) (*Movement, decimal.Decimal) {
	swept := decimal.Zero
	m := NewMovement()
	for _, acc := range accounts {
		if acc.Balance.IsPositive() {
			m.AddAccountDelta(acc.AccountID, acc.Balance.Neg())
			swept = swept.Add(acc.Balance)
		}
	}
	if bank.Balance.IsPositive() {
		m.AddBankDelta(bank.BankID, bank.Balance.Neg())
		swept = swept.Add(bank.Balance)
	}
	if !swept.IsPositive() {
		return nil, decimal.Zero
	}
	m.AddAccountDelta(treasury.AccountID, swept)
	m.LogTransaction(treasury.AccountID, TxnBankDeletion, swept, actorID)
	m.LogBankTransaction(treasury.BankID, TxnBankDeletion, swept, actorID)
	return m, swept
}

// NetDelta sums every balance delta in the movement. For any operation that
// only shuffles value between wallets, accounts, and banks it must be zero;
// external injections (bank creation cost arriving from a wallet) also net
// to zero because the wallet debit is part of the same movement.
func (m *Movement) NetDelta() decimal.Decimal {
	total := decimal.Zero
	for _, d := range m.WalletDeltas {
		total = total.Add(d)
	}
	for _, d := range m.AccountDeltas {
		total = total.Add(d)
	}
	for _, d := range m.BankDeltas {
		total = total.Add(d)
	}
	return total
}
