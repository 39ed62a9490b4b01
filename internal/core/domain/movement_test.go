package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/terratale/ledgerd/internal/core/domain"
)

func TestMovement_DeltasAccumulate(t *testing.T) {
	playerID := uuid.New()
	m := domain.NewMovement()

	m.AddWalletDelta(playerID, decimal.NewFromInt(10))
	m.AddWalletDelta(playerID, decimal.NewFromInt(-4))
	m.AddAccountDelta(1, decimal.NewFromInt(100))
	m.AddAccountDelta(1, decimal.NewFromInt(50))

	assert.True(t, m.WalletDeltas[playerID].Equal(decimal.NewFromInt(6)))
	assert.True(t, m.AccountDeltas[1].Equal(decimal.NewFromInt(150)))
}

func TestMovement_NetDeltaZeroForInternalShuffle(t *testing.T) {
	playerID := uuid.New()
	m := domain.NewMovement()

	// A deposit: wallet pays amount plus fee, account gets the amount,
	// the bank keeps the fee.
	m.AddWalletDelta(playerID, decimal.NewFromInt(-110))
	m.AddAccountDelta(1, decimal.NewFromInt(100))
	m.AddBankDelta(2, decimal.NewFromInt(10))

	assert.True(t, m.NetDelta().IsZero())
}

func TestMovement_NetDeltaExposesImbalance(t *testing.T) {
	m := domain.NewMovement()
	m.AddAccountDelta(1, decimal.NewFromInt(100))
	m.AddAccountDelta(2, decimal.NewFromInt(-90))

	assert.True(t, m.NetDelta().Equal(decimal.NewFromInt(10)))
}

func TestBankDeletionSweep_ConsolidatesIntoTreasury(t *testing.T) {
	actorID := uuid.New()
	accounts := []domain.Account{
		{AccountID: 10, Balance: decimal.NewFromInt(40)},
		{AccountID: 11, Balance: decimal.NewFromInt(60)},
		{AccountID: 12, Balance: decimal.Zero},
	}
	bank := domain.Bank{BankID: 3, Balance: decimal.NewFromInt(25)}
	treasury := domain.Account{AccountID: 99, BankID: 1}

	m, swept := domain.NewBankDeletionSweep(accounts, bank, treasury, actorID)

	assert.True(t, swept.Equal(decimal.NewFromInt(125)))
	assert.True(t, m.AccountDeltas[10].Equal(decimal.NewFromInt(-40)))
	assert.True(t, m.AccountDeltas[11].Equal(decimal.NewFromInt(-60)))
	assert.True(t, m.AccountDeltas[99].Equal(decimal.NewFromInt(125)))
	assert.True(t, m.BankDeltas[3].Equal(decimal.NewFromInt(-25)))
	assert.NotContains(t, m.AccountDeltas, int64(12))
	assert.True(t, m.NetDelta().IsZero())

	assert.Len(t, m.Transactions, 1)
	assert.Equal(t, int64(99), m.Transactions[0].AccountID)
	assert.Equal(t, domain.TxnBankDeletion, m.Transactions[0].Type)
	assert.True(t, m.Transactions[0].Amount.Equal(decimal.NewFromInt(125)))

	assert.Len(t, m.BankTransactions, 1)
	assert.Equal(t, int64(1), m.BankTransactions[0].BankID)
	assert.Equal(t, domain.TxnBankDeletion, m.BankTransactions[0].Type)
	assert.True(t, m.BankTransactions[0].Amount.Equal(decimal.NewFromInt(125)))
	assert.Equal(t, actorID, m.BankTransactions[0].ActorID)
}

func TestBankDeletionSweep_NothingToSweep(t *testing.T) {
	accounts := []domain.Account{{AccountID: 10, Balance: decimal.Zero}}
	bank := domain.Bank{BankID: 3, Balance: decimal.Zero}

	m, swept := domain.NewBankDeletionSweep(accounts, bank, domain.Account{AccountID: 99}, uuid.New())

	assert.Nil(t, m)
	assert.True(t, swept.IsZero())
}

func TestMovement_LogTransactionKeepsOrder(t *testing.T) {
	actorID := uuid.New()
	m := domain.NewMovement()

	m.LogTransaction(1, domain.TxnTransferWithdrawal, decimal.NewFromInt(204), actorID)
	m.LogTransaction(2, domain.TxnTransferDeposit, decimal.NewFromInt(200), actorID)

	assert.Len(t, m.Transactions, 2)
	assert.Equal(t, domain.TxnTransferWithdrawal, m.Transactions[0].Type)
	assert.Equal(t, domain.TxnTransferDeposit, m.Transactions[1].Type)
	assert.Equal(t, actorID, m.Transactions[0].ActorID)
}
