package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType tags a history row with the operation that produced it.
// Amounts are gross (amount plus fee on the debited side); the sign is
// implied by the type.
type TransactionType string

const (
	TxnDeposit            TransactionType = "deposit"
	TxnWithdraw           TransactionType = "withdraw"
	TxnTransferDeposit    TransactionType = "transfer_deposit"
	TxnTransferWithdrawal TransactionType = "transfer_withdrawal"
	TxnInvoiceDeposit     TransactionType = "invoice_deposit"
	TxnInvoiceWithdrawal  TransactionType = "invoice_withdrawal"
	TxnGovernmentFee      TransactionType = "government_fee"

	TxnTransferFee  TransactionType = "transfer_fee"
	TxnBankCreation TransactionType = "bank_creation"
	TxnBankDeletion TransactionType = "bank_deletion"
)

// Transaction is an append-only history row for an account.
type Transaction struct {
	TransactionID int64           `json:"transactionID"`
	AccountID     int64           `json:"accountID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	ActorID       uuid.UUID       `json:"actorID"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BankTransaction is an append-only history row for a bank.
type BankTransaction struct {
	TransactionID int64           `json:"transactionID"`
	BankID        int64           `json:"bankID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	ActorID       uuid.UUID       `json:"actorID"`
	CreatedAt     time.Time       `json:"createdAt"`
}
