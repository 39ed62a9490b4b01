package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// LedgerAmountRequest is the payload for withdraw and deposit calls.
type LedgerAmountRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,gtzero"`
}

// TransferRequest moves funds between two accounts.
type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber" binding:"required"`
	ToAccountNumber   string          `json:"toAccountNumber" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required,gtzero"`
}

// MovementResult reports a settled ledger operation: the gross amount,
// the fee charged, and the balances after settlement.
type MovementResult struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	FeePercent    decimal.Decimal `json:"feePercent"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
}

// TransferResult reports a settled transfer between two accounts.
type TransferResult struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
	Fee               decimal.Decimal `json:"fee"`
	FeePercent        decimal.Decimal `json:"feePercent"`
	FromNewBalance    decimal.Decimal `json:"fromNewBalance"`
}

// TransactionResponse mirrors domain.Transaction for history listings.
type TransactionResponse struct {
	TransactionID int64           `json:"transactionID"`
	AccountID     int64           `json:"accountID"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	ActorID       uuid.UUID       `json:"actorID"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BankTransactionResponse mirrors domain.BankTransaction.
type BankTransactionResponse struct {
	TransactionID int64           `json:"transactionID"`
	BankID        int64           `json:"bankID"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	ActorID       uuid.UUID       `json:"actorID"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponses converts a slice of account transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		t := &txns[i]
		out = append(out, TransactionResponse{
			TransactionID: t.TransactionID,
			AccountID:     t.AccountID,
			Type:          string(t.Type),
			Amount:        t.Amount,
			ActorID:       t.ActorID,
			CreatedAt:     t.CreatedAt,
		})
	}
	return out
}

// ToBankTransactionResponses converts a slice of bank transactions.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	out := make([]BankTransactionResponse, 0, len(txns))
	for i := range txns {
		t := &txns[i]
		out = append(out, BankTransactionResponse{
			TransactionID: t.TransactionID,
			BankID:        t.BankID,
			Type:          string(t.Type),
			Amount:        t.Amount,
			ActorID:       t.ActorID,
			CreatedAt:     t.CreatedAt,
		})
	}
	return out
}
