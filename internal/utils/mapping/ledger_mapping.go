package mapping

import (
	"github.com/terratale/ledgerd/internal/core/domain"
	"github.com/terratale/ledgerd/internal/models"
)

// ToDomainUser converts a persistence row to the domain representation.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		PlayerID:   m.PlayerID,
		Username:   m.Username,
		Money:      m.Money,
		LastSeenAt: m.LastSeenAt,
		CreatedAt:  m.CreatedAt,
	}
}

// ToModelUser converts a domain user to its persistence row.
func ToModelUser(u domain.User) models.User {
	return models.User{
		PlayerID:   u.PlayerID,
		Username:   u.Username,
		Money:      u.Money,
		LastSeenAt: u.LastSeenAt,
		CreatedAt:  u.CreatedAt,
	}
}

// ToDomainBank converts a persistence row to the domain representation.
func ToDomainBank(m models.Bank) domain.Bank {
	return domain.Bank{
		BankID:             m.BankID,
		Name:               m.Name,
		OwnerID:            m.OwnerID,
		Balance:            m.Balance,
		WithdrawFeePercent: m.WithdrawFeePercent,
		DepositFeePercent:  m.DepositFeePercent,
		TransferFeePercent: m.TransferFeePercent,
		Visibility:         domain.BankVisibility(m.Visibility),
		CreatedAt:          m.CreatedAt,
	}
}

// ToDomainAccount converts a persistence row to the domain representation.
func ToDomainAccount(m models.BankAccount) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		BankID:             m.BankID,
		AccountNumber:      m.AccountNumber,
		Balance:            m.Balance,
		WithdrawFeePercent: m.WithdrawFeePercent,
		DepositFeePercent:  m.DepositFeePercent,
		TransferFeePercent: m.TransferFeePercent,
		CreatedAt:          m.CreatedAt,
	}
}

// ToDomainAccountInvitation converts a persistence row to the domain representation.
func ToDomainAccountInvitation(m models.AccountInvitation) domain.AccountInvitation {
	return domain.AccountInvitation{
		InvitationID: m.InvitationID,
		AccountID:    m.AccountID,
		InviteeID:    m.InviteeID,
		InviterID:    m.InviterID,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainBankInvitation converts a persistence row to the domain representation.
func ToDomainBankInvitation(m models.BankInvitation) domain.BankInvitation {
	return domain.BankInvitation{
		InvitationID: m.InvitationID,
		BankID:       m.BankID,
		InviteeID:    m.InviteeID,
		InviterID:    m.InviterID,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainTransaction converts a persistence row to the domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		ActorID:       m.ActorID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of persistence rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}

// ToDomainBankTransaction converts a persistence row to the domain representation.
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID: m.TransactionID,
		BankID:        m.BankID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		ActorID:       m.ActorID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainBankTransactionSlice converts a slice of persistence rows.
func ToDomainBankTransactionSlice(ms []models.BankTransaction) []domain.BankTransaction {
	out := make([]domain.BankTransaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainBankTransaction(m)
	}
	return out
}

// ToDomainSchedulePayment converts a persistence row to the domain representation.
func ToDomainSchedulePayment(m models.SchedulePayment) domain.SchedulePayment {
	return domain.SchedulePayment{
		ScheduleID:            m.ScheduleID,
		ReceptorAccountNumber: m.ReceptorAccountNumber,
		PayerAccountNumber:    m.PayerAccountNumber,
		Description:           m.Description,
		DayOfMonth:            m.DayOfMonth,
		DueDays:               m.DueDays,
		Amount:                m.Amount,
		Status:                domain.ScheduleStatus(m.Status),
		CreatedAt:             m.CreatedAt,
	}
}

// ToDomainScheduleLog converts a persistence row to the domain representation.
func ToDomainScheduleLog(m models.ScheduleLog) domain.ScheduleLog {
	return domain.ScheduleLog{
		LogID:      m.LogID,
		ScheduleID: m.ScheduleID,
		InvoiceID:  m.InvoiceID,
		Status:     domain.ScheduleLogStatus(m.Status),
		Message:    m.Message,
		ExecutedAt: m.ExecutedAt,
	}
}
