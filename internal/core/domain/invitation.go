package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountInvitation is a pending offer to co-own an account. At most one
// pending invitation exists per (account, invitee) pair; it is consumed on
// accept or reject.
type AccountInvitation struct {
	InvitationID int64     `json:"invitationID"`
	AccountID    int64     `json:"accountID"`
	InviteeID    uuid.UUID `json:"inviteeID"`
	InviterID    uuid.UUID `json:"inviterID"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BankInvitation gates account creation in private banks; it is consumed by
// the createAccount operation.
type BankInvitation struct {
	InvitationID int64     `json:"invitationID"`
	BankID       int64     `json:"bankID"`
	InviteeID    uuid.UUID `json:"inviteeID"`
	InviterID    uuid.UUID `json:"inviterID"`
	CreatedAt    time.Time `json:"createdAt"`
}
