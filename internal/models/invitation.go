package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountInvitation is the persistence row for a pending account co-owner offer.
type AccountInvitation struct {
	InvitationID int64     `db:"invitation_id"`
	AccountID    int64     `db:"account_id"`
	InviteeID    uuid.UUID `db:"invitee_id"`
	InviterID    uuid.UUID `db:"inviter_id"`
	CreatedAt    time.Time `db:"created_at"`
}

// BankInvitation is the persistence row for a pending private-bank invitation.
type BankInvitation struct {
	InvitationID int64     `db:"invitation_id"`
	BankID       int64     `db:"bank_id"`
	InviteeID    uuid.UUID `db:"invitee_id"`
	InviterID    uuid.UUID `db:"inviter_id"`
	CreatedAt    time.Time `db:"created_at"`
}
