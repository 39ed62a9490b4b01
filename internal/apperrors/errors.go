package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates the caller is not an owner or otherwise permitted party.
var ErrUnauthorized = errors.New("caller is not authorized for this resource")

// ErrInsufficientFunds indicates a balance cannot cover the requested amount plus fees.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidAmount indicates a monetary amount that is zero, negative, or unparsable.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrDuplicateName indicates a unique name (e.g. bank name) is already taken.
var ErrDuplicateName = errors.New("name already in use")

// ErrDuplicateInvite indicates a pending invitation already exists for the pair.
var ErrDuplicateInvite = errors.New("invitation already pending")

// ErrAlreadyOwner indicates the invitee already owns the account.
var ErrAlreadyOwner = errors.New("user already owns this account")

// ErrAlreadyProcessed indicates an invoice is no longer pending.
var ErrAlreadyProcessed = errors.New("invoice already processed")

// ErrAccountNotEmpty indicates an account still holds a balance and cannot be deleted.
var ErrAccountNotEmpty = errors.New("account balance must be zero")

// ErrOwnerLimitExceeded indicates the player already owns the maximum number of banks.
var ErrOwnerLimitExceeded = errors.New("bank ownership limit exceeded")

// ErrSelfReference indicates a self-transfer or self-invite.
var ErrSelfReference = errors.New("operation cannot reference itself")

// ErrNotInvited indicates a private bank requires a pending invitation.
var ErrNotInvited = errors.New("no invitation for this bank")

// ErrGenerationFailed indicates account number generation exhausted its retries.
var ErrGenerationFailed = errors.New("failed to generate a unique account number")

// ErrStorage indicates an underlying persistence failure.
var ErrStorage = errors.New("storage failure")

// AppError wraps a lower-level error with a status code and message. The
// persistence layer returns these so handlers can map failures without
// inspecting driver errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrStorage
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
