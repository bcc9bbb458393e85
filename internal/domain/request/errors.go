package request

import "errors"

var (
	ErrRequestNotFound    = errors.New("request not found")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrEntryNotFound      = errors.New("selected date is not an approved entry")
	ErrCancelNotAllowed   = errors.New("only pending requests can be cancelled")
	ErrAlreadyDecided     = errors.New("request already processed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidSelection   = errors.New("invalid selection")
)
