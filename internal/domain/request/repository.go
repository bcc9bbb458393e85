package request

import (
	"context"
	"time"
)

// Repository submits and reads WFH requests on the backend.
type Repository interface {
	Apply(ctx context.Context, payload ApplyPayload) error
	Cancel(ctx context.Context, staffID, requestID int, date time.Time) error
	ListDates(ctx context.Context, staffID int) ([]DateRecord, error)
	ApprovedEntries(ctx context.Context, staffID int, from, to time.Time) ([]ApprovedEntry, error)
	Withdraw(ctx context.Context, payload WithdrawPayload) error

	TeamPending(ctx context.Context, managerID int) ([]PendingDate, error)
	GetDetail(ctx context.Context, requestID int) (Detail, error)
	Decide(ctx context.Context, payload DecisionPayload, recurring bool) error

	TeamPendingWithdrawals(ctx context.Context, managerID int) ([]Withdrawal, error)
	DecideWithdrawal(ctx context.Context, payload WithdrawalDecisionPayload) error
}
