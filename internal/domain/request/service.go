package request

import (
	"context"
	"time"
)

type RequestService interface {
	// Staff
	Apply(ctx context.Context, form ApplyForm) error
	ListMine(ctx context.Context, staffID int, filter RecordFilter) ([]DateRecord, error)
	Cancel(ctx context.Context, staffID, requestID int, date time.Time) error
	ApprovedEntries(ctx context.Context, staffID int) ([]ApprovedEntry, error)
	Withdraw(ctx context.Context, form WithdrawalForm) error
	RequestWindow() DateWindow

	// Manager
	PendingGroups(ctx context.Context, managerID int) ([]PendingGroup, error)
	GetDetail(ctx context.Context, requestID int) (Detail, error)
	Decide(ctx context.Context, requestID int, form DecisionForm) error
	PendingWithdrawals(ctx context.Context, managerID int) ([]Withdrawal, error)
	GetWithdrawal(ctx context.Context, managerID, staffID, withdrawalID int) (Withdrawal, error)
	DecideWithdrawal(ctx context.Context, w Withdrawal, form DecisionForm) error
}
