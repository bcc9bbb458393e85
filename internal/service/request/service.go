package request

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/request"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/apperror"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
	"golang.org/x/sync/singleflight"
)

type RequestServiceImpl struct {
	request.Repository
	requestWindow    request.DateWindow
	withdrawalWindow request.DateWindow
	now              func() time.Time

	// writes coalesces identical submissions that are in flight together,
	// so a double-clicked form reaches the API once.
	writes singleflight.Group
}

func NewRequestService(repo request.Repository, requestWindow, withdrawalWindow request.DateWindow, now func() time.Time) request.RequestService {
	if now == nil {
		now = time.Now
	}
	return &RequestServiceImpl{
		Repository:       repo,
		requestWindow:    requestWindow,
		withdrawalWindow: withdrawalWindow,
		now:              now,
	}
}

// RequestWindow implements request.RequestService.
func (s *RequestServiceImpl) RequestWindow() request.DateWindow {
	return s.requestWindow
}

// Apply implements request.RequestService.
func (s *RequestServiceImpl) Apply(ctx context.Context, form request.ApplyForm) error {
	today := s.now()
	if err := form.Validate(s.requestWindow, today); err != nil {
		return err
	}

	payload := form.Payload(today)
	return s.once(writeKey("apply", payload), func() error {
		if err := s.Repository.Apply(ctx, payload); err != nil {
			return fmt.Errorf("failed to submit wfh request: %w", err)
		}
		return nil
	})
}

// ListMine implements request.RequestService.
func (s *RequestServiceImpl) ListMine(ctx context.Context, staffID int, filter request.RecordFilter) ([]request.DateRecord, error) {
	records, err := s.Repository.ListDates(ctx, staffID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return []request.DateRecord{}, nil
		}
		return nil, fmt.Errorf("failed to list wfh dates: %w", err)
	}

	out := make([]request.DateRecord, 0, len(records))
	for _, r := range records {
		if filter.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Cancel implements request.RequestService. Only a date still pending can
// be cancelled by its owner.
func (s *RequestServiceImpl) Cancel(ctx context.Context, staffID, requestID int, date time.Time) error {
	key := fmt.Sprintf("cancel:%d:%d:%s", staffID, requestID, date.Format(validator.DateLayout))
	return s.once(key, func() error {
		return s.cancel(ctx, staffID, requestID, date)
	})
}

func (s *RequestServiceImpl) cancel(ctx context.Context, staffID, requestID int, date time.Time) error {
	records, err := s.Repository.ListDates(ctx, staffID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return request.ErrRequestNotFound
		}
		return fmt.Errorf("failed to list wfh dates: %w", err)
	}

	day := validator.Day(date)
	found := false
	for _, r := range records {
		if r.RequestID != requestID || !r.Date.Equal(day) {
			continue
		}
		found = true
		if !request.RequestLifecycle.CanFire(r.Status, request.TriggerCancel) {
			return request.ErrCancelNotAllowed
		}
	}
	if !found {
		return request.ErrRequestNotFound
	}

	if err := s.Repository.Cancel(ctx, staffID, requestID, day); err != nil {
		return fmt.Errorf("failed to cancel wfh request: %w", err)
	}
	return nil
}

// ApprovedEntries implements request.RequestService.
func (s *RequestServiceImpl) ApprovedEntries(ctx context.Context, staffID int) ([]request.ApprovedEntry, error) {
	from, to := s.withdrawalWindow.Bounds(s.now())
	entries, err := s.Repository.ApprovedEntries(ctx, staffID, from, to)
	if err != nil {
		if apperror.IsNotFound(err) {
			return []request.ApprovedEntry{}, nil
		}
		return nil, fmt.Errorf("failed to load approved entries: %w", err)
	}
	return entries, nil
}

// Withdraw implements request.RequestService.
func (s *RequestServiceImpl) Withdraw(ctx context.Context, form request.WithdrawalForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return s.once(writeKey("withdraw", form), func() error {
		return s.withdraw(ctx, form)
	})
}

func (s *RequestServiceImpl) withdraw(ctx context.Context, form request.WithdrawalForm) error {
	requestID, date, _ := request.ParseSelection(form.Selection)

	entries, err := s.ApprovedEntries(ctx, form.StaffID)
	if err != nil {
		return err
	}

	var entry *request.ApprovedEntry
	for i := range entries {
		if entries[i].RequestID == requestID && entries[i].Date.Equal(date) {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		return request.ErrEntryNotFound
	}
	if !request.RequestLifecycle.CanFire(entry.Status, request.TriggerWithdraw) {
		return request.ErrEntryNotFound
	}

	payload := request.WithdrawPayload{
		RequestID:    requestID,
		Reason:       form.Reason,
		SpecificDate: date.Format(validator.DateLayout),
	}
	if err := s.Repository.Withdraw(ctx, payload); err != nil {
		return fmt.Errorf("failed to submit withdrawal: %w", err)
	}
	return nil
}

// PendingGroups implements request.RequestService.
func (s *RequestServiceImpl) PendingGroups(ctx context.Context, managerID int) ([]request.PendingGroup, error) {
	dates, err := s.Repository.TeamPending(ctx, managerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return []request.PendingGroup{}, nil
		}
		return nil, fmt.Errorf("failed to load pending requests: %w", err)
	}
	return request.GroupPending(dates), nil
}

// GetDetail implements request.RequestService.
func (s *RequestServiceImpl) GetDetail(ctx context.Context, requestID int) (request.Detail, error) {
	detail, err := s.Repository.GetDetail(ctx, requestID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return request.Detail{}, request.ErrRequestNotFound
		}
		return request.Detail{}, fmt.Errorf("failed to get wfh request: %w", err)
	}
	if detail.Request.Status == "" {
		detail.Request.Status = request.StatusPending
	}
	return detail, nil
}

// Decide implements request.RequestService. A recurring request is decided
// as a whole series.
func (s *RequestServiceImpl) Decide(ctx context.Context, requestID int, form request.DecisionForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	key := writeKey(fmt.Sprintf("decide:%d", requestID), form)
	return s.once(key, func() error {
		return s.decide(ctx, requestID, form)
	})
}

func (s *RequestServiceImpl) decide(ctx context.Context, requestID int, form request.DecisionForm) error {
	detail, err := s.GetDetail(ctx, requestID)
	if err != nil {
		return err
	}

	trigger, _ := request.DecisionTrigger(form.Status)
	if !request.RequestLifecycle.CanFire(detail.Request.Status, trigger) {
		return request.ErrAlreadyDecided
	}

	payload := request.DecisionPayload{
		RequestID:      requestID,
		DecisionStatus: form.Status,
		DecisionNotes:  form.Notes,
		ManagerID:      form.ManagerID,
	}
	if err := s.Repository.Decide(ctx, payload, detail.IsRecurring); err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	return nil
}

// PendingWithdrawals implements request.RequestService.
func (s *RequestServiceImpl) PendingWithdrawals(ctx context.Context, managerID int) ([]request.Withdrawal, error) {
	items, err := s.Repository.TeamPendingWithdrawals(ctx, managerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return []request.Withdrawal{}, nil
		}
		return nil, fmt.Errorf("failed to load pending withdrawals: %w", err)
	}

	out := make([]request.Withdrawal, 0, len(items))
	for _, w := range items {
		if w.Status == request.StatusPending {
			out = append(out, w)
		}
	}
	return out, nil
}

// GetWithdrawal implements request.RequestService.
func (s *RequestServiceImpl) GetWithdrawal(ctx context.Context, managerID, staffID, withdrawalID int) (request.Withdrawal, error) {
	items, err := s.PendingWithdrawals(ctx, managerID)
	if err != nil {
		return request.Withdrawal{}, err
	}
	for _, w := range items {
		if w.WithdrawalID == withdrawalID && w.StaffID == staffID {
			return w, nil
		}
	}
	return request.Withdrawal{}, request.ErrWithdrawalNotFound
}

// DecideWithdrawal implements request.RequestService.
func (s *RequestServiceImpl) DecideWithdrawal(ctx context.Context, w request.Withdrawal, form request.DecisionForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	trigger, _ := request.DecisionTrigger(form.Status)
	if !request.WithdrawalLifecycle.CanFire(w.Status, trigger) {
		return request.ErrAlreadyDecided
	}

	payload := request.WithdrawalDecisionPayload{
		RequestID:      w.WithdrawalID,
		SpecificDate:   w.Date.Format(validator.DateLayout),
		ManagerID:      form.ManagerID,
		DecisionStatus: form.Status,
		DecisionNotes:  form.Notes,
	}
	return s.once(writeKey("withdrawal-decision", payload), func() error {
		if err := s.Repository.DecideWithdrawal(ctx, payload); err != nil {
			return fmt.Errorf("failed to record withdrawal decision: %w", err)
		}
		return nil
	})
}

// once runs write unless an identical write is already in flight, in which
// case it waits for and returns that write's result.
func (s *RequestServiceImpl) once(key string, write func() error) error {
	_, err, shared := s.writes.Do(key, func() (any, error) {
		return nil, write()
	})
	if shared {
		slog.Debug("Coalesced duplicate submission", "key", key)
	}
	return err
}

func writeKey(op string, v any) string {
	b, _ := json.Marshal(v)
	return op + ":" + string(b)
}
