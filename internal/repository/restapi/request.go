package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/request"
)

type requestRepositoryImpl struct {
	client *Client
}

func NewRequestRepository(client *Client) request.Repository {
	return &requestRepositoryImpl{client: client}
}

// Apply implements request.Repository.
func (r *requestRepositoryImpl) Apply(ctx context.Context, payload request.ApplyPayload) error {
	if err := r.client.doJSON(ctx, http.MethodPost, "/api/apply", nil, payload, nil); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	return nil
}

// Cancel implements request.Repository.
func (r *requestRepositoryImpl) Cancel(ctx context.Context, staffID, requestID int, date time.Time) error {
	path := "/api/staff/" + itoa(staffID) + "/cancel_request/" + itoa(requestID) + "/" + url.PathEscape(date.Format(dateLayout))
	if err := r.client.doJSON(ctx, http.MethodPut, path, nil, nil, nil); err != nil {
		return fmt.Errorf("cancel request: %w", err)
	}
	return nil
}

// ListDates implements request.Repository.
func (r *requestRepositoryImpl) ListDates(ctx context.Context, staffID int) ([]request.DateRecord, error) {
	var payload []dateRecordJSON
	if err := r.client.doJSON(ctx, http.MethodGet, "/api/staff/"+itoa(staffID)+"/all_wfh_dates", nil, nil, &payload); err != nil {
		return nil, fmt.Errorf("list wfh dates: %w", err)
	}
	records := make([]request.DateRecord, 0, len(payload))
	for _, p := range payload {
		rec, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list wfh dates: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ApprovedEntries implements request.Repository.
func (r *requestRepositoryImpl) ApprovedEntries(ctx context.Context, staffID int, from, to time.Time) ([]request.ApprovedEntry, error) {
	var payload []entryJSON
	path := "/api/staff/" + itoa(staffID) + "/wfh_requests"
	if err := r.client.doJSON(ctx, http.MethodGet, path, rangeQuery(from, to), nil, &payload); err != nil {
		return nil, fmt.Errorf("approved entries: %w", err)
	}
	entries := make([]request.ApprovedEntry, 0, len(payload))
	for _, p := range payload {
		if !p.approved() {
			continue
		}
		d, err := parseDate(p.SpecificDate)
		if err != nil {
			return nil, fmt.Errorf("approved entries: %w", err)
		}
		entries = append(entries, request.ApprovedEntry{
			RequestID: int(p.RequestID),
			Date:      d,
			IsAM:      p.IsAM,
			IsPM:      p.IsPM,
			Status:    request.StatusApproved,
		})
	}
	return entries, nil
}

// Withdraw implements request.Repository.
func (r *requestRepositoryImpl) Withdraw(ctx context.Context, payload request.WithdrawPayload) error {
	if err := r.client.doJSON(ctx, http.MethodPost, "/api/withdraw", nil, payload, nil); err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	return nil
}

// TeamPending implements request.Repository.
func (r *requestRepositoryImpl) TeamPending(ctx context.Context, managerID int) ([]request.PendingDate, error) {
	var payload teamPendingJSON
	path := "/api/team-manager/" + itoa(managerID) + "/pending-requests"
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, nil, &payload); err != nil {
		return nil, fmt.Errorf("team pending: %w", err)
	}
	var dates []request.PendingDate
	for _, member := range payload.TeamPendingRequests {
		for _, p := range member.PendingRequests {
			d, err := parseDate(p.SpecificDate)
			if err != nil {
				return nil, fmt.Errorf("team pending: %w", err)
			}
			staffID := int(p.StaffID)
			if staffID == 0 {
				staffID = int(member.StaffID)
			}
			dates = append(dates, request.PendingDate{
				RequestID: int(p.RequestID),
				StaffID:   staffID,
				Date:      d,
				IsAM:      p.IsAM,
				IsPM:      p.IsPM,
			})
		}
	}
	return dates, nil
}

// GetDetail implements request.Repository.
func (r *requestRepositoryImpl) GetDetail(ctx context.Context, requestID int) (request.Detail, error) {
	var payload requestDetailJSON
	if err := r.client.doJSON(ctx, http.MethodGet, "/api/request/"+itoa(requestID), nil, nil, &payload); err != nil {
		return request.Detail{}, fmt.Errorf("get request: %w", err)
	}
	detail := request.Detail{
		Request:     payload.Data.toDomain(),
		IsRecurring: payload.IsRecurring,
	}
	for _, d := range payload.AllDates {
		detail.Dates = append(detail.Dates, d.Time)
	}
	return detail, nil
}

// Decide implements request.Repository.
func (r *requestRepositoryImpl) Decide(ctx context.Context, payload request.DecisionPayload, recurring bool) error {
	path := "/api/approve"
	if recurring {
		path = "/api/approve_recurring"
	}
	if err := r.client.doJSON(ctx, http.MethodPost, path, nil, payload, nil); err != nil {
		return fmt.Errorf("decide: %w", err)
	}
	return nil
}

// TeamPendingWithdrawals implements request.Repository.
func (r *requestRepositoryImpl) TeamPendingWithdrawals(ctx context.Context, managerID int) ([]request.Withdrawal, error) {
	var payload teamWithdrawalsJSON
	path := "/api/team-manager/" + itoa(managerID) + "/pending-requests-withdraw"
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, nil, &payload); err != nil {
		return nil, fmt.Errorf("team pending withdrawals: %w", err)
	}
	var out []request.Withdrawal
	for _, member := range payload.TeamPendingWithdrawals {
		for _, w := range member.PendingWithdrawals {
			d, err := parseDate(w.SpecificDate)
			if err != nil {
				return nil, fmt.Errorf("team pending withdrawals: %w", err)
			}
			staffID := int(w.StaffID)
			if staffID == 0 {
				staffID = int(member.StaffID)
			}
			status := request.ParseStatus(w.Status)
			if w.Status == "" {
				status = request.StatusPending
			}
			out = append(out, request.Withdrawal{
				WithdrawalID: int(w.WithdrawalID),
				RequestID:    int(w.RequestID),
				StaffID:      staffID,
				Date:         d,
				IsAM:         w.IsAM,
				IsPM:         w.IsPM,
				Reason:       w.Reason,
				Status:       status,
			})
		}
	}
	return out, nil
}

// DecideWithdrawal implements request.Repository.
func (r *requestRepositoryImpl) DecideWithdrawal(ctx context.Context, payload request.WithdrawalDecisionPayload) error {
	if err := r.client.doJSON(ctx, http.MethodPost, "/api/approve_withdrawal", nil, payload, nil); err != nil {
		return fmt.Errorf("decide withdrawal: %w", err)
	}
	return nil
}
