package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
)

type scheduleRepositoryImpl struct {
	client *Client
}

func NewScheduleRepository(client *Client) schedule.Repository {
	return &scheduleRepositoryImpl{client: client}
}

// StaffEntries implements schedule.Repository.
func (r *scheduleRepositoryImpl) StaffEntries(ctx context.Context, staffID int, rng schedule.Range) ([]schedule.Entry, error) {
	var payload []entryJSON
	path := "/api/staff/" + itoa(staffID) + "/wfh_requests"
	if err := r.client.doJSON(ctx, http.MethodGet, path, rangeQuery(rng.Start, rng.End), nil, &payload); err != nil {
		return nil, fmt.Errorf("staff entries: %w", err)
	}
	entries, err := toEntries(payload, staffID)
	if err != nil {
		return nil, fmt.Errorf("staff entries: %w", err)
	}
	return entries, nil
}

// TeamEntries implements schedule.Repository.
func (r *scheduleRepositoryImpl) TeamEntries(ctx context.Context, staffID int, rng schedule.Range) ([]schedule.PersonEntries, error) {
	var payload []personScheduleJSON
	path := "/api/team/" + itoa(staffID) + "/schedule"
	if err := r.client.doJSON(ctx, http.MethodGet, path, rangeQuery(rng.Start, rng.End), nil, &payload); err != nil {
		return nil, fmt.Errorf("team entries: %w", err)
	}
	people := make([]schedule.PersonEntries, 0, len(payload))
	for _, p := range payload {
		pe, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("team entries: %w", err)
		}
		people = append(people, pe)
	}
	return people, nil
}

// ManagerTeam implements schedule.Repository.
func (r *scheduleRepositoryImpl) ManagerTeam(ctx context.Context, managerID int, rng schedule.Range) (schedule.ManagerSchedule, error) {
	var payload managerScheduleJSON
	path := "/api/manager/" + itoa(managerID) + "/team_schedule"
	if err := r.client.doJSON(ctx, http.MethodGet, path, rangeQuery(rng.Start, rng.End), nil, &payload); err != nil {
		return schedule.ManagerSchedule{}, fmt.Errorf("manager schedule: %w", err)
	}

	if payload.Staff.StaffID == 0 {
		payload.Staff.StaffID = flexInt(managerID)
	}
	self, err := payload.Staff.toDomain()
	if err != nil {
		return schedule.ManagerSchedule{}, fmt.Errorf("manager schedule: %w", err)
	}
	out := schedule.ManagerSchedule{Self: self}
	for _, p := range payload.Team {
		pe, err := p.toDomain()
		if err != nil {
			return schedule.ManagerSchedule{}, fmt.Errorf("manager schedule: %w", err)
		}
		out.Team = append(out.Team, pe)
	}
	return out, nil
}
