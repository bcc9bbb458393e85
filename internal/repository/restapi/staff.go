package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/apperror"
)

type staffRepositoryImpl struct {
	client *Client
}

func NewStaffRepository(client *Client) staff.Repository {
	return &staffRepositoryImpl{client: client}
}

// GetRole implements staff.Repository.
func (r *staffRepositoryImpl) GetRole(ctx context.Context, staffID int) (staff.Role, error) {
	var payload roleJSON
	if err := r.client.doJSON(ctx, http.MethodGet, "/api/role/"+itoa(staffID), nil, nil, &payload); err != nil {
		if apperror.IsNotFound(err) {
			return 0, fmt.Errorf("get role: %w: %w", staff.ErrStaffNotFound, err)
		}
		return 0, fmt.Errorf("get role: %w", err)
	}
	role := staff.Role(payload.Role)
	if !role.IsValid() {
		return 0, fmt.Errorf("get role %d: %w", payload.Role, staff.ErrUnknownRole)
	}
	return role, nil
}

// GetTeam implements staff.Repository.
func (r *staffRepositoryImpl) GetTeam(ctx context.Context, staffID int) ([]staff.Member, error) {
	var payload []employeeJSON
	if err := r.client.doJSON(ctx, http.MethodGet, "/api/team/"+itoa(staffID), nil, nil, &payload); err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	return toMembers(payload), nil
}

// List implements staff.Repository.
func (r *staffRepositoryImpl) List(ctx context.Context) ([]staff.Member, error) {
	var payload []employeeJSON
	if err := r.client.doJSON(ctx, http.MethodGet, "/api/all", nil, nil, &payload); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return toMembers(payload), nil
}

func toMembers(items []employeeJSON) []staff.Member {
	members := make([]staff.Member, 0, len(items))
	for _, e := range items {
		members = append(members, e.toDomain())
	}
	return members
}
