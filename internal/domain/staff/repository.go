package staff

import "context"

// Repository reads the employee directory.
type Repository interface {
	GetRole(ctx context.Context, staffID int) (Role, error)
	GetTeam(ctx context.Context, staffID int) ([]Member, error)
	List(ctx context.Context) ([]Member, error)
}
