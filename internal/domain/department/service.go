package department

import (
	"context"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
)

type DepartmentService interface {
	List(ctx context.Context) ([]Department, error)
	Calendar(ctx context.Context, weekOf time.Time) ([]WeekSummary, error)
	View(ctx context.Context, name string, date time.Time, shift schedule.Shift) (View, error)
	ExportWeek(ctx context.Context, name string, weekOf time.Time) ([]byte, error)
}
