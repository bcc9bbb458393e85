package cron

import (
	"context"
	"log/slog"
	"time"
)

// IdleEvictor releases schedule views nobody has used recently.
type IdleEvictor interface {
	EvictIdle(maxIdle time.Duration) int
}

type ViewJobs struct {
	views   IdleEvictor
	maxIdle time.Duration
}

func NewViewJobs(views IdleEvictor, maxIdle time.Duration) *ViewJobs {
	return &ViewJobs{views: views, maxIdle: maxIdle}
}

// RegisterJobs sweeps idle views at a quarter of the idle timeout, with a
// one minute floor.
func (j *ViewJobs) RegisterJobs(scheduler *Scheduler) {
	interval := j.maxIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	scheduler.AddJob("evict_idle_schedule_views", interval, j.EvictIdleViews)
}

func (j *ViewJobs) EvictIdleViews(ctx context.Context) error {
	if n := j.views.EvictIdle(j.maxIdle); n > 0 {
		slog.Info("Cron: released idle schedule views", "count", n)
	}
	return nil
}
