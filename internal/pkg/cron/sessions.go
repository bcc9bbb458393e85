package cron

import (
	"context"
	"log/slog"
	"time"
)

const purgeRevokedInterval = 15 * time.Minute

// RevocationPurger forgets logged-out session tokens that have expired.
type RevocationPurger interface {
	PurgeRevoked() int
}

type SessionJobs struct {
	sessions RevocationPurger
}

func NewSessionJobs(sessions RevocationPurger) *SessionJobs {
	return &SessionJobs{sessions: sessions}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_revoked_sessions", purgeRevokedInterval, j.PurgeRevokedSessions)
}

func (j *SessionJobs) PurgeRevokedSessions(ctx context.Context) error {
	if n := j.sessions.PurgeRevoked(); n > 0 {
		slog.Info("Cron: purged revoked sessions", "count", n)
	}
	return nil
}
