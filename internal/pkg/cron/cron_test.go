package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingEvictor struct {
	calls   atomic.Int32
	maxIdle time.Duration
}

func (c *countingEvictor) EvictIdle(maxIdle time.Duration) int {
	c.calls.Add(1)
	c.maxIdle = maxIdle
	return 2
}

func TestViewJobs_RunOnce(t *testing.T) {
	evictor := &countingEvictor{}
	s := NewScheduler()
	NewViewJobs(evictor, 30*time.Minute).RegisterJobs(s)

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), evictor.calls.Load())
	assert.Equal(t, 30*time.Minute, evictor.maxIdle)
}

type countingPurger struct {
	calls atomic.Int32
}

func (c *countingPurger) PurgeRevoked() int {
	c.calls.Add(1)
	return 0
}

func TestSessionJobs_RunOnce(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler()
	NewSessionJobs(purger).RegisterJobs(s)

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), purger.calls.Load())
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("ignored")
	})

	s.Start()
	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()
	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}
