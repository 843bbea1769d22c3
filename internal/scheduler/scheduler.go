// Package scheduler runs a job once a day at a fixed wall-clock time.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job is the work executed on every tick.
type Job func(ctx context.Context)

// Daily fires Job every day at Hour:Minute in Location.
type Daily struct {
	Hour     int
	Minute   int
	Location *time.Location
	Job      Job
	Logger   *slog.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// Next returns the first moment strictly after now that falls on
// hour:minute in loc. Days are stepped in calendar terms so a DST shift
// does not move the run.
func Next(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}

// Run blocks until ctx is cancelled, invoking Job at each scheduled time.
// A running job receives ctx and is waited for before Run returns.
func (d *Daily) Run(ctx context.Context) {
	now, after := d.now, d.after
	if now == nil {
		now = time.Now
	}
	if after == nil {
		after = time.After
	}
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}

	for ctx.Err() == nil {
		next := Next(now(), d.Hour, d.Minute, loc)
		d.Logger.Info("next expiration sweep scheduled", slog.Time("at", next))
		select {
		case <-ctx.Done():
			d.Logger.Info("scheduler stopped")
			return
		case <-after(next.Sub(now())):
		}
		start := now()
		d.Job(ctx)
		d.Logger.Info("scheduled job finished", slog.Duration("took", now().Sub(start)))
	}
	d.Logger.Info("scheduler stopped")
}
