package configs

import (
	"fmt"
	"time"
)

// Scheduler configures the daily expiration sweep. At is a wall-clock time
// in HH:MM format interpreted in Location.
type Scheduler struct {
	Enabled  bool   `env:"ENABLED" envDefault:"true"`
	At       string `env:"AT" envDefault:"00:01"`
	Location string `env:"LOCATION" envDefault:"Europe/Warsaw"`
}

// Validate checks that At and Location can be parsed.
func (c Scheduler) Validate() error {
	if _, err := time.Parse("15:04", c.At); err != nil {
		return fmt.Errorf("invalid SCHEDULER_AT %q: %w", c.At, err)
	}
	if _, err := time.LoadLocation(c.Location); err != nil {
		return fmt.Errorf("invalid SCHEDULER_LOCATION %q: %w", c.Location, err)
	}
	return nil
}

// Clock returns the hour, minute and location of the daily run.
func (c Scheduler) Clock() (hour, minute int, loc *time.Location) {
	t, err := time.Parse("15:04", c.At)
	if err != nil {
		t = time.Date(0, 1, 1, 0, 1, 0, 0, time.UTC)
	}
	loc, err = time.LoadLocation(c.Location)
	if err != nil {
		loc = time.UTC
	}
	return t.Hour(), t.Minute(), loc
}
