package configs

import (
	"fmt"
	"time"
)

// AdSet holds the business configuration of ad set resolution. Budgets are
// expressed in minor currency units (e.g. grosze).
type AdSet struct {
	// Capacity is the number of ads after which an ad set stops receiving
	// new ads and the next version is created.
	Capacity int `env:"CAPACITY" envDefault:"50"`
	// DailyBudget is the budget requested for a new ad set.
	DailyBudget int64 `env:"DAILY_BUDGET" envDefault:"1000"`
	// MinDailyBudget is the floor applied to DailyBudget.
	MinDailyBudget int64 `env:"MIN_DAILY_BUDGET" envDefault:"500"`
	// Currency must match the ad account currency; ad set creation is
	// refused otherwise.
	Currency string `env:"CURRENCY" envDefault:"PLN"`
	// LockWait bounds how long a promotion waits for a busy partition.
	LockWait time.Duration `env:"LOCK_WAIT" envDefault:"45s"`
}

// Budget returns the daily budget with the floor applied.
func (c AdSet) Budget() int64 {
	if c.DailyBudget < c.MinDailyBudget {
		return c.MinDailyBudget
	}
	return c.DailyBudget
}

// Validate checks that Currency looks like an ISO 4217 code.
func (c AdSet) Validate() error {
	if len(c.Currency) != 3 {
		return fmt.Errorf("invalid ADSET_CURRENCY %q: want a three-letter ISO code", c.Currency)
	}
	for _, r := range c.Currency {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("invalid ADSET_CURRENCY %q: want a three-letter ISO code", c.Currency)
		}
	}
	return nil
}
