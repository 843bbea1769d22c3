package configs

import "time"

// Redis configures the connection used for the read-through cache and the
// partition locks. An empty Addr disables Redis and the in-process
// implementations are used instead.
type Redis struct {
	Addr     string `env:"ADDR" envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
	// LockTTL bounds how long a partition lock survives a crashed holder.
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"2m"`
}

// Cache configures read-through caching of rarely changing collections.
type Cache struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	TTL     time.Duration `env:"TTL" envDefault:"30s"`
}
