package configs

// Webhook configures the inbound post webhook. An empty Secret disables the
// shared-secret check.
type Webhook struct {
	Secret string  `env:"SECRET" envDefault:""`
	RPS    float64 `env:"RPS" envDefault:"20"`
	Burst  int     `env:"BURST" envDefault:"40"`
}
