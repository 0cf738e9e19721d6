package config

import "time"

// SweepConfig drives the background completion sweeper that moves
// expired bookings and passes to COMPLETED. Expiry is deliberately not
// handled in the request path; the sweeper is the only writer of
// COMPLETED rows.
type SweepConfig struct {
	Enabled    bool
	Interval   time.Duration
	TokenGrace time.Duration // how long expired refresh tokens linger before purge
}

// LoadSweepConfig reads environment variables with conservative
// defaults: run every ten minutes, keep dead tokens for a day.
func LoadSweepConfig() SweepConfig {
	cfg := SweepConfig{
		Enabled:    envBool("SWEEP_ENABLED", true),
		Interval:   envDur("SWEEP_INTERVAL", 10*time.Minute),
		TokenGrace: envDur("SWEEP_TOKEN_GRACE", 24*time.Hour),
	}
	if cfg.Interval < time.Minute {
		cfg.Interval = time.Minute
	}
	return cfg
}
