package engagement

import "time"

type Config struct {
	// Infractions inside the rolling window before a block is applied
	InfractionThreshold int
	// Rolling window within which infractions count
	InfractionWindow time.Duration
	// Length of a registration block once the threshold is reached
	BlockDuration time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		InfractionThreshold: 3,
		InfractionWindow:    180 * 24 * time.Hour,
		BlockDuration:       14 * 24 * time.Hour,
	}
}
