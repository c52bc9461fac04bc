package progression

type Calculator struct {
	config *Config
}

func NewCalculator(config *Config) *Calculator {
	return &Calculator{config: config}
}

// RequiredExp returns the exp needed to advance past the given level. The
// second return is false at MaxLevel, which has no upper bound.
func (c *Calculator) RequiredExp(level int) (int64, bool) {
	if level >= MaxLevel {
		return 0, false
	}
	return c.config.RequiredExp[level], true
}

// FromTotal maps lifetime cumulative exp to a level and the exp accumulated
// within that level. Input must be non-negative; the walk stops at the first
// level whose cumulative threshold exceeds the input. Past level MaxLevel-1
// the surplus accumulates at MaxLevel indefinitely.
func (c *Calculator) FromTotal(total int64) Result {
	var accumulated int64
	for level := 1; level < MaxLevel; level++ {
		required := c.config.RequiredExp[level]
		if total < accumulated+required {
			return Result{Level: level, ExpInLevel: total - accumulated}
		}
		accumulated += required
	}
	return Result{Level: MaxLevel, ExpInLevel: total - accumulated}
}

// TotalFor reconstructs lifetime cumulative exp from a stored (level,
// exp-in-level) pair by summing the thresholds of all completed levels.
func (c *Calculator) TotalFor(level int, expInLevel int64) int64 {
	total := expInLevel
	for l := 1; l < level; l++ {
		total += c.config.RequiredExp[l]
	}
	return total
}
