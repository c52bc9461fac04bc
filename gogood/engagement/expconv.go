package engagement

// ExpConverter maps a volunteering's duration to experience points. The curve
// is deployment configuration; implementations must be pure and monotonic in
// duration.
type ExpConverter interface {
	ExpForDuration(minutes int) int64
}

// LinearExpConverter grants a fixed amount of exp per full hour, prorated by
// the minute.
type LinearExpConverter struct {
	ExpPerHour int64
}

func (c LinearExpConverter) ExpForDuration(minutes int) int64 {
	if minutes <= 0 {
		return 0
	}
	return int64(minutes) * c.ExpPerHour / 60
}
