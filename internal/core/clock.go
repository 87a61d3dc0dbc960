package core

// Minute is a simulated minute since horizon start (minute 0).
type Minute int

// TimePeriod buckets a minute into one of four coarse parts of day, used by
// the RL state encoding.
type TimePeriod int

const (
	PeriodMorning TimePeriod = iota
	PeriodAfternoon
	PeriodEvening
	PeriodDeepNight
)

// HourOfDay returns the hour-of-day (0-23) for a simulated minute, wrapping
// every 1440 minutes.
func HourOfDay(m Minute) int {
	return (int(m) / 60) % 24
}

// IsMorningPeak reports whether hour h falls in [7,10).
func IsMorningPeak(h int) bool { return h >= 7 && h < 10 }

// IsEveningPeak reports whether hour h falls in [17,20).
func IsEveningPeak(h int) bool { return h >= 17 && h < 20 }

// IsDeepNight reports whether hour h falls in [23,24) or [0,6).
func IsDeepNight(h int) bool { return h >= 23 || h < 6 }

// PeriodOf buckets hour h into the four RL time periods on boundaries
// {6, 12, 18, 23}.
func PeriodOf(h int) TimePeriod {
	switch {
	case h >= 23 || h < 6:
		return PeriodDeepNight
	case h < 12:
		return PeriodMorning
	case h < 18:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}
