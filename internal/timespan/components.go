package timespan

import (
	"fmt"
	"time"
)

// Components is a displayed hour/minute/second triple. Every field is
// within its unit range; use New at trust boundaries to enforce that.
type Components struct {
	Hour   int
	Minute int
	Second int
}

// New builds a Components triple. Out-of-range fields are a caller
// bug, not a runtime condition, and panic; Quantize never produces
// them.
func New(hour, minute, second int) Components {
	if hour < 0 || hour >= hoursPerDay {
		panic(fmt.Sprintf("timespan: hour %d out of range [0,23]", hour))
	}
	if minute < 0 || minute >= minutesPerHour {
		panic(fmt.Sprintf("timespan: minute %d out of range [0,59]", minute))
	}
	if second < 0 || second >= secondsPerMinute {
		panic(fmt.Sprintf("timespan: second %d out of range [0,59]", second))
	}
	return Components{Hour: hour, Minute: minute, Second: second}
}

// TotalSeconds returns the duration the triple represents, in seconds.
// It is always derived, never stored.
func (c Components) TotalSeconds() int {
	return c.Hour*secondsPerHour + c.Minute*secondsPerMinute + c.Second
}

// Duration returns the triple as a time.Duration
func (c Components) Duration() time.Duration {
	return time.Duration(c.TotalSeconds()) * time.Second
}

// String returns the triple in hh:mm:ss form
func (c Components) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Value returns the component value for the given unit
func (c Components) Value(u Unit) int {
	switch u {
	case UnitHour:
		return c.Hour
	case UnitMinute:
		return c.Minute
	case UnitSecond:
		return c.Second
	default:
		return 0
	}
}
