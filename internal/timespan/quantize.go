// Package timespan converts arbitrary durations into the
// interval-aligned hour/minute/second values a duration picker can
// display. Quantization is a pure function over its inputs: any
// duration, however extreme, yields a valid triple inside the
// effective bounds.
package timespan

import "fmt"

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	minutesPerHour   = 60
	hoursPerDay      = 24
)

// Rounding selects which representable value an off-grid duration
// snaps to.
type Rounding int

const (
	RoundDown Rounding = iota
	RoundUp
)

// String returns the configuration name of the rounding direction
func (r Rounding) String() string {
	if r == RoundUp {
		return "up"
	}
	return "down"
}

// ParseRounding converts a configuration name into a Rounding
func ParseRounding(name string) (Rounding, error) {
	switch name {
	case "down", "":
		return RoundDown, nil
	case "up":
		return RoundUp, nil
	}
	return RoundDown, fmt.Errorf("unknown rounding direction %q", name)
}

// ValidInterval reports whether interval evenly divides unitCount and
// lies within [1, unitCount/2].
func ValidInterval(interval, unitCount int) bool {
	return interval >= 1 && interval <= unitCount/2 && unitCount%interval == 0
}

// Options carries the picker configuration a quantization runs under.
// Intervals must already divide their unit evenly (the config layer
// resets illegal values to 1); a zero interval is treated as 1.
// Minimum and Maximum are seconds; nil leaves that side unbounded.
type Options struct {
	Mode           Mode
	HourInterval   int
	MinuteInterval int
	SecondInterval int
	Minimum        *int
	Maximum        *int
	Rounding       Rounding
}

func (o Options) intervals() (hi, mi, si int) {
	hi, mi, si = o.HourInterval, o.MinuteInterval, o.SecondInterval
	if hi < 1 {
		hi = 1
	}
	if mi < 1 {
		mi = 1
	}
	if si < 1 {
		si = 1
	}
	return hi, mi, si
}

// AbsoluteMaximum returns the largest duration representable for the
// mode and intervals, independent of any configured maximum. Each
// active wheel tops out one interval step below its unit count, e.g.
// an hour interval of 2 caps the hour wheel at 22.
func AbsoluteMaximum(mode Mode, hourInterval, minuteInterval, secondInterval int) int {
	o := Options{Mode: mode, HourInterval: hourInterval, MinuteInterval: minuteInterval, SecondInterval: secondInterval}
	hi, mi, si := o.intervals()

	max := 0
	if mode.Has(UnitHour) {
		max += (hoursPerDay - hi) * secondsPerHour
	}
	if mode.Has(UnitMinute) {
		max += (minutesPerHour - mi) * secondsPerMinute
	}
	if mode.Has(UnitSecond) {
		max += secondsPerMinute - si
	}
	return max
}

// Bounds returns the effective [min, max] window: the configured
// minimum rounded up onto the grid, the configured maximum rounded
// down onto it, each falling back to its default when out of range.
// An inverted window is ignored entirely and collapses to
// [0, AbsoluteMaximum]. The wheel muting logic derives from this same
// normalization, so the picker and the quantizer can never disagree.
func (o Options) Bounds() (min, max int) {
	hi, mi, si := o.intervals()
	absMax := AbsoluteMaximum(o.Mode, hi, mi, si)

	min = 0
	if o.Minimum != nil && *o.Minimum > 0 && *o.Minimum <= absMax {
		min = o.ceilToGrid(*o.Minimum)
	}

	max = absMax
	if o.Maximum != nil && *o.Maximum >= 0 && *o.Maximum < absMax {
		max = o.floorToGrid(*o.Maximum)
	}

	if min > max {
		return 0, absMax
	}
	return min, max
}

// MinimumComponents returns the triple for the effective lower bound
func (o Options) MinimumComponents() Components {
	min, _ := o.Bounds()
	hi, mi, si := o.intervals()
	return zeroInactive(decomposeDown(min, hi, mi, si), o.Mode)
}

// MaximumComponents returns the triple for the effective upper bound
func (o Options) MaximumComponents() Components {
	_, max := o.Bounds()
	hi, mi, si := o.intervals()
	return zeroInactive(decomposeDown(max, hi, mi, si), o.Mode)
}

// Quantize clamps duration into the effective bounds, decomposes it
// into grid-aligned components per the rounding direction, and zeroes
// units the mode does not display. The result is total: negative
// input lands on the lower bound, oversized input on the upper.
func Quantize(duration int, o Options) Components {
	hi, mi, si := o.intervals()
	min, max := o.Bounds()

	d := duration
	if d < min {
		d = min
	}
	if d > max {
		d = max
	}

	var c Components
	if o.Rounding == RoundUp && d != max {
		c = decomposeUp(d, hi, mi, si)
	} else {
		// At the ceiling there is nothing left to round up into:
		// bumping past the top wheel value would not be representable,
		// so the ceiling itself quantizes downward.
		c = decomposeDown(d, hi, mi, si)
	}
	return zeroInactive(c, o.Mode)
}

// decomposeDown produces the largest grid triple not exceeding d.
// Successive division by each unit's interval span, with every value
// capped one interval below its unit count so an oversized remainder
// never spills into the next wheel.
func decomposeDown(d, hi, mi, si int) Components {
	hour := d / (hi * secondsPerHour) * hi
	if hour > hoursPerDay-hi {
		hour = hoursPerDay - hi
	}
	rem := d - hour*secondsPerHour

	minute := rem / (mi * secondsPerMinute) * mi
	if minute > minutesPerHour-mi {
		minute = minutesPerHour - mi
	}
	rem -= minute * secondsPerMinute

	second := rem / si * si
	if second > secondsPerMinute-si {
		second = secondsPerMinute - si
	}
	return Components{Hour: hour, Minute: minute, Second: second}
}

// decomposeUp produces the smallest grid triple at or above d: the
// round-down triple, bumped by one second interval with carry into the
// higher wheels when d landed off-grid.
func decomposeUp(d, hi, mi, si int) Components {
	c := decomposeDown(d, hi, mi, si)
	if c.TotalSeconds() >= d {
		return c
	}

	c.Second += si
	if c.Second > secondsPerMinute-si {
		c.Second = 0
		c.Minute += mi
		if c.Minute > minutesPerHour-mi {
			c.Minute = 0
			c.Hour += hi
			if c.Hour > hoursPerDay-hi {
				// Unreachable while callers guard the upper bound.
				c.Hour = hoursPerDay - hi
			}
		}
	}
	return c
}

// floorToGrid rounds d down to the nearest duration representable in
// the mode: inactive units contribute nothing.
func (o Options) floorToGrid(d int) int {
	hi, mi, si := o.intervals()
	return zeroInactive(decomposeDown(d, hi, mi, si), o.Mode).TotalSeconds()
}

// ceilToGrid rounds d up to the nearest duration representable in the
// mode, bumping the lowest active wheel with carry when d is off-grid.
func (o Options) ceilToGrid(d int) int {
	hi, mi, si := o.intervals()
	c := zeroInactive(decomposeDown(d, hi, mi, si), o.Mode)
	if c.TotalSeconds() >= d {
		return c.TotalSeconds()
	}

	if o.Mode.Has(UnitSecond) {
		c.Second += si
		if c.Second <= secondsPerMinute-si {
			return c.TotalSeconds()
		}
		c.Second = 0
	}
	if o.Mode.Has(UnitMinute) {
		c.Minute += mi
		if c.Minute <= minutesPerHour-mi {
			return c.TotalSeconds()
		}
		c.Minute = 0
	}
	if o.Mode.Has(UnitHour) {
		c.Hour += hi
		if c.Hour <= hoursPerDay-hi {
			return c.TotalSeconds()
		}
		// Unreachable while callers keep d at or below AbsoluteMaximum.
		c.Hour = hoursPerDay - hi
	}
	return c.TotalSeconds()
}

func zeroInactive(c Components, mode Mode) Components {
	if !mode.Has(UnitHour) {
		c.Hour = 0
	}
	if !mode.Has(UnitMinute) {
		c.Minute = 0
	}
	if !mode.Has(UnitSecond) {
		c.Second = 0
	}
	return c
}
