package timespan

import "fmt"

// Unit identifies one of the three wheel units.
type Unit int

const (
	UnitHour Unit = iota
	UnitMinute
	UnitSecond
)

// String returns the display name of the unit
func (u Unit) String() string {
	switch u {
	case UnitHour:
		return "hour"
	case UnitMinute:
		return "minute"
	case UnitSecond:
		return "second"
	default:
		return "unknown"
	}
}

// Mode selects which units the picker displays and in what order
type Mode int

const (
	ModeHour Mode = iota
	ModeHourMinute
	ModeHourMinuteSecond
	ModeMinute
	ModeMinuteSecond
	ModeSecond
)

// modeUnits maps each mode to its active units in wheel order.
var modeUnits = [...][]Unit{
	ModeHour:             {UnitHour},
	ModeHourMinute:       {UnitHour, UnitMinute},
	ModeHourMinuteSecond: {UnitHour, UnitMinute, UnitSecond},
	ModeMinute:           {UnitMinute},
	ModeMinuteSecond:     {UnitMinute, UnitSecond},
	ModeSecond:           {UnitSecond},
}

// Units returns the active units of the mode in wheel order
func (m Mode) Units() []Unit {
	if m < 0 || int(m) >= len(modeUnits) {
		return modeUnits[ModeHourMinuteSecond]
	}
	return modeUnits[m]
}

// NumberOfComponents returns how many wheels the mode displays
func (m Mode) NumberOfComponents() int {
	return len(m.Units())
}

// Has reports whether the unit is active in this mode
func (m Mode) Has(u Unit) bool {
	for _, unit := range m.Units() {
		if unit == u {
			return true
		}
	}
	return false
}

// String returns the configuration name of the mode
func (m Mode) String() string {
	switch m {
	case ModeHour:
		return "hour"
	case ModeHourMinute:
		return "hourMinute"
	case ModeHourMinuteSecond:
		return "hourMinuteSecond"
	case ModeMinute:
		return "minute"
	case ModeMinuteSecond:
		return "minuteSecond"
	case ModeSecond:
		return "second"
	default:
		return "unknown"
	}
}

// ParseMode converts a configuration name into a Mode
func ParseMode(name string) (Mode, error) {
	switch name {
	case "hour":
		return ModeHour, nil
	case "hourMinute":
		return ModeHourMinute, nil
	case "hourMinuteSecond", "":
		return ModeHourMinuteSecond, nil
	case "minute":
		return ModeMinute, nil
	case "minuteSecond":
		return ModeMinuteSecond, nil
	case "second":
		return ModeSecond, nil
	default:
		return ModeHourMinuteSecond, fmt.Errorf("unknown picker mode %q", name)
	}
}
