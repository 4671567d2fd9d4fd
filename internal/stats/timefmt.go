package stats

import (
	"fmt"
	"strings"
)

type Unit int

const (
	Minutes Unit = iota
	Seconds
)

// Units are the suffixes appended to each duration segment.
type Units struct {
	Day    string
	Hour   string
	Minute string
}

var (
	EnglishUnits = Units{Day: "d", Hour: "h", Minute: "m"}
	RussianUnits = Units{Day: "д", Hour: "ч", Minute: "м"}
)

// UnitsFor maps a locale code to its suffixes. Unknown locales get English.
func UnitsFor(locale string) Units {
	switch strings.ToLower(locale) {
	case "ru":
		return RussianUnits
	default:
		return EnglishUnits
	}
}

type TimeFormatter struct {
	units Units
}

func NewTimeFormatter(units Units) TimeFormatter {
	return TimeFormatter{units: units}
}

// Format renders a duration as "{d}d {h}h {m}m". Minutes are dropped once the
// duration reaches a full day.
func (f TimeFormatter) Format(amount int64, unit Unit) string {
	if amount <= 0 {
		return f.zero()
	}

	total := amount
	if unit == Seconds {
		total = amount / 60
	}

	days := total / 1440
	hours := (total % 1440) / 60
	minutes := total % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", days, f.units.Day))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", hours, f.units.Hour))
	}
	if minutes > 0 && days == 0 {
		parts = append(parts, fmt.Sprintf("%d%s", minutes, f.units.Minute))
	}

	if len(parts) == 0 {
		return f.zero()
	}
	return strings.Join(parts, " ")
}

func (f TimeFormatter) zero() string {
	return "0" + f.units.Hour
}
