package stats

import (
	"fmt"
	"strings"
	"time"

	"wealthify/internal/core"
)

// RangeType selects one of the list filter presets. The numeric values are
// what the API receives in the "type" query parameter.
type RangeType int

const (
	RangeToday RangeType = 1
	RangeMonth RangeType = 2
	RangeYear  RangeType = 3
)

// DateRange is an inclusive [Start, End] pair of calendar days.
type DateRange struct {
	Start core.Date
	End   core.Date
}

func (r RangeType) String() string {
	switch r {
	case RangeToday:
		return "today"
	case RangeMonth:
		return "month"
	case RangeYear:
		return "year"
	default:
		return fmt.Sprintf("range(%d)", int(r))
	}
}

// Label is the text shown in the range picker.
func (r RangeType) Label() string {
	switch r {
	case RangeToday:
		return "Today"
	case RangeMonth:
		return "This month"
	case RangeYear:
		return "This year"
	default:
		return ""
	}
}

// ParseRangeType accepts today, month or year (or 1, 2, 3).
func ParseRangeType(s string) (RangeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today", "1":
		return RangeToday, nil
	case "month", "this month", "2", "":
		return RangeMonth, nil
	case "year", "this year", "3":
		return RangeYear, nil
	}
	return 0, fmt.Errorf("unknown range %q: must be today, month or year", s)
}

// RangeFor resolves a preset against today.
func RangeFor(r RangeType, today core.Date) (DateRange, error) {
	switch r {
	case RangeToday:
		return DateRange{Start: today, End: today}, nil
	case RangeMonth:
		return MonthRange(today.Year(), today.Month()), nil
	case RangeYear:
		return DateRange{
			Start: core.NewDate(today.Year(), 1, 1),
			End:   core.NewDate(today.Year(), 12, 31),
		}, nil
	default:
		return DateRange{}, fmt.Errorf("unknown range type %d", int(r))
	}
}

// MonthRange is the first to the last day of a month.
func MonthRange(year int, month time.Month) DateRange {
	start := core.NewDate(year, int(month), 1)
	return DateRange{Start: start, End: core.Date{Time: start.AddDate(0, 1, -1)}}
}

// ParseMonth parses YYYY-MM; an empty string means the month of today.
func ParseMonth(s string, today core.Date) (int, time.Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return today.Year(), today.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("could not parse month %q, did you use YYYY-MM format?", s)
	}
	return t.Year(), t.Month(), nil
}
