package stats

import (
	"sort"

	"wealthify/internal/core"
)

// WindowDays is the length of the dashboard trend series.
const WindowDays = 7

// Last7Days sums amounts per day over the seven days ending today, oldest
// first. A record counts for a day only when its date string is exactly that
// day; days with no records are zero.
func Last7Days[T core.Entry](records []T, today core.Date) []core.Money {
	out := make([]core.Money, WindowDays)
	slot := make(map[string]int, WindowDays)
	for i := 0; i < WindowDays; i++ {
		slot[today.AddDays(i-(WindowDays-1)).String()] = i
	}
	for _, r := range records {
		if i, ok := slot[r.EntryDate().String()]; ok {
			out[i] = out[i].Add(r.EntryAmount())
		}
	}
	return out
}

// WeekdayLabels returns the short weekday names aligned with Last7Days.
func WeekdayLabels(today core.Date) []string {
	out := make([]string, WindowDays)
	for i := 0; i < WindowDays; i++ {
		out[i] = today.AddDays(i - (WindowDays - 1)).Format("Mon")
	}
	return out
}

// Total sums the amounts of records.
func Total[T core.Entry](records []T) core.Money {
	var sum core.Money
	for _, r := range records {
		sum = sum.Add(r.EntryAmount())
	}
	return sum
}

// Section is one day of a grouped list.
type Section[T core.Entry] struct {
	Title string
	Day   core.Date
	Items []T
}

// GroupByDay groups records by calendar day, newest day first. Sections are
// titled Today, Yesterday or DD-Mon-YYYY; items keep their input order.
func GroupByDay[T core.Entry](records []T, today core.Date) []Section[T] {
	byDay := make(map[string]*Section[T])
	for _, r := range records {
		key := r.EntryDate().String()
		s, ok := byDay[key]
		if !ok {
			s = &Section[T]{Day: r.EntryDate(), Title: sectionTitle(r.EntryDate(), today)}
			byDay[key] = s
		}
		s.Items = append(s.Items, r)
	}

	out := make([]Section[T], 0, len(byDay))
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.After(out[j].Day.Time)
	})
	return out
}

func sectionTitle(day, today core.Date) string {
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDays(-1)):
		return "Yesterday"
	case day.IsZero():
		return "Undated"
	default:
		return day.Format("02-Jan-2006")
	}
}

// ChartScale picks a y-axis step and section count for a bar chart of values.
// The axis reaches at least 1000; the step starts at 1000 and grows by 500
// until at most five sections cover the largest value.
func ChartScale(values ...[]core.Money) (step core.Money, sections int) {
	peak := core.Money{Cents: 1000 * 100}
	for _, series := range values {
		for _, v := range series {
			if v.Cents > peak.Cents {
				peak = v
			}
		}
	}
	stepCents := int64(1000 * 100)
	n := ceilDiv(peak.Cents, stepCents)
	for n > 5 {
		stepCents += 500 * 100
		n = ceilDiv(peak.Cents, stepCents)
	}
	return core.Money{Cents: stepCents}, int(n)
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
