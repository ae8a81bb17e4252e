package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthify/internal/core"
)

func TestFormatWithCommas(t *testing.T) {
	cases := []struct {
		in   core.Money
		want string
	}{
		{core.Money{}, "0"},
		{units(999), "999"},
		{units(1000), "1,000"},
		{units(1234567.5), "1,234,567.5"},
		{units(100000.25), "100,000.25"},
		{core.Money{Cents: -123456}, "-1,234.56"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatWithCommas(tc.in))
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "90%", FormatPercentage(90))
	assert.Equal(t, "99.95%", FormatPercentage(99.95))
	assert.Equal(t, "0%", FormatPercentage(0))
}

func TestRangeFor(t *testing.T) {
	today := core.NewDate(2024, 2, 14)

	r, err := RangeFor(RangeToday, today)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-14", r.Start.String())
	assert.Equal(t, "2024-02-14", r.End.String())

	r, err = RangeFor(RangeMonth, today)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", r.Start.String())
	assert.Equal(t, "2024-02-29", r.End.String())

	r, err = RangeFor(RangeYear, today)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", r.Start.String())
	assert.Equal(t, "2024-12-31", r.End.String())

	_, err = RangeFor(RangeType(9), today)
	assert.Error(t, err)
}

func TestParseRangeType(t *testing.T) {
	for in, want := range map[string]RangeType{"today": RangeToday, "": RangeMonth, "3": RangeYear, "Month": RangeMonth} {
		got, err := ParseRangeType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRangeType("week")
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	today := core.NewDate(2025, 7, 4)

	y, m, err := ParseMonth("", today)
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 7, int(m))

	y, m, err = ParseMonth("2024-12", today)
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 12, int(m))

	_, _, err = ParseMonth("12/2024", today)
	assert.Error(t, err)
}
