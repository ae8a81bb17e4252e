package stats

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"wealthify/internal/core"
)

var printer = message.NewPrinter(language.English)

// FormatWithCommas groups the integer part in thousands and keeps the decimal
// part as is: 1234567.5 -> "1,234,567.5".
func FormatWithCommas(m core.Money) string {
	s := m.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + s
	}
	out := printer.Sprintf("%d", n)
	if hasFrac {
		out += "." + fracPart
	}
	return sign + out
}

// FormatPercentage renders a BudgetPercentage result: two decimals above 99,
// none otherwise.
func FormatPercentage(pct float64) string {
	if pct > 99 {
		return printer.Sprintf("%.2f%%", pct)
	}
	return printer.Sprintf("%.0f%%", pct)
}
