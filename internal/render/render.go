// Package render prints screens to a terminal with lipgloss.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"wealthify/internal/core"
	"wealthify/internal/stats"
)

// Currency is prefixed to every amount.
const Currency = "₹"

const (
	colorSuccess = lipgloss.Color("#a6e3a1")
	colorWarning = lipgloss.Color("#f9e2af")
	colorDanger  = lipgloss.Color("#f38ba8")
	colorAccent  = lipgloss.Color("#89b4fa")
	colorMuted   = lipgloss.Color("#7f849c")
	colorIncome  = lipgloss.Color("#94e2d5")
	colorExpense = lipgloss.Color("#fab387")
)

// BarWidth is the number of cells of a full progress bar.
const BarWidth = 20

// Printer writes rendered screens to w. Colours follow what w supports;
// a plain buffer gets no escape codes.
type Printer struct {
	w io.Writer
	r *lipgloss.Renderer

	title    lipgloss.Style
	heading  lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	errStyle lipgloss.Style
	income   lipgloss.Style
	expense  lipgloss.Style
	levels   map[stats.Level]lipgloss.Style
}

func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:        w,
		r:        r,
		title:    r.NewStyle().Bold(true).Foreground(colorAccent),
		heading:  r.NewStyle().Bold(true).Underline(true),
		muted:    r.NewStyle().Foreground(colorMuted),
		accent:   r.NewStyle().Foreground(colorAccent).Bold(true),
		errStyle: r.NewStyle().Foreground(colorDanger),
		income:   r.NewStyle().Foreground(colorIncome),
		expense:  r.NewStyle().Foreground(colorExpense),
		levels: map[stats.Level]lipgloss.Style{
			stats.LevelSuccess: r.NewStyle().Foreground(colorSuccess),
			stats.LevelWarning: r.NewStyle().Foreground(colorWarning),
			stats.LevelDanger:  r.NewStyle().Foreground(colorDanger),
		},
	}
}

// Amount formats m as ₹1,234.5.
func Amount(m core.Money) string {
	if m.Cents < 0 {
		return "-" + Currency + stats.FormatWithCommas(core.Money{Cents: -m.Cents})
	}
	return Currency + stats.FormatWithCommas(m)
}

// Bar draws a progress bar of width cells for pct, capped at full.
func Bar(pct float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := int(pct / 100 * float64(width))
	switch {
	case filled < 0:
		filled = 0
	case filled > width:
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (p *Printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Message prints a server or service confirmation.
func (p *Printer) Message(msg string) {
	if strings.TrimSpace(msg) == "" {
		msg = "Done"
	}
	p.println(p.levels[stats.LevelSuccess].Render(msg))
}

// Error prints a user-facing error line.
func (p *Printer) Error(msg string) {
	p.println(p.errStyle.Render(msg))
}

// Percentage renders pct coloured by its level.
func (p *Printer) Percentage(pct float64) string {
	return p.levels[stats.LevelFor(pct)].Render(stats.FormatPercentage(pct))
}

// Progress renders a level-coloured bar followed by the percentage.
func (p *Printer) Progress(pct float64) string {
	style := p.levels[stats.LevelFor(pct)]
	return style.Render(Bar(pct, BarWidth)) + " " + p.Percentage(pct)
}

// List prints titles one per line, or empty when there are none.
func (p *Printer) List(heading string, titles []string, empty string) {
	p.println(p.title.Render(heading))
	if len(titles) == 0 {
		p.println(p.muted.Render(empty))
		return
	}
	for _, t := range titles {
		p.println("  • " + t)
	}
}

func (p *Printer) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := p.r.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(colorAccent)
			}
			return s
		})
	return t.Render()
}

func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "…")
}
