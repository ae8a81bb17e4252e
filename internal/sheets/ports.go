// Package sheets defines where month reports are exported to.
package sheets

import (
	"context"

	"wealthify/internal/stats"
)

// ReportWriter stores a month report and returns a reference to where it
// went (a sheet range, a file path, ...).
type ReportWriter interface {
	WriteReport(ctx context.Context, report stats.MonthReport) (ref string, err error)
}
