// Package worker exports month reports requested over AMQP.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wealthify/internal/amqp"
	"wealthify/internal/api"
	"wealthify/internal/cache"
	applog "wealthify/internal/log"
)

// Exporter builds and writes one month report, returning where it went.
type Exporter interface {
	Export(ctx context.Context, year int, month time.Month) (string, error)
}

// ReportWorker handles report request messages. Redelivered messages whose
// export already succeeded are acknowledged without exporting again.
type ReportWorker struct {
	exporter Exporter
	done     cache.Cache[string]
	logger   *applog.Logger
}

// NewReportWorker remembers up to dedupSize completed request ids for
// dedupTTL.
func NewReportWorker(exporter Exporter, dedupSize int, dedupTTL time.Duration, logger *applog.Logger) *ReportWorker {
	if logger == nil {
		logger = applog.Discard()
	}
	return &ReportWorker{
		exporter: exporter,
		done:     cache.NewLRUCache[string](dedupSize, dedupTTL),
		logger:   logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleReportRequest is an amqp.Handler. Errors a retry cannot fix wrap
// amqp.ErrPermanent so the message is dropped.
func (w *ReportWorker) HandleReportRequest(ctx context.Context, msg *amqp.ReportRequestMessage) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", amqp.ErrPermanent, err)
	}
	if ref, ok := w.done.Get(msg.ID); ok {
		w.logger.InfoContext(ctx, "Report request already handled",
			"id", msg.ID, "ref", ref)
		return nil
	}

	ctx = applog.WithRequestID(ctx, msg.ID)
	start := time.Now()
	w.logger.InfoContext(ctx, "Processing report request",
		applog.NewFields().WithRequestID(msg.ID).WithPeriod(msg.Year, msg.Month).ToSlice()...)

	ref, err := w.exporter.Export(ctx, msg.Year, time.Month(msg.Month))
	if err != nil {
		w.logger.ErrorContext(ctx, "Report export failed",
			"id", msg.ID,
			applog.FieldError, err,
			"queued_at", msg.Timestamp)
		if permanent(err) {
			return fmt.Errorf("export report %04d-%02d: %w: %w", msg.Year, msg.Month, amqp.ErrPermanent, err)
		}
		return fmt.Errorf("export report %04d-%02d: %w", msg.Year, msg.Month, err)
	}

	w.done.Set(msg.ID, ref)
	w.logger.InfoContext(ctx, "Report exported",
		"id", msg.ID,
		"ref", ref,
		applog.FieldDuration, time.Since(start).Milliseconds())
	return nil
}

// permanent reports whether err comes from a request the server will keep
// rejecting until someone logs in again or fixes the data.
func permanent(err error) bool {
	if errors.Is(err, api.ErrUnauthorized) {
		return true
	}
	var apiErr *api.Error
	return errors.As(err, &apiErr) && apiErr.Kind == api.KindValidation
}

// ExportMonth exports one month directly; the worker uses it on startup to
// refresh the current month's report.
func (w *ReportWorker) ExportMonth(ctx context.Context, year int, month time.Month) error {
	return w.HandleReportRequest(ctx, amqp.NewReportRequestMessage(year, int(month)))
}
