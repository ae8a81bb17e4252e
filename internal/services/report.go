package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"wealthify/internal/amqp"
	"wealthify/internal/api"
	"wealthify/internal/core"
	applog "wealthify/internal/log"
	"wealthify/internal/sheets"
	"wealthify/internal/stats"
)

// ReportService builds month reports and exports them through a
// sheets.ReportWriter, either inline or via the report worker.
type ReportService struct {
	api    ReportAPI
	writer sheets.ReportWriter
	queue  ReportQueue
	logger *applog.Logger
	now    func() time.Time
}

// NewReportService exports inline when queue is nil.
func NewReportService(client ReportAPI, writer sheets.ReportWriter, queue ReportQueue, logger *applog.Logger) *ReportService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &ReportService{
		api:    client,
		writer: writer,
		queue:  queue,
		logger: logger.WithComponent(applog.ComponentReport),
		now:    time.Now,
	}
}

func (s *ReportService) Build(ctx context.Context, year int, month time.Month) (stats.MonthReport, error) {
	if month < time.January || month > time.December {
		return stats.MonthReport{}, fmt.Errorf("invalid month %d", int(month))
	}
	period := stats.MonthRange(year, month)
	filter := api.ListFilter{StartDate: period.Start, EndDate: period.End}

	var (
		incomes  []core.Income
		expenses api.ExpenseList
		budgets  *core.BudgetSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = s.api.GetIncomes(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.api.GetExpenses(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.api.GetBudgets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return stats.MonthReport{}, err
	}

	report := stats.NewMonthReport(year, month, incomes, expenses.Expenses, budgets)
	report.GeneratedAt = s.now()
	return report, nil
}

// Export builds the report and writes it, returning where it went.
func (s *ReportService) Export(ctx context.Context, year int, month time.Month) (string, error) {
	if s.writer == nil {
		return "", errors.New("no report writer configured")
	}
	report, err := s.Build(ctx, year, month)
	if err != nil {
		return "", fmt.Errorf("build report: %w", err)
	}
	ref, err := s.writer.WriteReport(ctx, report)
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	s.logger.InfoContext(ctx, "Report exported",
		applog.NewFields().WithOperation(applog.OpExport).WithPeriod(year, int(month)).ToSlice()...)
	return ref, nil
}

// RequestResult tells whether a report was queued or exported right away.
type RequestResult struct {
	Queued bool
	// ID of the queued request.
	ID string
	// Ref of the inline export.
	Ref string
}

// Request queues the export for the report worker, or exports inline when
// no queue is configured.
func (s *ReportService) Request(ctx context.Context, year int, month time.Month) (RequestResult, error) {
	if s.queue == nil {
		ref, err := s.Export(ctx, year, month)
		if err != nil {
			return RequestResult{}, err
		}
		return RequestResult{Ref: ref}, nil
	}

	msg := amqp.NewReportRequestMessage(year, int(month))
	if err := s.queue.PublishReportRequest(ctx, msg); err != nil {
		return RequestResult{}, fmt.Errorf("queue report request: %w", err)
	}
	return RequestResult{Queued: true, ID: msg.ID}, nil
}
