package main

import (
	"context"
	"fmt"

	"wealthify/internal/amqp"
	applog "wealthify/internal/log"
	"wealthify/internal/services"
	"wealthify/internal/sheets"
	gsheet "wealthify/internal/sheets/google"
	"wealthify/internal/stats"
)

func runReport(ctx context.Context, a *app, args []string) error {
	act, rest := action(args, "export")
	fs := newFlagSet("report " + act)
	month := fs.String("month", "", "month YYYY-MM (default this month)")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	year, m, err := stats.ParseMonth(*month, a.today())
	if err != nil {
		return err
	}

	switch act {
	case "export":
		svc, err := a.reportService(ctx, false)
		if err != nil {
			return err
		}
		ref, err := svc.Export(ctx, year, m)
		if err != nil {
			return err
		}
		if ref != "stdout" {
			a.out.Message("Report written to " + ref)
		}
		return nil

	case "request":
		svc, err := a.reportService(ctx, true)
		if err != nil {
			return err
		}
		res, err := svc.Request(ctx, year, m)
		if err != nil {
			return err
		}
		if res.Queued {
			a.out.Message(fmt.Sprintf("Report for %04d-%02d queued (%s)", year, int(m), res.ID))
		} else if res.Ref != "stdout" {
			a.out.Message("Report written to " + res.Ref)
		}
		return nil

	default:
		return fmt.Errorf("unknown report action %q: use export or request", act)
	}
}

// reportService wires the configured writer and, when queue is set and
// AMQP is configured, the request queue.
func (a *app) reportService(ctx context.Context, queue bool) (*services.ReportService, error) {
	writer, err := newReportWriter(ctx, a)
	if err != nil {
		return nil, err
	}

	var q services.ReportQueue
	if queue && a.cfg.QueueEnabled() {
		client, err := amqp.NewClient(a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue, a.logger)
		if err != nil {
			return nil, fmt.Errorf("connect to AMQP: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		q = client
	}
	return services.NewReportService(a.client, writer, q, a.logger), nil
}

func newReportWriter(ctx context.Context, a *app) (sheets.ReportWriter, error) {
	if !a.cfg.SheetsEnabled() {
		a.logger.Debug("Google Sheets disabled, writing CSV", "output", a.cfg.ReportOutput)
		if a.cfg.ReportOutput == "-" || a.cfg.ReportOutput == "" {
			return sheets.NewCSVStreamWriter(a.stdout), nil
		}
		return sheets.NewCSVWriter(a.cfg.ReportOutput), nil
	}
	client, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:   a.cfg.GoogleSpreadsheetID,
		CredentialsJSON: a.cfg.GoogleServiceAccountJSON,
		CredentialsFile: a.cfg.GoogleServiceAccountFile,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets: %w", err)
	}
	a.logger.Debug("Google Sheets report writer ready", applog.FieldBackend, "sheets")
	return client, nil
}
