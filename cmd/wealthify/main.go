// Command wealthify is a terminal client for the Wealthify personal finance
// API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"wealthify/internal/api"
	"wealthify/internal/cache"
	"wealthify/internal/cli"
	"wealthify/internal/config"
	"wealthify/internal/core"
	applog "wealthify/internal/log"
	"wealthify/internal/render"
	"wealthify/internal/services"
	"wealthify/internal/session"
)

type app struct {
	cfg    *config.Config
	logger *applog.Logger
	out    *render.Printer
	errOut *render.Printer
	stdout io.Writer
	prompt *prompter
	now    func() time.Time

	session *session.Manager
	auth    *services.AuthService
	ledger  *services.LedgerService
	budgets *services.BudgetService
	dash    *services.DashboardService
	client  *api.Client

	closers []func() error
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"check":         {"check the saved session with the server", runCheck},
	"login":         {"log in with email and password", runLogin},
	"register":      {"create an account", runRegister},
	"verify-otp":    {"verify the OTP sent after registration", runVerifyOTP},
	"resend-otp":    {"send the registration OTP again", runResendOTP},
	"logout":        {"forget the saved session", runLogout},
	"status":        {"show the saved session", runStatus},
	"profile":       {"show | update -username NAME", runProfile},
	"password":      {"change the password", runPassword},
	"incomes":       {"list | add | update ID | delete ID", runIncomes},
	"expenses":      {"list | add | update ID | delete ID", runExpenses},
	"categories":    {"list | add, for -type income or expense", runCategories},
	"subcategories": {"list | add, for an expense -category", runSubCategories},
	"budgets":       {"show | set | remove", runBudgets},
	"analysis":      {"budget analysis for -month YYYY-MM", runAnalysis},
	"dashboard":     {"totals, the last seven days and recent activity", runDashboard},
	"report":        {"export | request, for -month YYYY-MM", runReport},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintln(stderr, "Failed to load .env:", err)
	}
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), stderr)

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stdout)
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger, stdin, stdout, stderr)
	if err != nil {
		logger.Error("Startup failed", applog.FieldError, err)
		return 1
	}
	defer a.Close()

	if err := cmd.run(ctx, a, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		a.errOut.Error(api.UserMessage(err))
		if errors.Is(err, api.ErrUnauthorized) {
			a.errOut.Error("Your session has ended. Run `wealthify login` to sign in again.")
		}
		return 1
	}
	return 0
}

func newApp(ctx context.Context, cfg *config.Config, logger *applog.Logger, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	mgr, cleanup, err := cli.OpenSession(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:     cfg,
		logger:  logger,
		out:     render.New(stdout),
		errOut:  render.New(stderr),
		stdout:  stdout,
		prompt:  newPrompter(stdin, stderr),
		now:     time.Now,
		session: mgr,
		closers: []func() error{cleanup},
	}

	client, err := api.NewClient(cfg.APIURL, mgr, api.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.client = client
	a.auth = services.NewAuthService(client, mgr, logger)
	a.ledger = services.NewLedgerService(client,
		cache.NewLRUCache[[]string](cfg.TaxonomyCacheSize, cfg.TaxonomyCacheTTL), logger)
	a.budgets = services.NewBudgetService(client, logger)
	a.dash = services.NewDashboardService(client, logger)
	return a, nil
}

func (a *app) today() core.Date {
	return core.DateOf(a.now())
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Cleanup failed", applog.FieldError, err)
		}
	}
	a.closers = nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wealthify <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %s\n", name, commands[name].usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `wealthify <command> -h` for the flags of a command.")
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("wealthify "+name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// action splits "incomes add -amount 5" into "add" and its flags. def is used
// when args is empty or starts with a flag.
func action(args []string, def string) (string, []string) {
	if len(args) == 0 || (len(args[0]) > 0 && args[0][0] == '-') {
		return def, args
	}
	return args[0], args[1:]
}

// idArg takes the leading positional id of update and delete.
func idArg(args []string, what string) (string, []string, error) {
	if len(args) == 0 || (len(args[0]) > 0 && args[0][0] == '-') {
		return "", nil, fmt.Errorf("missing %s id", what)
	}
	return args[0], args[1:], nil
}
