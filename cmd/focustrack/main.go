package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/cli"
	"github.com/alexanderramin/focustrack/internal/config"
	"github.com/alexanderramin/focustrack/internal/db"
	"github.com/alexanderramin/focustrack/internal/metrics"
	"github.com/alexanderramin/focustrack/internal/notify"
	"github.com/alexanderramin/focustrack/internal/repository"
	"github.com/alexanderramin/focustrack/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	cal := calendar.New(loc, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	var recorder metrics.Recorder = metrics.NewNoOpRecorder()
	if cfg.OtelEnabled {
		exporter, err := metrics.NewExporter(ctx, metrics.Config{
			Enabled:  true,
			Endpoint: cfg.OtelEndpoint,
			Insecure: cfg.OtelInsecure,
		})
		if err != nil {
			return fmt.Errorf("starting metrics exporter: %w", err)
		}
		recorder = exporter
	}
	defer func() {
		// ctx may already be cancelled by an interrupt.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = recorder.Close(shutdownCtx)
	}()

	var notifier notify.Notifier = notify.NoOp{}
	if cfg.Notify {
		notifier = notify.NewDesktop(true)
	}

	// Wire storage
	var (
		sessionLog repository.SessionLog
		users      repository.UserRepo
		importSvc  service.ImportService
	)
	switch cfg.Storage {
	case config.StorageSQLite:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		sessionLog = repository.NewSQLiteSessionLog(database)
		users = repository.NewSQLiteUserRepo(database)
		importSvc = service.NewImportService(db.NewSQLiteUnitOfWork(database), observers...)
	default:
		sessionLog = repository.NewFileSessionLog(cfg.HomeDir)
		users = repository.NewFileUserRepo(cfg.HomeDir)
	}
	reports := repository.NewCSVReportWriter(cfg.HomeDir)

	app := &cli.App{
		Users: service.NewUserService(users, nil, observers...),
		Sessions: service.NewSessionService(sessionLog, cal, service.SessionOptions{
			Tick:     cfg.Tick,
			Metrics:  recorder,
			Notifier: notifier,
		}, observers...),
		Stats:       service.NewStatsService(sessionLog, reports, cal, observers...),
		Import:      importSvc,
		Calendar:    cal,
		DefaultUser: cfg.User,
	}

	// Detect interactive terminal for forms and the countdown view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
