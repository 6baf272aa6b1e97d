package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alexanderramin/orgscope/internal/cli"
	"github.com/alexanderramin/orgscope/internal/config"
	"github.com/alexanderramin/orgscope/internal/db"
	"github.com/alexanderramin/orgscope/internal/repository"
	"github.com/alexanderramin/orgscope/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	viewRepo := repository.NewSQLiteViewStateRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.Logging.UseCases {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
		observer = service.NewSlogUseCaseObserver(logger)
	}

	app := &cli.App{
		Employees: service.NewEmployeeService(employeeRepo, uow, observer),
		Import:    service.NewImportService(uow, observer),
		Chart:     service.NewChartService(employeeRepo, viewRepo, observer),
		Config:    cfg,
	}

	// Detect interactive terminal for the browser and forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
