package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/lapse/internal/cli"
	"github.com/alexanderramin/lapse/internal/config"
	"github.com/alexanderramin/lapse/internal/db"
	"github.com/alexanderramin/lapse/internal/repository"
	"github.com/alexanderramin/lapse/internal/service"
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
		return fmt.Errorf("loading config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	kv := repository.NewSQLiteKVStore(database)
	store := repository.NewSessionSetStore(kv, repository.WithNameLocation(loc))

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
		observer = service.NewSlogUseCaseObserver(logger.With("db", cfg.DBPath))
	}

	app := &cli.App{
		Store:     store,
		Location:  loc,
		Observer:  observer,
		AssumeYes: !cfg.Confirm,
	}

	// Detect interactive terminal for prompts and the stopwatch.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
