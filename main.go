package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/fragmede/authdash/internal/api"
	"github.com/fragmede/authdash/internal/auth"
	"github.com/fragmede/authdash/internal/cache"
	"github.com/fragmede/authdash/internal/config"
	"github.com/fragmede/authdash/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	route := flag.String("route", "", "open /login, /register or /dashboard after the session check")
	backend := flag.String("backend", "", "backend base URL (overrides BACKEND_URL)")
	envFile := flag.String("env", "", "env file to load before reading the environment")
	flag.Parse()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	if *backend != "" {
		os.Setenv("BACKEND_URL", *backend)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}

	var start ui.Route
	if *route != "" {
		if start, err = ui.ParseRoute(*route); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	db, err := cache.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening session cache: %w", err)
	}
	defer db.Close()

	client := api.NewClient(cfg.BackendURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
	)
	store := auth.New(client, db, auth.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, release := auth.Provide(ctx, store)
	defer release()

	app := ui.NewApp(ctx, cfg)
	if *route != "" {
		app.StartAt(start)
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	app.SetProgram(p)

	logger.Info("starting", "backend", cfg.BackendURL, "db", cfg.DBPath)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("program exited", "error", err)
		return err
	}
	logger.Info("stopped")
	return nil
}
