// Package main - entry point for the gradebook console application.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: records, marks and grading rules, no external dependencies
// - Application: use case orchestration (Commands/Queries/Event handlers)
// - Infrastructure: in-memory repository, CSV flat-file store, event bus
// - Interface: the interactive console shell
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/engr-rabbi/Student-Grade-Management-System/config"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/application/command"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/application/eventhandler"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/application/query"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/infrastructure/messaging"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/infrastructure/persistence/csvfile"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/infrastructure/persistence/memory"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/interface/console"
	"github.com/engr-rabbi/Student-Grade-Management-System/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(os.Stderr, logger.ParseLevel(cfg.Log.Level)).
		With(logger.String("app", cfg.App.Name))
	log.Info("starting gradebook", logger.String("storage", cfg.Storage.Path))

	policy, err := cfg.GradingPolicy()
	if err != nil {
		return fmt.Errorf("invalid grading configuration: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 3. STORAGE
	// ─────────────────────────────────────────────────────────────────────────
	repo := memory.NewStudentRepository()
	store := csvfile.NewStore(cfg.Storage.Path, policy, log)

	records, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records from %s: %w", store.Path(), err)
	}
	if err := repo.ReplaceAll(ctx, records); err != nil {
		return fmt.Errorf("failed to seed record store: %w", err)
	}
	log.Info("records loaded", logger.Int("count", len(records)))

	// Fail before taking any input if the storage path cannot be
	// written, rather than losing a whole session at the first save.
	if err := store.Save(ctx, records); err != nil {
		return fmt.Errorf("storage path %s is not writable: %w", store.Path(), err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. EVENT BUS AND AUTOSAVE
	// ─────────────────────────────────────────────────────────────────────────
	bus := messaging.NewInMemoryEventBus(log)
	bus.Subscribe(eventhandler.NewOnRecordChangedHandler(repo, store, log))

	// ─────────────────────────────────────────────────────────────────────────
	// 5. APPLICATION LAYER AND SHELL
	// ─────────────────────────────────────────────────────────────────────────
	deps := console.Dependencies{
		AddStudent:    command.NewAddStudentHandler(repo, bus, policy, log),
		UpdateStudent: command.NewUpdateStudentHandler(repo, bus, policy, log),
		DeleteStudent: command.NewDeleteStudentHandler(repo, bus, log),
		GetStudent:    query.NewGetStudentHandler(repo, policy),
		ListStudents:  query.NewListStudentsHandler(repo, policy),
		ClassSummary:  query.NewClassSummaryHandler(repo, policy),
		Repo:          repo,
		Store:         store,
		AppName:       cfg.App.Name,
		Logger:        log,
	}

	shell := console.NewShell(deps, os.Stdin, os.Stdout)

	// The shell blocks on stdin, so an interrupt cannot be observed by
	// its loop. Save from here instead, then exit.
	finished := make(chan struct{})
	go func() {
		select {
		case <-finished:
		case <-ctx.Done():
			saveCtx := context.Background()
			if records, err := repo.List(saveCtx); err == nil {
				if err := store.Save(saveCtx, records); err != nil {
					log.Error("save on interrupt failed", logger.Err(err))
					os.Exit(1)
				}
				log.Info("interrupted, records saved", logger.Int("count", len(records)))
			}
			os.Exit(130)
		}
	}()

	err = shell.Run(ctx)
	close(finished)
	return err
}
