// Package console implements the interactive menu shell. It owns the
// read-dispatch loop, translates operator input into application
// commands and queries, and renders results through the Presenter.
// All I/O goes through injected streams so the full shell can be
// driven by scripted sessions in tests.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/application/command"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/application/query"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
	"github.com/engr-rabbi/Student-Grade-Management-System/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// MENU SHELL
// ═══════════════════════════════════════════════════════════════════════════

// RecordStore is the persistence surface the shell needs for the
// explicit Save action and the final save on exit.
type RecordStore interface {
	Save(ctx context.Context, records []*student.Student) error
	Path() string
}

// Dependencies carries everything the shell dispatches to.
type Dependencies struct {
	AddStudent    *command.AddStudentHandler
	UpdateStudent *command.UpdateStudentHandler
	DeleteStudent *command.DeleteStudentHandler

	GetStudent   *query.GetStudentHandler
	ListStudents *query.ListStudentsHandler
	ClassSummary *query.ClassSummaryHandler

	Repo  student.Repository
	Store RecordStore

	AppName string
	Logger  *logger.Logger
}

// Shell is the interactive menu loop.
type Shell struct {
	deps      Dependencies
	prompter  *Prompter
	presenter *Presenter
	logger    *logger.Logger
}

// NewShell creates a Shell reading from in and writing to out.
func NewShell(deps Dependencies, in io.Reader, out io.Writer) *Shell {
	log := deps.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Shell{
		deps:      deps,
		prompter:  NewPrompter(in, out),
		presenter: NewPresenter(out),
		logger:    log,
	}
}

type menuEntry struct {
	key   string
	label string
	exit  bool
	run   func(ctx context.Context) error
}

func (s *Shell) menuEntries() []menuEntry {
	return []menuEntry{
		{key: "1", label: "Add student", run: s.runAdd},
		{key: "2", label: "View all students", run: s.runViewAll},
		{key: "3", label: "Search student", run: s.runSearch},
		{key: "4", label: "Update student", run: s.runUpdate},
		{key: "5", label: "Delete student", run: s.runDelete},
		{key: "6", label: "Save records", run: s.runSave},
		{key: "7", label: "Class summary", run: s.runSummary},
		{key: "8", label: "Exit", exit: true},
	}
}

// Run executes the menu loop until the operator exits or the input
// ends. Domain errors are reported and the loop continues; only I/O
// failures on the input stream terminate it. Exit and end of input
// both save the store before returning.
func (s *Shell) Run(ctx context.Context) error {
	entries := s.menuEntries()
	byKey := make(map[string]menuEntry, len(entries))
	for _, e := range entries {
		byKey[e.key] = e
	}

	s.presenter.Banner(s.deps.AppName)

	for {
		if ctx.Err() != nil {
			return s.shutdown(ctx)
		}

		s.presenter.Menu(entries)
		choice, err := s.prompter.ReadLine(fmt.Sprintf("Enter your choice (1-%d): ", len(entries)))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return s.shutdown(ctx)
			}
			return fmt.Errorf("console: read choice: %w", err)
		}

		entry, ok := byKey[choice]
		if !ok {
			s.presenter.Error("unknown option %q", choice)
			continue
		}
		if entry.exit {
			return s.shutdown(ctx)
		}

		if err := entry.run(ctx); err != nil {
			// End of input mid-action behaves like Exit.
			if errors.Is(err, io.EOF) {
				return s.shutdown(ctx)
			}
			s.report(err)
		}
	}
}

// shutdown performs the final save. It runs even when ctx was
// cancelled by an interrupt, so in-memory changes still reach disk.
func (s *Shell) shutdown(ctx context.Context) error {
	saveCtx := context.WithoutCancel(ctx)

	count, err := s.saveAll(saveCtx)
	if err != nil {
		s.presenter.Error("final save failed: %v", err)
		return fmt.Errorf("console: final save: %w", err)
	}

	s.presenter.Success("Saved %d record(s) to %s. Goodbye.", count, s.deps.Store.Path())
	return nil
}

// saveAll writes the current record set to the store.
func (s *Shell) saveAll(ctx context.Context) (int, error) {
	records, err := s.deps.Repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.deps.Store.Save(ctx, records); err != nil {
		return 0, err
	}

	s.logger.Info("records saved",
		logger.Int("count", len(records)),
		logger.String("path", s.deps.Store.Path()))
	return len(records), nil
}

// report shows a failed action to the operator without terminating
// the loop.
func (s *Shell) report(err error) {
	s.presenter.Error("%v", err)
}

// warnSave tells the operator when a mutation succeeded in memory but
// its autosave did not reach disk.
func (s *Shell) warnSave(err error) {
	if err == nil {
		return
	}
	s.presenter.Warning("record kept in memory, but saving to disk failed: %v", err)
}
