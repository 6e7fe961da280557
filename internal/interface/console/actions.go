package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/application/command"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/application/query"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
)

// ═══════════════════════════════════════════════════════════════════════════
// MENU ACTIONS
// One method per menu option. Each reads its own input through the
// Prompter, calls the application layer, and renders the outcome.
// ═══════════════════════════════════════════════════════════════════════════

func (s *Shell) runAdd(ctx context.Context) error {
	id, err := s.prompter.ReadLine("Student ID: ")
	if err != nil {
		return err
	}
	name, err := s.prompter.ReadLine("Name: ")
	if err != nil {
		return err
	}
	marks, err := s.readMarks()
	if err != nil {
		return err
	}

	result, err := s.deps.AddStudent.Handle(ctx, command.AddStudentCommand{
		ID:    id,
		Name:  name,
		Marks: marks,
	})
	if err != nil {
		return err
	}

	s.presenter.Success("Added %s (GPA %.2f, grade %s).",
		result.Student.Name, result.Student.GPA, result.Letter)
	s.warnSave(result.SaveErr)
	return nil
}

// readMarks collects subject/score pairs until a blank subject line.
// A score that does not parse is reported and re-prompted, so a typo
// never discards the subjects already entered.
func (s *Shell) readMarks() ([]student.SubjectMark, error) {
	var marks []student.SubjectMark
	for {
		subject, err := s.prompter.ReadLine("Subject (blank to finish): ")
		if err != nil {
			return nil, err
		}
		if subject == "" {
			return marks, nil
		}

		for {
			score, err := s.prompter.ReadFloat(fmt.Sprintf("Score for %s (0-100): ", subject))
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil, err
				}
				s.presenter.Error("%v", err)
				continue
			}
			marks = append(marks, student.SubjectMark{Subject: subject, Score: student.Mark(score)})
			break
		}
	}
}

func (s *Shell) runViewAll(ctx context.Context) error {
	result, err := s.deps.ListStudents.Handle(ctx, query.ListStudentsQuery{})
	if err != nil {
		return err
	}
	s.presenter.Table(result)
	return nil
}

func (s *Shell) runSearch(ctx context.Context) error {
	id, err := s.prompter.ReadLine("Student ID: ")
	if err != nil {
		return err
	}

	result, err := s.deps.GetStudent.Handle(ctx, query.GetStudentQuery{ID: id})
	if err != nil {
		return err
	}
	s.presenter.Card(result.Student)
	return nil
}

func (s *Shell) runUpdate(ctx context.Context) error {
	id, err := s.prompter.ReadLine("Student ID: ")
	if err != nil {
		return err
	}

	s.presenter.Info("1. Rename  2. Set subject mark  3. Remove subject")
	choice, err := s.prompter.ReadLine("What to change: ")
	if err != nil {
		return err
	}

	cmd := command.UpdateStudentCommand{ID: id}
	switch choice {
	case "1":
		name, err := s.prompter.ReadLine("New name: ")
		if err != nil {
			return err
		}
		cmd.NewName = name
	case "2":
		subject, err := s.prompter.ReadLine("Subject: ")
		if err != nil {
			return err
		}
		if rec, err := s.deps.Repo.GetByID(ctx, student.StudentID(id)); err == nil {
			if current, ok := rec.MarkFor(subject); ok {
				s.presenter.Info("Current score for %s: %g", subject, current)
			}
		}
		score, err := s.prompter.ReadFloat(fmt.Sprintf("Score for %s (0-100): ", subject))
		if err != nil {
			return err
		}
		cmd.SetMarks = []student.SubjectMark{{Subject: subject, Score: student.Mark(score)}}
	case "3":
		subject, err := s.prompter.ReadLine("Subject to remove: ")
		if err != nil {
			return err
		}
		cmd.RemoveSubjects = []string{subject}
	default:
		s.presenter.Error("unknown option %q", choice)
		return nil
	}

	result, err := s.deps.UpdateStudent.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	s.presenter.Success("Updated %s: GPA %.2f -> %.2f (%s).",
		result.Student.Name, result.PreviousGPA, result.Student.GPA, result.Letter)
	s.warnSave(result.SaveErr)
	return nil
}

func (s *Shell) runDelete(ctx context.Context) error {
	id, err := s.prompter.ReadLine("Student ID: ")
	if err != nil {
		return err
	}

	// Look the record up first so the confirmation names it.
	found, err := s.deps.GetStudent.Handle(ctx, query.GetStudentQuery{ID: id})
	if err != nil {
		return err
	}

	ok, err := s.prompter.Confirm(fmt.Sprintf("Delete %s (%s)? (y/N): ", found.Student.Name, found.Student.ID))
	if err != nil {
		return err
	}
	if !ok {
		s.presenter.Info("Delete cancelled.")
		return nil
	}

	result, err := s.deps.DeleteStudent.Handle(ctx, command.DeleteStudentCommand{ID: id})
	if err != nil {
		return err
	}

	s.presenter.Success("Deleted %s (%s).", result.Name, result.ID)
	s.warnSave(result.SaveErr)
	return nil
}

func (s *Shell) runSave(ctx context.Context) error {
	count, err := s.saveAll(ctx)
	if err != nil {
		return err
	}
	s.presenter.Success("Saved %d record(s) to %s.", count, s.deps.Store.Path())
	return nil
}

func (s *Shell) runSummary(ctx context.Context) error {
	result, err := s.deps.ClassSummary.Handle(ctx, query.ClassSummaryQuery{})
	if err != nil {
		return err
	}
	s.presenter.Summary(result)
	return nil
}
