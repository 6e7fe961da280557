// Package csvfile implements the flat-file persistence adapter. Records are
// stored as CSV, one record per line, with subject names and marks carried
// as parallel pipe-joined lists:
//
//	ID,Name,Subjects,Marks,GPA
//	S1,Alice,math|physics|history,90|80|70,4.00
//
// Saves replace the file atomically (write to a temp file in the same
// directory, then rename), so an interrupted save never corrupts the
// previously saved data.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
	"github.com/engr-rabbi/Student-Grade-Management-System/pkg/logger"
)

// listSeparator joins the subject and mark lists inside their CSV fields.
const listSeparator = "|"

// header is the first line of every store file.
var header = []string{"ID", "Name", "Subjects", "Marks", "GPA"}

// Store reads and writes the full record set at a fixed path.
type Store struct {
	path   string
	policy student.GradingPolicy
	logger *logger.Logger
}

// NewStore creates a Store for the given file path.
func NewStore(path string, policy student.GradingPolicy, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	return &Store{path: path, policy: policy, logger: log}
}

// Path returns the file path this store persists to.
func (st *Store) Path() string {
	return st.path
}

func rowError(op string, line int, reason string, err error) error {
	return shared.WrapError("csvfile", op, shared.ErrInvalidFormat,
		fmt.Sprintf("line %d: %s", line, reason), err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Load
// ─────────────────────────────────────────────────────────────────────────────

// Load reads all records from the file. A missing file is not an error:
// it yields an empty result. Malformed rows fail the load with the
// 1-based line number and reason. The derived GPA is always recomputed
// from the marks; a stored GPA that disagrees is logged and discarded.
func (st *Store) Load(ctx context.Context) ([]*student.Student, error) {
	f, err := os.Open(st.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			st.logger.Info("store file not found, starting empty", logger.String("path", st.path))
			return nil, nil
		}
		return nil, shared.WrapError("csvfile", "Load", shared.ErrPersistence, "cannot open store file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	rows, err := r.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, rowError("Load", parseErr.Line, "malformed CSV row", err)
		}
		return nil, shared.WrapError("csvfile", "Load", shared.ErrPersistence, "cannot read store file", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	if !equalFields(rows[0], header) {
		return nil, rowError("Load", 1, fmt.Sprintf("unexpected header %v", rows[0]), nil)
	}

	records := make([]*student.Student, 0, len(rows)-1)
	seen := make(map[student.StudentID]int, len(rows)-1)

	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after the header

		s, err := st.parseRow(row, line)
		if err != nil {
			return nil, err
		}

		if firstLine, dup := seen[s.ID]; dup {
			return nil, rowError("Load", line,
				fmt.Sprintf("duplicate student id %q (first seen on line %d)", s.ID, firstLine), nil)
		}
		seen[s.ID] = line

		records = append(records, s)
	}

	st.logger.Info("store loaded",
		logger.String("path", st.path),
		logger.Int("records", len(records)))

	return records, nil
}

func (st *Store) parseRow(row []string, line int) (*student.Student, error) {
	id, name, subjectsField, marksField, gpaField := row[0], row[1], row[2], row[3], row[4]

	subjects := splitList(subjectsField)
	scores := splitList(marksField)
	if len(subjects) != len(scores) {
		return nil, rowError("Load", line,
			fmt.Sprintf("%d subjects but %d marks", len(subjects), len(scores)), nil)
	}

	marks := make([]student.SubjectMark, len(subjects))
	for i, raw := range scores {
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, rowError("Load", line, fmt.Sprintf("invalid mark %q", raw), err)
		}
		marks[i] = student.SubjectMark{Subject: subjects[i], Score: student.Mark(score)}
	}

	s, err := student.NewStudent(student.NewStudentParams{
		ID:    student.StudentID(id),
		Name:  name,
		Marks: marks,
	}, st.policy)
	if err != nil {
		return nil, rowError("Load", line, "invalid record", err)
	}

	// The GPA column is informational; marks are the source of truth.
	// Disagreement means the file was edited by hand.
	if storedGPA, err := strconv.ParseFloat(gpaField, 64); err != nil {
		st.logger.Warn("unreadable stored GPA, recomputed from marks",
			logger.Int("line", line), logger.String("id", id))
	} else if math.Abs(storedGPA-s.GPA) > 0.005 {
		st.logger.Warn("stored GPA disagrees with marks, recomputed",
			logger.Int("line", line),
			logger.String("id", id),
			logger.Float64("stored", storedGPA),
			logger.Float64("computed", s.GPA))
	}

	return s, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save
// ─────────────────────────────────────────────────────────────────────────────

// Save writes all records to the file, atomically replacing any previous
// content. On failure the previous file is left intact.
func (st *Store) Save(ctx context.Context, records []*student.Student) error {
	dir := filepath.Dir(st.path)

	tmp, err := os.CreateTemp(dir, ".students-*.tmp")
	if err != nil {
		return shared.WrapError("csvfile", "Save", shared.ErrPersistence, "cannot create temp file", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		cleanup()
		return shared.WrapError("csvfile", "Save", shared.ErrPersistence, "cannot write header", err)
	}

	for _, s := range records {
		if err := w.Write(formatRow(s)); err != nil {
			cleanup()
			return shared.WrapError("csvfile", "Save", shared.ErrPersistence,
				fmt.Sprintf("cannot write record %s", s.ID), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		cleanup()
		return shared.WrapError("csvfile", "Save", shared.ErrPersistence, "cannot flush records", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return shared.WrapError("csvfile", "Save", shared.ErrPersistence, "cannot sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return shared.WrapError("csvfile", "Save", shared.ErrPersistence, "cannot close temp file", err)
	}

	if err := os.Rename(tmpName, st.path); err != nil {
		os.Remove(tmpName)
		return shared.WrapError("csvfile", "Save", shared.ErrPersistence, "cannot replace store file", err)
	}

	st.logger.Debug("store saved",
		logger.String("path", st.path),
		logger.Int("records", len(records)))

	return nil
}

func formatRow(s *student.Student) []string {
	subjects := make([]string, len(s.Marks))
	scores := make([]string, len(s.Marks))
	for i, sm := range s.Marks {
		subjects[i] = sm.Subject
		scores[i] = strconv.FormatFloat(float64(sm.Score), 'g', -1, 64)
	}

	return []string{
		s.ID.String(),
		s.Name,
		strings.Join(subjects, listSeparator),
		strings.Join(scores, listSeparator),
		strconv.FormatFloat(s.GPA, 'f', 2, 64),
	}
}

func splitList(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, listSeparator)
}

func equalFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
