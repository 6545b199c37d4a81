// Package xlsx provides a module registry adapter backed by an
// administrative spreadsheet.
package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ModuleRegistry = (*Registry)(nil)

// Column aliases accepted in the header row, lower-cased. Registry
// spreadsheets come from administrators, so the headings drift.
var columnAliases = map[string][]string{
	"student":   {"student id", "student", "id"},
	"code":      {"access code", "code"},
	"programme": {"programme", "program"},
	"module":    {"module", "module name"},
	"file":      {"document file", "document", "file", "file name", "pdf file"},
}

// Registry resolves students to module assignments from an xlsx file.
// The file is read once at construction; the process lifetime of the
// CLI keeps staleness a non-issue.
type Registry struct {
	path    string
	entries []domain.RegistryEntry
}

// NewRegistry opens and parses the registry spreadsheet at path. The
// first sheet is read; the first row must be a header naming at least
// the student, access code, module and file columns.
func NewRegistry(path string) (*Registry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("registry %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read registry sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("registry %s has no header row", path)
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}

	var entries []domain.RegistryEntry
	for _, row := range rows[1:] {
		entry := domain.RegistryEntry{
			StudentID:  cell(row, columns["student"]),
			AccessCode: cell(row, columns["code"]),
			Programme:  cell(row, columns["programme"]),
			Module:     cell(row, columns["module"]),
			FileName:   cell(row, columns["file"]),
		}
		if entry.StudentID == "" && entry.FileName == "" {
			continue
		}
		entries = append(entries, entry)
	}

	return &Registry{path: path, entries: entries}, nil
}

// Resolve looks up studentID, verifies accessCode, and returns the
// student's module assignment with files in registry order.
func (r *Registry) Resolve(_ context.Context, studentID, accessCode string) (*domain.ModuleAssignment, error) {
	studentID = strings.TrimSpace(studentID)

	var assignment *domain.ModuleAssignment
	for _, entry := range r.entries {
		if !strings.EqualFold(entry.StudentID, studentID) {
			continue
		}
		if entry.AccessCode != strings.TrimSpace(accessCode) {
			return nil, fmt.Errorf("student %s: %w", studentID, domain.ErrAccessDenied)
		}
		if assignment == nil {
			assignment = &domain.ModuleAssignment{
				StudentID: entry.StudentID,
				Programme: entry.Programme,
				Module:    entry.Module,
			}
		}
		if entry.FileName != "" {
			assignment.Files = append(assignment.Files, entry.FileName)
		}
	}
	if assignment == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, domain.ErrNotFound)
	}
	return assignment, nil
}

// Entries lists every registry row.
func (r *Registry) Entries(_ context.Context) ([]domain.RegistryEntry, error) {
	out := make([]domain.RegistryEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// Path reports the spreadsheet the registry was read from.
func (r *Registry) Path() string {
	return r.path
}

// mapColumns resolves header cells to column indexes via the accepted
// aliases. Programme is optional; the rest are required.
func mapColumns(header []string) (map[string]int, error) {
	columns := map[string]int{"programme": -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for key, aliases := range columnAliases {
			for _, alias := range aliases {
				if name == alias {
					if _, taken := columns[key]; !taken || columns[key] < 0 {
						columns[key] = i
					}
				}
			}
		}
	}
	for _, key := range []string{"student", "code", "module", "file"} {
		if _, ok := columns[key]; !ok {
			return nil, fmt.Errorf("missing %q column", key)
		}
	}
	return columns, nil
}

// cell returns the trimmed cell at index, tolerating the ragged rows
// the sheet reader produces.
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
