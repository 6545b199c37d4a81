package driven

import (
	"context"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// ModuleRegistry resolves students to their module and document
// assignments, typically backed by an administrative spreadsheet.
type ModuleRegistry interface {
	// Resolve looks up studentID and verifies accessCode against the
	// registry. It returns domain.ErrNotFound when the student is
	// unknown and domain.ErrAccessDenied when the code does not
	// match.
	Resolve(ctx context.Context, studentID, accessCode string) (*domain.ModuleAssignment, error)

	// Entries lists every registry row, for administrative
	// inspection.
	Entries(ctx context.Context) ([]domain.RegistryEntry, error)
}
