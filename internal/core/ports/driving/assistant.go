package driving

import (
	"context"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// AssistantService answers questions about a session's corpus.
//
// Greetings are answered locally; everything else is assembled into a
// prompt and sent to the completion gateway. Failures come back as a
// categorised Answer rather than an error so callers can present them
// without unwrapping.
type AssistantService interface {
	// Ask answers question against the session's corpus and records
	// the exchange in the session history. The returned Answer is
	// non-nil whenever the error is nil; gateway failures are
	// reported in Answer.Category.
	Ask(ctx context.Context, session *domain.Session, question string, opts domain.AskOptions) (*domain.Answer, error)

	// Speak renders text as spoken audio using the session's voice.
	Speak(ctx context.Context, session *domain.Session, text string) ([]byte, error)
}
