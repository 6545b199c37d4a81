package services

import (
	"context"
	"errors"
	"strings"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/core/ports/driving"
	"github.com/docentlabs/docent-cli/internal/logger"
	"github.com/docentlabs/docent-cli/internal/textnorm"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// Completion defaults, matching the upstream service limits the
// application was tuned against.
const (
	DefaultMaxTokens   = 1500
	DefaultTemperature = 0.3
	DefaultVoice       = "alloy"
)

// historyWindow is how many past exchanges follow-up questions carry.
const historyWindow = 3

// AssistantOptions tune the assistant service. Zero values select the
// defaults.
type AssistantOptions struct {
	FairShareBudget  int
	SequentialBudget int
	MaxTokens        int
	Temperature      *float64
}

// AssistantService answers questions about a session's corpus. The
// completion service is optional (can be nil); without it only
// greetings are answered.
type AssistantService struct {
	completion driven.CompletionService
	prompt     *PromptService

	fairShareBudget  int
	sequentialBudget int
	maxTokens        int
	temperature      *float64
}

// NewAssistantService creates an assistant service.
func NewAssistantService(completion driven.CompletionService, prompt *PromptService, opts AssistantOptions) *AssistantService {
	if opts.FairShareBudget <= 0 {
		opts.FairShareBudget = DefaultFairShareBudget
	}
	if opts.SequentialBudget <= 0 {
		opts.SequentialBudget = DefaultSequentialBudget
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Temperature == nil {
		temp := DefaultTemperature
		opts.Temperature = &temp
	}
	if prompt == nil {
		prompt = NewPromptService(nil)
	}
	return &AssistantService{
		completion:       completion,
		prompt:           prompt,
		fairShareBudget:  opts.FairShareBudget,
		sequentialBudget: opts.SequentialBudget,
		maxTokens:        opts.MaxTokens,
		temperature:      opts.Temperature,
	}
}

// Ask answers question against the session's corpus. Gateway failures
// come back as a categorised Answer, not an error; the error return is
// reserved for caller mistakes (empty question, unknown document
// names) and context cancellation.
func (s *AssistantService) Ask(ctx context.Context, session *domain.Session, question string, opts domain.AskOptions) (*domain.Answer, error) {
	if session == nil {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrInvalidInput
	}

	logger.Section("Question")
	logger.Debug("Question: %q", question)

	// Greetings are answered locally, before any service checks, so
	// they work even with nothing configured and never consume a
	// remote call.
	if reply, ok := s.prompt.GreetingReply(question, session.Language, session.Corpus); ok {
		logger.Debug("Greeting short-circuit")
		session.AddExchange(question, reply)
		return &domain.Answer{Text: reply, Greeting: true}, nil
	}

	if s.completion == nil {
		return &domain.Answer{Category: domain.CategoryNotConfigured}, nil
	}
	if session.Corpus == nil || session.Corpus.Len() == 0 {
		return &domain.Answer{Category: domain.CategoryNoDocuments}, nil
	}

	docs, err := session.Corpus.Select(opts.DocumentNames)
	if err != nil {
		return nil, err
	}

	var bundle *domain.ContextBundle
	switch opts.Mode {
	case domain.ModeSequentialFill:
		bundle = AllocateSequential(docs, s.sequentialBudget)
	default:
		bundle = AllocateFairShare(docs, s.fairShareBudget)
	}
	logger.Debug("Context: %d excerpts, %d chars, %d truncated, %d skipped",
		len(bundle.Excerpts), bundle.TotalCharacters, len(bundle.Truncated), len(bundle.Skipped))

	req := driven.CompletionRequest{
		System:      s.prompt.BuildSystemPrompt(bundle, session.RecentHistory(historyWindow), session.Language),
		Question:    question,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	text, err := s.completion.Complete(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("Completion failed: %v", err)
		return &domain.Answer{
			Category:  categorise(err),
			Truncated: bundle.Truncated,
			Skipped:   bundle.Skipped,
		}, nil
	}

	answer := &domain.Answer{
		Text:      text,
		Truncated: bundle.Truncated,
		Skipped:   bundle.Skipped,
	}
	session.AddExchange(question, text)
	return answer, nil
}

// Speak renders text as spoken audio using the session's voice. The
// text is cleaned of markup, markers and emoji first so the spoken
// output is natural.
func (s *AssistantService) Speak(ctx context.Context, session *domain.Session, text string) ([]byte, error) {
	if s.completion == nil {
		return nil, domain.ErrNotImplemented
	}

	cleaned := textnorm.CleanForSpeech(text)
	if cleaned == "" {
		return nil, domain.ErrInvalidInput
	}

	voice := DefaultVoice
	if session != nil && session.Voice != "" {
		voice = session.Voice
	}
	return s.completion.SynthesizeSpeech(ctx, cleaned, voice)
}

// categorise maps a gateway error chain onto an answer category.
func categorise(err error) domain.AnswerCategory {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return domain.CategoryRateLimited
	case errors.Is(err, domain.ErrAuthFailed):
		return domain.CategoryAuthFailed
	case errors.Is(err, domain.ErrInvalidRequest):
		return domain.CategoryInvalidRequest
	default:
		return domain.CategoryUnknown
	}
}

