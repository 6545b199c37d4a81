package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is one question/answer pair in a session's history.
type Exchange struct {
	Question string
	Answer   string
	AskedAt  time.Time
}

// Session is the caller-owned conversational state. The core holds no
// global state: every operation receives the session it acts on, and
// concurrent sessions are isolated by construction.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// Language is the response language code (e.g. "en", "ar").
	Language string

	// Voice is the speech-synthesis voice name.
	Voice string

	// Corpus is the loaded document set, nil before the first load.
	Corpus *Corpus

	// Report is the load report paired with Corpus.
	Report *LoadReport

	// History holds past exchanges, oldest first.
	History []Exchange
}

// NewSession creates a session with a fresh identity.
func NewSession(language, voice string) *Session {
	return &Session{
		ID:       uuid.New().String(),
		Language: language,
		Voice:    voice,
	}
}

// SetCorpus publishes a freshly loaded corpus and report into the
// session, replacing any previous pair wholesale.
func (s *Session) SetCorpus(corpus *Corpus, report *LoadReport) {
	s.Corpus = corpus
	s.Report = report
}

// AddExchange appends a completed question/answer pair.
func (s *Session) AddExchange(question, answer string) {
	s.History = append(s.History, Exchange{
		Question: question,
		Answer:   answer,
		AskedAt:  time.Now(),
	})
}

// RecentHistory returns up to n most recent exchanges, oldest first.
func (s *Session) RecentHistory(n int) []Exchange {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}
	if n > len(s.History) {
		n = len(s.History)
	}
	out := make([]Exchange, n)
	copy(out, s.History[len(s.History)-n:])
	return out
}

// AskOptions narrows and shapes one question.
type AskOptions struct {
	// DocumentNames restricts the query to a resolved subset of the
	// corpus. Empty means the whole corpus.
	DocumentNames []string

	// Mode selects the allocation policy. Empty defaults to fair share.
	Mode AllocationMode
}

// AnswerCategory classifies a recovered gateway failure.
type AnswerCategory string

// Answer categories for recovered failures. Empty means success.
const (
	CategoryRateLimited    AnswerCategory = "rate-limited"
	CategoryAuthFailed     AnswerCategory = "auth-failed"
	CategoryInvalidRequest AnswerCategory = "invalid-request"
	CategoryUnknown        AnswerCategory = "unknown"
	CategoryNoDocuments    AnswerCategory = "no-documents"
	CategoryNotConfigured  AnswerCategory = "not-configured"
)

// Answer is the outcome of one question. Gateway failures are recovered
// into a category rather than propagated as errors.
type Answer struct {
	// Text is the answer. Empty when Category is set; the surface
	// renders the category as a localized message.
	Text string

	// Greeting is true when the question short-circuited to a canned
	// greeting without a gateway call.
	Greeting bool

	// Category classifies a recovered failure. Empty on success.
	Category AnswerCategory

	// Truncated and Skipped carry the bundle's budget notes for
	// display alongside the answer.
	Truncated []string
	Skipped   []string
}

// Failed reports whether the answer is a recovered failure message.
func (a *Answer) Failed() bool {
	return a.Category != ""
}
