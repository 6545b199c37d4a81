package services

import (
	"fmt"
	"strings"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// DefaultLanguage is used when a session names no language or an
// unknown one.
const DefaultLanguage = "en"

// greetingListLimit caps how many document names a greeting reply
// spells out before abbreviating.
const greetingListLimit = 3

// fallbackEnglish keeps the service usable when no catalog was wired.
var fallbackEnglish = domain.LanguageProfile{
	Code:          "en",
	Name:          "English",
	Instruction:   "Respond in English.",
	Greetings:     []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"},
	GreetingReply: "Hello! I have %d document(s) loaded: %s. Ask me anything about their content.",
	AndMore:       "and more",
}

// PromptService assembles completion requests: a manifest of the
// included documents, their marked excerpts, and response-language
// instructions. It also recognises conversational openers so a bare
// greeting never costs a remote call.
type PromptService struct {
	languages map[string]domain.LanguageProfile
}

// NewPromptService creates a prompt service over the given language
// table. A nil or empty table falls back to English only.
func NewPromptService(languages map[string]domain.LanguageProfile) *PromptService {
	if len(languages) == 0 {
		languages = map[string]domain.LanguageProfile{"en": fallbackEnglish}
	}
	return &PromptService{languages: languages}
}

// Profile returns the profile for lang, falling back to the default
// language.
func (s *PromptService) Profile(lang string) domain.LanguageProfile {
	if profile, ok := s.languages[lang]; ok {
		return profile
	}
	if profile, ok := s.languages[DefaultLanguage]; ok {
		return profile
	}
	return fallbackEnglish
}

// GreetingReply reports whether question is a conversational opener in
// any supported language and, if so, returns a canned corpus-aware
// reply in the session's language.
func (s *PromptService) GreetingReply(question, lang string, corpus *domain.Corpus) (string, bool) {
	normalised := normaliseGreeting(question)
	if normalised == "" {
		return "", false
	}

	matched := false
	for _, profile := range s.languages {
		for _, greeting := range profile.Greetings {
			if normalised == normaliseGreeting(greeting) {
				matched = true
				break
			}
		}
		if matched {
			break
		}
	}
	if !matched {
		return "", false
	}

	profile := s.Profile(lang)

	count := 0
	var names []string
	if corpus != nil {
		count = corpus.Len()
		names = corpus.Names()
	}
	list := strings.Join(firstN(names, greetingListLimit), ", ")
	if count > greetingListLimit {
		list += " " + profile.AndMore
	}

	return fmt.Sprintf(profile.GreetingReply, count, list), true
}

// BuildSystemPrompt renders the system message for one question: the
// document manifest, the marked excerpts, the recent conversation, the
// grounding instructions, and the response-language instruction.
func (s *PromptService) BuildSystemPrompt(bundle *domain.ContextBundle, history []domain.Exchange, lang string) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful assistant answering questions about a collection of documents.\n")

	sb.WriteString("\nAVAILABLE DOCUMENTS:\n")
	for _, excerpt := range bundle.Excerpts {
		fmt.Fprintf(&sb, "- %s (%s)\n", excerpt.DocName, excerpt.DocKind.Label())
	}

	sb.WriteString("\nDOCUMENT CONTENT:")
	for _, excerpt := range bundle.Excerpts {
		sb.WriteString("\n\n")
		sb.WriteString(excerpt.Marked())
	}

	if len(history) > 0 {
		sb.WriteString("\n\nRECENT CONVERSATION:\n")
		for _, exchange := range history {
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n", exchange.Question, exchange.Answer)
		}
	}

	sb.WriteString("\n\nINSTRUCTIONS:\n")
	sb.WriteString("- Answer based ONLY on the document content provided above\n")
	sb.WriteString("- Name the source document when you quote or reference specific material\n")
	sb.WriteString("- If several documents are relevant, draw on all of them\n")
	sb.WriteString("- If the answer is not in the documents, say so clearly and mention what the documents do cover\n")

	if instruction := s.Profile(lang).Instruction; instruction != "" {
		sb.WriteString("\n")
		sb.WriteString(instruction)
	}

	return sb.String()
}

// normaliseGreeting lower-cases and strips surrounding whitespace and
// punctuation so "Hello!", "¡Hola!" and "hello" compare equal.
func normaliseGreeting(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(s, "!.?,;:؟،¡¿")
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
