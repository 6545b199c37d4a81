package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

var (
	askDocs    []string
	askMode    string
	askLang    string
	askDir     string
	askStudent string
	askCode    string
	askSpeak   bool
	askOut     string
	askVoice   string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the loaded documents",
	Long: `Asks a question against the documents in the configured directory.
The documents are extracted locally; the question and document excerpts
are sent to the completion service for the answer.

Use --doc to restrict the question to named documents, or --student to
resolve the allowed documents from the module registry (the access code
is prompted for without echo unless --code is given).`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringArrayVar(&askDocs, "doc", nil, "restrict the question to this document (repeatable)")
	askCmd.Flags().StringVar(&askMode, "mode", "fair", "context allocation: fair or sequential")
	askCmd.Flags().StringVar(&askLang, "lang", "", "response language code (default from settings)")
	askCmd.Flags().StringVar(&askDir, "dir", "", "documents directory (default from settings)")
	askCmd.Flags().StringVar(&askStudent, "student", "", "student ID for registry-gated document selection")
	askCmd.Flags().StringVar(&askCode, "code", "", "registry access code (prompted when omitted)")
	askCmd.Flags().BoolVar(&askSpeak, "speak", false, "synthesise the answer to an mp3 file")
	askCmd.Flags().StringVar(&askOut, "out", "answer.mp3", "output path for --speak")
	askCmd.Flags().StringVar(&askVoice, "voice", "", "speech voice for --speak (default from settings)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	question := args[0]
	settings := currentSettings()

	lang := askLang
	if lang == "" {
		lang = settings.Language
	}
	dir := askDir
	if dir == "" {
		dir = settings.Documents.Dir
	}
	voice := askVoice
	if voice == "" {
		voice = settings.Speech.Voice
	}

	mode, err := parseMode(askMode)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	corpus, report, err := corpusService.Load(ctx, dir)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	docs := askDocs
	if askStudent != "" {
		docs, err = resolveStudentDocs(cmd, corpus)
		if err != nil {
			return err
		}
	}

	session := domain.NewSession(lang, voice)
	session.SetCorpus(corpus, report)

	answer, err := assistantService.Ask(ctx, session, question, domain.AskOptions{
		DocumentNames: docs,
		Mode:          mode,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("unknown document in selection (have: %s): %w",
				strings.Join(corpus.Names(), ", "), err)
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	if answer.Failed() {
		cmd.Println(messageFor(lang, answer.Category))
		printConfigHint(cmd, answer.Category)
		return nil
	}

	cmd.Println(answer.Text)
	printBudgetNotes(cmd, answer)

	if askSpeak {
		return speakAnswer(cmd, session, answer.Text)
	}
	return nil
}

// resolveStudentDocs resolves the student's module assignment and
// narrows it to the documents actually present in the corpus.
func resolveStudentDocs(cmd *cobra.Command, corpus *domain.Corpus) ([]string, error) {
	if moduleRegistry == nil {
		return nil, errors.New("module registry not configured")
	}

	code := askCode
	if code == "" {
		cmd.Print("Access code: ")
		code = readPassword()
		cmd.Println()
	}

	assignment, err := moduleRegistry.Resolve(cmd.Context(), askStudent, code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccessDenied):
			return nil, fmt.Errorf("access code does not match the registry: %w", err)
		case errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("student not in the registry: %w", err)
		default:
			return nil, fmt.Errorf("registry lookup failed: %w", err)
		}
	}

	cmd.Printf("Programme: %s\nModule: %s\n\n", assignment.Programme, assignment.Module)

	var present []string
	for _, name := range assignment.Files {
		if _, ok := corpus.Get(name); ok {
			present = append(present, name)
		} else {
			cmd.Printf("Note: registry file %s is not in the documents directory\n", name)
		}
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("none of the module's documents are present: %s",
			strings.Join(assignment.Files, ", "))
	}
	return present, nil
}

// speakAnswer writes the spoken answer to the --out path.
func speakAnswer(cmd *cobra.Command, session *domain.Session, text string) error {
	audio, err := assistantService.Speak(cmd.Context(), session, text)
	if err != nil {
		if errors.Is(err, domain.ErrNotImplemented) {
			return errors.New("speech synthesis needs a configured completion service")
		}
		return fmt.Errorf("speech synthesis failed: %w", err)
	}
	if err := os.WriteFile(askOut, audio, 0o644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	cmd.Printf("\nAudio written to %s (%s)\n", askOut, domain.FormatByteSize(int64(len(audio))))
	return nil
}

// printBudgetNotes surfaces which documents were cut or skipped to fit
// the context budget.
func printBudgetNotes(cmd *cobra.Command, answer *domain.Answer) {
	if len(answer.Truncated) > 0 {
		cmd.Printf("\nNote: content truncated for: %s\n", strings.Join(answer.Truncated, ", "))
	}
	if len(answer.Skipped) > 0 {
		cmd.Printf("Note: skipped entirely: %s\n", strings.Join(answer.Skipped, ", "))
	}
}

// printConfigHint points at the fix for configuration-shaped failures.
func printConfigHint(cmd *cobra.Command, category domain.AnswerCategory) {
	switch category {
	case domain.CategoryNotConfigured:
		cmd.Println("Run 'docent config set completion.api_key <key>' to configure.")
	case domain.CategoryNoDocuments:
		cmd.Println("Run 'docent load' to see what the documents directory holds.")
	}
}

// parseMode maps the --mode flag onto an allocation policy.
func parseMode(mode string) (domain.AllocationMode, error) {
	switch mode {
	case "", "fair", string(domain.ModeFairShare):
		return domain.ModeFairShare, nil
	case "sequential", string(domain.ModeSequentialFill):
		return domain.ModeSequentialFill, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want fair or sequential)", mode)
	}
}
