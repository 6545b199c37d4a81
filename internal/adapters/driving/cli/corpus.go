package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the loaded document corpus",
	Long:  `Show what is loaded, preview document content, or drop the cache.`,
}

var corpusStatusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "Show the corpus load report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCorpusStatus,
}

var corpusPreviewCmd = &cobra.Command{
	Use:   "preview [document]",
	Short: "Print the start of a document's extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusPreview,
}

var corpusInvalidateCmd = &cobra.Command{
	Use:   "invalidate [dir]",
	Short: "Drop the cached corpus for a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCorpusInvalidate,
}

var corpusPreviewDir string

func init() {
	corpusPreviewCmd.Flags().StringVar(&corpusPreviewDir, "dir", "", "documents directory (default from settings)")
	corpusCmd.AddCommand(corpusStatusCmd)
	corpusCmd.AddCommand(corpusPreviewCmd)
	corpusCmd.AddCommand(corpusInvalidateCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusStatus(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	dir := currentSettings().Documents.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	corpus, report, err := corpusService.Load(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	cmd.Printf("Location: %s\n", report.Location)
	cmd.Printf("Status:   %s\n", report.Status)
	cmd.Printf("Summary:  %s\n", report.Message)

	if corpus.Len() > 0 {
		cmd.Println("\nDocuments:")
		for _, doc := range corpus.Documents() {
			cmd.Printf("  %s\n", doc.Name)
			cmd.Printf("    Kind:    %s (%s extraction)\n", doc.Metadata.Kind.Label(), doc.Metadata.ExtractionMethod)
			cmd.Printf("    Size:    %s\n", domain.FormatByteSize(doc.Metadata.ByteSize))
			cmd.Printf("    Content: %s, %d words, %d characters\n",
				countLabel(doc.Metadata), doc.Metadata.WordCount, doc.Metadata.CharacterCount)
			if doc.Metadata.TableCount > 0 {
				cmd.Printf("    Tables:  %d\n", doc.Metadata.TableCount)
			}
		}
	}

	if len(report.Failed) > 0 {
		cmd.Println("\nFailed:")
		for _, failure := range report.Failed {
			cmd.Printf("  %s: %s\n", failure.File, failure.Reason)
		}
	}
	return nil
}

func runCorpusPreview(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	settings := currentSettings()
	dir := corpusPreviewDir
	if dir == "" {
		dir = settings.Documents.Dir
	}

	corpus, _, err := corpusService.Load(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	name := args[0]
	doc, ok := corpus.Get(name)
	if !ok {
		return fmt.Errorf("document %q not loaded (have: %v): %w", name, corpus.Names(), domain.ErrNotFound)
	}

	cmd.Printf("%s (%s, %d words)\n\n", doc.Name, doc.Metadata.Kind.Label(), doc.Metadata.WordCount)
	cmd.Println(preview(doc.Text, settings.Documents.PreviewLength))
	return nil
}

func runCorpusInvalidate(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	dir := currentSettings().Documents.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	corpusService.Invalidate(dir)
	cmd.Printf("Corpus cache invalidated for %s\n", dir)
	return nil
}

// preview returns the first limit runes of text, marking a cut.
func preview(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
