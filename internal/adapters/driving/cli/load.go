package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

var loadFresh bool

var loadCmd = &cobra.Command{
	Use:   "load [dir]",
	Short: "Load documents from a directory",
	Long: `Discovers and extracts the supported documents in a directory and
prints a load report. Without an argument the configured documents
directory is used.

Results are cached per directory; use --fresh to re-extract.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadFresh, "fresh", false, "drop the cached corpus and re-extract")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	dir := currentSettings().Documents.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	ctx := cmd.Context()

	var (
		corpus *domain.Corpus
		report *domain.LoadReport
		err    error
	)
	if loadFresh {
		corpus, report, err = corpusService.Reload(ctx, dir)
	} else {
		corpus, report, err = corpusService.Load(ctx, dir)
	}
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	printReport(cmd, corpus, report)
	return nil
}

// printReport renders a load report with one line per document.
func printReport(cmd *cobra.Command, corpus *domain.Corpus, report *domain.LoadReport) {
	cmd.Printf("%s\n", report.Message)

	if corpus != nil && corpus.Len() > 0 {
		cmd.Println()
		for _, doc := range corpus.Documents() {
			cmd.Printf("  %s  (%s, %s, %s, %d words)\n",
				doc.Name,
				doc.Metadata.Kind.Label(),
				domain.FormatByteSize(doc.Metadata.ByteSize),
				countLabel(doc.Metadata),
				doc.Metadata.WordCount)
		}
	}

	if len(report.Failed) > 0 {
		cmd.Println("\nFailed:")
		for _, failure := range report.Failed {
			cmd.Printf("  %s: %s\n", failure.File, failure.Reason)
		}
	}

	if report.Succeeded > 0 {
		cmd.Printf("\nTotals: %d words, %s, about %d min of reading\n",
			report.Totals.Words,
			domain.FormatByteSize(report.Totals.Bytes),
			report.EstimatedReadingMinutes)
	}
}

// countLabel renders the page or paragraph count with the right noun
// for the document kind.
func countLabel(meta domain.DocumentMetadata) string {
	noun := "pages"
	if meta.Kind == domain.KindWordProcessor {
		noun = "paragraphs"
	}
	return fmt.Sprintf("%d %s", meta.PageOrParagraphCount, noun)
}
