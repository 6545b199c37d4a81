package domain

import "fmt"

// LoadStatus is the user-visible outcome of a corpus load.
type LoadStatus string

// Load outcomes. These are statuses, not errors: a load that finds no
// files or fails every extraction still returns a report.
const (
	// LoadStatusEmpty means no supported files were discovered.
	LoadStatusEmpty LoadStatus = "empty"

	// LoadStatusFailed means files were discovered but none extracted.
	LoadStatusFailed LoadStatus = "failed"

	// LoadStatusPartial means some files extracted and some failed.
	LoadStatusPartial LoadStatus = "partial"

	// LoadStatusFull means every discovered file extracted.
	LoadStatusFull LoadStatus = "full"
)

// FileFailure records one file that could not be extracted.
type FileFailure struct {
	// File is the file name.
	File string

	// Reason is a human-readable description of the failure.
	Reason string
}

// LoadTotals aggregates statistics across all successful documents.
type LoadTotals struct {
	// Words is the total word count.
	Words int

	// Pages is the total page (PDF) or paragraph (word-processor) count.
	Pages int

	// Bytes is the total on-disk size.
	Bytes int64
}

// LoadReport summarises one corpus-loading attempt. It is computed once
// per load cycle and read-only afterwards.
type LoadReport struct {
	// Location is the directory that was loaded.
	Location string

	// FilesDiscovered is the number of supported files found.
	FilesDiscovered int

	// Succeeded is the number of files that extracted successfully.
	Succeeded int

	// Failed lists the files that could not be extracted.
	Failed []FileFailure

	// Totals aggregates statistics of the successful documents.
	Totals LoadTotals

	// EstimatedReadingMinutes is max(1, Totals.Words/200), zero when
	// nothing was loaded.
	EstimatedReadingMinutes int

	// Status is the overall outcome.
	Status LoadStatus

	// Message is a human-readable summary of the outcome.
	Message string
}

// readingWordsPerMinute is the assumed reading speed for the estimate.
const readingWordsPerMinute = 200

// EstimateReadingMinutes converts a word count to whole minutes of
// reading time, never less than one minute for a non-empty corpus.
func EstimateReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	minutes := words / readingWordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// FormatByteSize renders a byte count in human-readable form.
func FormatByteSize(size int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case size >= gb:
		return fmt.Sprintf("%.1f GB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.1f KB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
