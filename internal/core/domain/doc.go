// Package domain defines the core business entities for Docent.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Document: A successfully extracted document with metadata
//   - Corpus: The ordered set of documents available for querying
//   - LoadReport: Summary of a corpus-loading attempt
//   - ContextBundle: Budgeted, attributed excerpts for one question
//   - Session: Caller-owned conversational state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend
// on domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, uuid (session identity)
//   - Cannot Import: Any other internal/ package
package domain
