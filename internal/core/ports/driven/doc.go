// Package driven defines the interfaces that core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal
// architecture. Core services depend on these interfaces, and
// infrastructure adapters implement them.
//
// # Required Interfaces
//
//   - ExtractionStrategy: One algorithm for turning file bytes into text
//   - CorpusCache: Memoisation of load results keyed by location
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CompletionService: Remote completion/speech gateway. Without it,
//     questions (beyond greetings) and speech synthesis are disabled.
//   - ModuleRegistry: Student/module spreadsheet lookup. Without it,
//     the --student flow is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
