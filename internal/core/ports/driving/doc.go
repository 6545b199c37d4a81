// Package driving defines the interfaces through which the outside
// world calls INTO core.
//
// These are the "driving" or "primary" ports in hexagonal
// architecture. The CLI and MCP adapters depend on these interfaces;
// core services implement them.
//
//   - CorpusService: Discover, extract, and cache document collections
//   - AssistantService: Question answering and speech over a session
//   - SettingsService: Stored application settings
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
