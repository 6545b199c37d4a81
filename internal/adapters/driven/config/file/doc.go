// Package file provides file-based configuration storage.
//
// Configuration lives in a TOML file under the docent config directory
// (~/.docent by default). Nested TOML tables are flattened to
// dot-notation keys, so [completion] model = "..." is read as
// "completion.model".
package file
