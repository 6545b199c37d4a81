// Package packs embeds the built-in language pack files.
package packs

import "embed"

// FS contains all built-in language packs embedded at compile time.
//
//go:embed *.yaml
var FS embed.FS
