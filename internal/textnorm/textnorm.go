// Package textnorm provides pure text normalisation for extracted
// document content. Clean is applied to every strategy's output before
// the minimum-content check, so all corpus text shares one shape.
package textnorm

import "strings"

// typographic maps curly quotes, long dashes and ellipses to their
// ASCII equivalents. Every replacement is ASCII, so a second pass
// finds nothing left to replace.
var typographic = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"‚", "'", // low single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"„", `"`, // low double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"…", "...", // ellipsis
	" ", " ", // no-break space
)

// Clean normalises raw extracted text. Rules, applied in order:
// typographic punctuation becomes ASCII, runs of whitespace collapse
// to single spaces within each line, and blank lines are dropped while
// paragraph breaks survive as single newlines.
//
// Clean is idempotent: Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = typographic.Replace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}
