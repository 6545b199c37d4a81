package textnorm

import (
	"regexp"
	"strings"
)

var (
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headerRe     = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	bulletRe     = regexp.MustCompile(`(?m)^[-*\x{2022}][ \t]+`)
	docMarkerRe  = regexp.MustCompile(`(?m)^=== (?:DOCUMENT:|END OF) .*===$`)
)

// CleanForSpeech prepares answer text for speech synthesis: markdown
// structure, document markers and emoji read badly aloud, so they are
// stripped and the remaining text is collapsed to plain sentences.
func CleanForSpeech(text string) string {
	text = codeFenceRe.ReplaceAllString(text, " ")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = docMarkerRe.ReplaceAllString(text, " ")
	text = headerRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = strings.ReplaceAll(text, "~~", "")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, "_", "")
	text = stripEmoji(text)

	return strings.Join(strings.Fields(text), " ")
}

// stripEmoji removes pictographic runes and variation selectors.
func stripEmoji(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if isEmoji(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // arrows, stars
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
		return true
	default:
		return false
	}
}
