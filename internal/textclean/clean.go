// Package textclean normalizes cell text from experiment-platform CSV
// exports. Free-text cells (instruction screens, questionnaire labels)
// arrive with embedded HTML fragments, decomposed accents, and stray
// control characters; Clean turns them into plain display-ready text.
package textclean

import (
	"regexp"
	"strings"
	"unicode"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/text/unicode/norm"
)

// Tag patterns are deliberately non-greedy and not nested-aware: content
// between a pair of tags is captured literally, inner tags and all. A lone
// opening tag with no closer falls through to the generic strip.
var (
	boldTag      = regexp.MustCompile(`(?i)<\s*(?:b|strong)\s*>(.*?)<\s*/\s*(?:b|strong)\s*>`)
	italicTag    = regexp.MustCompile(`(?i)<\s*(?:i|em)\s*>(.*?)<\s*/\s*(?:i|em)\s*>`)
	underlineTag = regexp.MustCompile(`(?i)<\s*u\s*>(.*?)<\s*/\s*u\s*>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
)

// Cleaner normalizes cell values. The zero value is the default pipeline.
type Cleaner struct {
	// FullHTML converts the whole cell through a real HTML-to-markdown
	// renderer instead of the tag regexes. Handles nested and block-level
	// markup, at the cost of diverging from the regex pipeline's output
	// on edge cases. Off by default.
	FullHTML bool
}

// Clean returns the normalized form of value:
//
//  1. <b>/<strong>, <i>/<em>, and <u> pairs become **bold**, *italic*,
//     and _underline_ markdown
//  2. every remaining <...> tag is removed
//  3. the result is NFC-normalized
//  4. unprintable runes are dropped, except tab, newline, and carriage
//     return, which always survive
//
// Clean is deterministic, has no side effects, and is idempotent on text
// that is already clean.
func (c Cleaner) Clean(value string) string {
	text := value
	if c.FullHTML {
		if converted, err := htmltomarkdown.ConvertString(text); err == nil {
			text = converted
		}
	} else {
		text = boldTag.ReplaceAllString(text, "**${1}**")
		text = italicTag.ReplaceAllString(text, "*${1}*")
		text = underlineTag.ReplaceAllString(text, "_${1}_")
		text = anyTag.ReplaceAllString(text, "")
	}
	return stripUnprintable(norm.NFC.String(text))
}

// Clean normalizes value with the default pipeline.
func Clean(value string) string {
	return Cleaner{}.Clean(value)
}

func stripUnprintable(s string) string {
	// Fast path: most cells are plain ASCII with nothing to strip.
	clean := true
	for _, r := range s {
		if !unicode.IsPrint(r) && r != '\t' && r != '\n' && r != '\r' {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
