// Package markdown extracts document structure from Japanese Markdown text
// and flattens it into plain prose for speech synthesis. It builds no document
// tree; each construct type is matched independently against the raw text.
package markdown

import (
	"regexp"
	"strings"
)

// Header is a single Markdown header with its level (1-6) and trimmed text.
type Header struct {
	Level int
	Text  string
}

// Structure holds all constructs recognized in a Markdown document.
// Every slice preserves document order. Absent constructs yield empty
// slices, never nil-vs-error distinctions.
type Structure struct {
	Headers       []Header
	BulletItems   []string
	NumberedItems []string
	CodeBlocks    []string
	RawContent    string
}

var (
	headerRe   = regexp.MustCompile(`(?m)^\s*(#{1,6})\s+(.+)$`)
	bulletRe   = regexp.MustCompile(`(?m)^\s*[-*+]\s+(.+)$`)
	numberedRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+(.+)$`)
	// Non-greedy: the first closing fence terminates a block. A dangling
	// opening fence matches nothing, so its content is dropped entirely.
	fenceRe = regexp.MustCompile("(?s)```\\w*\n(.*?)\n?```")
)

// Extract parses Markdown text into its structural parts.
// It never fails: any input, including empty, produces a valid Structure.
func Extract(text string) Structure {
	s := Structure{
		Headers:       []Header{},
		BulletItems:   []string{},
		NumberedItems: []string{},
		CodeBlocks:    []string{},
		RawContent:    text,
	}

	for _, m := range headerRe.FindAllStringSubmatch(text, -1) {
		s.Headers = append(s.Headers, Header{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}

	for _, m := range bulletRe.FindAllStringSubmatch(text, -1) {
		s.BulletItems = append(s.BulletItems, m[1])
	}

	for _, m := range numberedRe.FindAllStringSubmatch(text, -1) {
		s.NumberedItems = append(s.NumberedItems, m[1])
	}

	for _, m := range fenceRe.FindAllStringSubmatch(text, -1) {
		s.CodeBlocks = append(s.CodeBlocks, m[1])
	}

	return s
}

var (
	cleanFenceRe    = regexp.MustCompile("(?s)```.*?```")
	cleanHeaderRe   = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	cleanBulletRe   = regexp.MustCompile(`(?m)^\s*[-*+]\s+(.+)$`)
	cleanNumberedRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+(.+)$`)
	boldRe          = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe        = regexp.MustCompile(`\*(.+?)\*`)
	underBoldRe     = regexp.MustCompile(`__(.+?)__`)
	underItalicRe   = regexp.MustCompile(`_(.+?)_`)
	imageRe         = regexp.MustCompile(`!\[.*?\]\(.+?\)`)
	linkRe          = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
	blankRunRe      = regexp.MustCompile(`\n\s*\n`)
)

// CleanForSpeech strips Markdown formatting so the remaining prose can be
// fed to a speech engine. Code blocks are removed outright; headers and
// list items become sentences; emphasis markers and image references are
// dropped; links keep only their text.
func CleanForSpeech(text string) string {
	out := cleanFenceRe.ReplaceAllString(text, "")
	out = cleanHeaderRe.ReplaceAllString(out, "$1.")
	out = cleanBulletRe.ReplaceAllString(out, "$1.")
	out = cleanNumberedRe.ReplaceAllString(out, "$1.")
	out = boldRe.ReplaceAllString(out, "$1")
	out = italicRe.ReplaceAllString(out, "$1")
	out = underBoldRe.ReplaceAllString(out, "$1")
	out = underItalicRe.ReplaceAllString(out, "$1")
	// Images before links: the image pattern is a link pattern with a
	// leading bang.
	out = imageRe.ReplaceAllString(out, "")
	out = linkRe.ReplaceAllString(out, "$1")
	out = blankRunRe.ReplaceAllString(out, "\n")
	return strings.TrimSpace(out)
}
