// Package htmlextract reduces a generated code blob to the HTML most likely
// to render in a sandboxed preview.
package htmlextract

import (
	"regexp"
	"strings"
)

var (
	filenameLineRe = regexp.MustCompile("(?i)^\\s*[^\\s<>`]+\\.html?[ \\t]*(?:\\r?\\n|$)")
	codeLabelRe    = regexp.MustCompile(`(?i)^\s*code[ \t]*:`)
	htmlFenceRe    = regexp.MustCompile("(?is)^\\s*```html[ \\t]*\\r?\\n(.*?)\\r?\\n?```\\s*$")
	plainFenceRe   = regexp.MustCompile("(?s)^\\s*```[ \\t]*\\r?\\n(.*?)\\r?\\n?```\\s*$")

	doctypeRe   = regexp.MustCompile(`(?i)<!doctype`)
	htmlOpenRe  = regexp.MustCompile(`(?i)<html`)
	htmlCloseRe = regexp.MustCompile(`(?i)</html>`)
)

type step func(string) string

var steps = []step{
	stripFilenameLine,
	stripCodeLabel,
	unwrap(htmlFenceRe),
	unwrap(plainFenceRe),
	sliceDocument,
}

// Extract applies, in order: dropping a leading line that is only a file
// name, dropping a leading "CODE:" label, unwrapping a whole-text ```html
// fence, unwrapping a whole-text untagged fence, and slicing from the first
// <!DOCTYPE (or else <html) through the first </html> after it. The pipeline
// is repeated until the text stops changing, so Extract(Extract(x)) equals
// Extract(x).
//
// Non-empty input never yields empty output: a step that would leave nothing
// is skipped, and text without any HTML marker is returned trimmed.
func Extract(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return raw
	}

	for {
		next := text
		for _, s := range steps {
			if out := strings.TrimSpace(s(next)); out != "" {
				next = out
			}
		}

		if next == text {
			return text
		}
		text = next
	}
}

func stripFilenameLine(s string) string {
	return filenameLineRe.ReplaceAllLiteralString(s, "")
}

func stripCodeLabel(s string) string {
	return codeLabelRe.ReplaceAllLiteralString(s, "")
}

func unwrap(re *regexp.Regexp) step {
	return func(s string) string {
		m := re.FindStringSubmatch(s)
		if m == nil {
			return s
		}
		return m[1]
	}
}

func sliceDocument(s string) string {
	loc := doctypeRe.FindStringIndex(s)
	if loc == nil {
		loc = htmlOpenRe.FindStringIndex(s)
	}
	if loc == nil {
		return s
	}

	doc := s[loc[0]:]
	if end := htmlCloseRe.FindStringIndex(doc); end != nil {
		return doc[:end[1]]
	}

	return doc
}
