// Package reply parses the labeled-text replies requested from providers.
//
// A reply is expected to carry three sections in order:
//
//	OPIS: <description>
//	FILENAME: <name>
//	CODE:
//	<full source>
//
// Labels match case-insensitively when followed by a colon, with optional
// markdown decoration such as **OPIS:** or ## CODE: around them. Each section
// runs until the next label; CODE runs to the end of the text so labels that
// appear inside the generated source are left alone. Parsing never fails:
// missing sections take defaults.
package reply

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultDescription is used when the reply has no OPIS section.
const DefaultDescription = "Wygenerowano kod na podstawie Twojego promptu."

// DefaultFilename is used when the reply has no FILENAME section.
const DefaultFilename = "index.html"

// Labels of the protocol, in the order the model is asked to emit them.
const (
	LabelDescription = "OPIS"
	LabelFilename    = "FILENAME"
	LabelCode        = "CODE"
)

// labelRe matches a label together with any heading marks, emphasis and
// colon around it, so none of the decoration leaks into section values.
var labelRe = regexp.MustCompile(`(?i)(?:#+[ \t]*)?[*_]*(opis|filename|code)[*_]*[ \t]*:[*_]*`)

// valueDecoration is trimmed from the ends of filename values.
const valueDecoration = "*_`\"'"

// Reply is the structured form of a provider reply.
type Reply struct {
	Description string
	Filename    string
	// Code is empty when the reply had no usable CODE section.
	Code string
}

// HasCode reports whether the reply carries any code.
func (r Reply) HasCode() bool {
	return r.Code != ""
}

type section struct {
	label      string
	start, end int // value bounds in the source text
}

// Parse extracts the description, filename and code from text.
func Parse(text string) Reply {
	r := Reply{
		Description: DefaultDescription,
		Filename:    DefaultFilename,
	}

	for _, s := range sections(text) {
		v := strings.TrimSpace(text[s.start:s.end])
		if v == "" {
			continue
		}

		switch s.label {
		case LabelDescription:
			r.Description = v
		case LabelFilename:
			if f := strings.Trim(v, valueDecoration); f != "" {
				r.Filename = f
			}
		case LabelCode:
			r.Code = v
		}
	}

	return r
}

// sections locates the first occurrence of each label. Scanning stops at
// CODE since everything after it belongs to the code section.
func sections(text string) []section {
	matches := labels(text)

	var (
		out  []section
		seen = map[string]bool{}
	)

	for i, m := range matches {
		label := strings.ToUpper(text[m[2]:m[3]])
		end := len(text)
		if label != LabelCode && i+1 < len(matches) {
			end = matches[i+1][0]
		}

		if !seen[label] {
			seen[label] = true
			out = append(out, section{label: label, start: m[1], end: end})
		}

		if label == LabelCode {
			break
		}
	}

	return out
}

// labels returns the label matches that start a word, so "barcode:" is not a
// CODE label.
func labels(text string) [][]int {
	var out [][]int
	for _, m := range labelRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > 0 {
			r, _ := utf8.DecodeLastRuneInString(text[:m[0]])
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}
