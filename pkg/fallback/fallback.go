// Package fallback renders the local HTML document used when no provider
// produced usable code.
package fallback

import (
	"bytes"
	"embed"
	"html/template"
)

// Filename is the suggested file name for the fallback document.
const Filename = "index.html"

// Title is the document title.
const Title = "Strona wygenerowana przez AI"

// Notice tells the reader the document is a placeholder.
const Notice = "⚠️ To jest zapasowy szablon. Skonfiguruj prawdziwy model AI w ustawieniach, aby otrzymać lepsze rezultaty."

//go:embed templates/document.html.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/document.html.tmpl"))

type data struct {
	Title  string
	Prompt string
	Notice string
}

// Document returns a complete, self-contained HTML page embedding the
// escaped prompt. The output depends only on prompt.
func Document(prompt string) string {
	var buf bytes.Buffer

	// Only string fields are rendered, so execution cannot fail once the
	// template has parsed.
	if err := tmpl.Execute(&buf, data{Title: Title, Prompt: prompt, Notice: Notice}); err != nil {
		panic("fallback: render document: " + err.Error())
	}

	return buf.String()
}
