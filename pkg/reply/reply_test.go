package reply_test

import (
	"testing"

	"github.com/germanamz/pagecraft/pkg/reply"
	"github.com/stretchr/testify/assert"
)

const page = "<!DOCTYPE html>\n<html lang=\"pl\">\n<body><h1>Portfolio</h1></body>\n</html>"

func TestParse_WellFormed(t *testing.T) {
	text := "OPIS: Strona portfolio z galerią.\nFILENAME: portfolio.html\nCODE:\n" + page

	got := reply.Parse(text)

	assert.Equal(t, reply.Reply{
		Description: "Strona portfolio z galerią.",
		Filename:    "portfolio.html",
		Code:        page,
	}, got)
	assert.True(t, got.HasCode())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want reply.Reply
	}{
		{
			name: "empty text",
			text: "",
			want: reply.Reply{Description: reply.DefaultDescription, Filename: reply.DefaultFilename},
		},
		{
			name: "plain continuation",
			text: "Once upon a time there was a page",
			want: reply.Reply{Description: reply.DefaultDescription, Filename: reply.DefaultFilename},
		},
		{
			name: "lowercase labels",
			text: "opis: sklep\nfilename: shop.html\ncode:\n<p>x</p>",
			want: reply.Reply{Description: "sklep", Filename: "shop.html", Code: "<p>x</p>"},
		},
		{
			name: "missing description",
			text: "FILENAME: a.html\nCODE:\n<p>a</p>",
			want: reply.Reply{Description: reply.DefaultDescription, Filename: "a.html", Code: "<p>a</p>"},
		},
		{
			name: "missing filename",
			text: "OPIS: opis\nCODE: <p>a</p>",
			want: reply.Reply{Description: "opis", Filename: reply.DefaultFilename, Code: "<p>a</p>"},
		},
		{
			name: "empty code",
			text: "OPIS: opis\nFILENAME: a.html\nCODE:\n   \n",
			want: reply.Reply{Description: "opis", Filename: "a.html"},
		},
		{
			name: "missing code",
			text: "OPIS: tylko opis\nFILENAME: a.html",
			want: reply.Reply{Description: "tylko opis", Filename: "a.html"},
		},
		{
			name: "code keeps labels appearing inside it",
			text: "OPIS: formularz\nCODE:\n<label>Opis: </label>\n<label>Filename: </label>",
			want: reply.Reply{
				Description: "formularz",
				Filename:    reply.DefaultFilename,
				Code:        "<label>Opis: </label>\n<label>Filename: </label>",
			},
		},
		{
			name: "multi-line description",
			text: "OPIS: pierwsza linia\ndruga linia\nFILENAME: x.html\nCODE:\nc",
			want: reply.Reply{Description: "pierwsza linia\ndruga linia", Filename: "x.html", Code: "c"},
		},
		{
			name: "word containing label is not a label",
			text: "OPIS: strona z barcode: 123\nCODE:\nc",
			want: reply.Reply{Description: "strona z barcode: 123", Filename: reply.DefaultFilename, Code: "c"},
		},
		{
			name: "preamble before labels",
			text: "Oto wynik.\n\nOPIS: opis\nFILENAME: f.html\nCODE:\n```html\n<p/>\n```",
			want: reply.Reply{Description: "opis", Filename: "f.html", Code: "```html\n<p/>\n```"},
		},
		{
			name: "bold labels",
			text: "**OPIS:** Strona portfolio.\n**FILENAME:** portfolio.html\n**CODE:**\n" + page,
			want: reply.Reply{Description: "Strona portfolio.", Filename: "portfolio.html", Code: page},
		},
		{
			name: "emphasis closed before colon",
			text: "__Opis__: sklep\n*Filename*: `shop.html`\n**Code**:\n<p>x</p>",
			want: reply.Reply{Description: "sklep", Filename: "shop.html", Code: "<p>x</p>"},
		},
		{
			name: "heading labels",
			text: "## OPIS:\nblog\n## FILENAME: blog.html\n### CODE:\n<p>b</p>",
			want: reply.Reply{Description: "blog", Filename: "blog.html", Code: "<p>b</p>"},
		},
		{
			name: "filename of decoration only",
			text: "FILENAME: **\nCODE:\nc",
			want: reply.Reply{Description: reply.DefaultDescription, Filename: reply.DefaultFilename, Code: "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reply.Parse(tt.text))
		})
	}
}
