package fallback_test

import (
	"strings"
	"testing"

	"github.com/germanamz/pagecraft/pkg/fallback"
	"github.com/germanamz/pagecraft/pkg/htmlextract"
	"github.com/stretchr/testify/assert"
)

func TestDocument_Deterministic(t *testing.T) {
	prompt := "stwórz stronę portfolio"

	first := fallback.Document(prompt)
	for range 5 {
		assert.Equal(t, first, fallback.Document(prompt))
	}
}

func TestDocument_Shape(t *testing.T) {
	got := fallback.Document("stwórz stronę portfolio")

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(got), "</html>"))
	assert.Contains(t, got, `<html lang="pl">`)
	assert.Contains(t, got, "<title>"+fallback.Title+"</title>")
	assert.Contains(t, got, "stwórz stronę portfolio")
	assert.Contains(t, got, fallback.Notice)
	assert.Contains(t, got, `class="prompt"`)
}

func TestDocument_EscapesPrompt(t *testing.T) {
	got := fallback.Document(`<script>alert("x")</script> & więcej`)

	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
	assert.Contains(t, got, "&amp; więcej")
}

func TestDocument_DifferentPromptsDiffer(t *testing.T) {
	assert.NotEqual(t, fallback.Document("a"), fallback.Document("b"))
}

func TestDocument_SurvivesExtraction(t *testing.T) {
	got := fallback.Document("sklep")

	assert.Equal(t, strings.TrimSpace(got), htmlextract.Extract(got))
}
