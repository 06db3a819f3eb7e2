package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/pagecraft/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ExitCodes(t *testing.T) {
	assert.Equal(t, 2, run(nil))
	assert.Equal(t, 2, run([]string{"bogus"}))
	assert.Equal(t, 0, run([]string{"help"}))
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PAGECRAFT_TEST_DOTENV=tak\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PAGECRAFT_TEST_DOTENV") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "tak", os.Getenv("PAGECRAFT_TEST_DOTENV"))
}

func TestSafeFilename(t *testing.T) {
	tests := map[string]string{
		"portfolio.html":        "portfolio.html",
		" shop.html ":           "shop.html",
		"../../etc/passwd":      "passwd",
		"site/pages/a.html":     "a.html",
		"":                      "index.html",
		"..":                    "index.html",
		"/":                     "index.html",
		"** portfolio.html\n**": "index.html",
		"my page.html":          "index.html",
		"page\x00.html":         "index.html",
	}

	for in, want := range tests {
		assert.Equal(t, want, safeFilename(in), "input %q", in)
	}
}

func TestWriteCode(t *testing.T) {
	t.Chdir(t.TempDir())

	res := engine.Result{Filename: "strona.html", Code: "<p>1</p>"}

	path, err := writeCode(res, "", false)
	require.NoError(t, err)
	assert.Equal(t, "strona.html", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>1</p>", string(data))

	_, err = writeCode(engine.Result{Filename: "strona.html", Code: "<p>2</p>"}, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = writeCode(engine.Result{Filename: "strona.html", Code: "<p>2</p>"}, "", true)
	require.NoError(t, err)
	data, _ = os.ReadFile(path)
	assert.Equal(t, "<p>2</p>", string(data))

	path, err = writeCode(res, "inny.html", false)
	require.NoError(t, err)
	assert.Equal(t, "inny.html", path)
}

func TestSummary(t *testing.T) {
	got := summary(engine.Result{Message: "Strona sklepu.", Filename: "shop.html", Code: "12345"}, "OpenAI")

	assert.Contains(t, got, "## shop.html")
	assert.Contains(t, got, "Strona sklepu.")
	assert.Contains(t, got, "OpenAI · 5 bajtów")
}

func TestPrintProviders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printProviders(&buf))

	out := buf.String()
	assert.Contains(t, out, "openai")
	assert.Contains(t, out, "gpt-4o-mini (domyślny)")
	assert.Contains(t, out, "ollama")
	assert.Contains(t, out, "baseUrl")
	assert.Contains(t, out, "microsoft/DialoGPT-medium (domyślny)")
}

func TestGenerateModel(t *testing.T) {
	m := newGenerateModel(func() engine.Result { return engine.Result{Code: "x"} })
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Generuję stronę")

	next, cmd := m.Update(resultMsg(engine.Result{Message: "ok", Code: "x"}))
	fm := next.(generateModel)
	require.NotNil(t, fm.result)
	assert.Equal(t, "ok", fm.result.Message)
	assert.NotNil(t, cmd)
	assert.Empty(t, fm.View())
}

func TestGenerateModel_Cancel(t *testing.T) {
	m := newGenerateModel(func() engine.Result { return engine.Result{} })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	fm := next.(generateModel)
	assert.True(t, fm.canceled)
	assert.Nil(t, fm.result)
	assert.NotNil(t, cmd)
}
