package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/pagecraft/pkg/engine"
	"github.com/germanamz/pagecraft/pkg/fallback"
	"github.com/germanamz/pagecraft/pkg/providers/catalog"
)

// spinnerFrames are braille characters for smooth animation.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

var errNotConfigured = errors.New("no AI provider configured; set provider, apiKey/baseUrl and model in the settings file or PAGECRAFT_* variables")

func runGenerate(ctx context.Context, args []string) error {
	fs := newFlagSet("generate", "[flags] <prompt>", "Generate a page from a description and write its code to a file.")
	var flags commonFlags
	flags.register(fs)
	out := fs.String("o", "", `output file ("-" for stdout; default: the suggested file name)`)
	force := fs.Bool("force", false, "overwrite an existing output file")
	plain := fs.Bool("plain", false, "disable the interactive spinner")
	_ = fs.Parse(args)

	prompt := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if prompt == "" {
		fs.Usage()
		return errors.New("prompt is required")
	}

	a, err := setup(ctx, flags)
	if err != nil {
		return err
	}
	defer a.close()

	if !a.engine.IsConfigured() {
		return errNotConfigured
	}

	var res engine.Result
	if *plain {
		res = a.engine.GenerateCode(ctx, prompt)
	} else {
		res, err = generateWithSpinner(ctx, a.engine, prompt)
		if err != nil {
			return err
		}
	}

	s, _ := a.engine.Settings()
	fmt.Fprint(os.Stderr, renderMarkdown(summary(res, catalog.DisplayName(s.Provider)), 100))

	if *out == "-" {
		_, err = io.WriteString(os.Stdout, res.Code+"\n")
		return err
	}

	path, err := writeCode(res, *out, *force)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, successStyle.Render("✓ Zapisano "+path))

	return nil
}

// summary renders the result header and description as markdown.
func summary(res engine.Result, provider string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", res.Filename)
	fmt.Fprintf(&sb, "%s\n\n", res.Message)
	fmt.Fprintf(&sb, "_%s · %d bajtów_\n", provider, len(res.Code))
	return sb.String()
}

// writeCode writes res.Code to out, or to the suggested file name in the
// working directory when out is empty. Existing files are kept unless force.
func writeCode(res engine.Result, out string, force bool) (string, error) {
	path := out
	if path == "" {
		path = safeFilename(res.Filename)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644) //nolint:gosec // output path is chosen by the user
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s already exists (use -force to overwrite or -o to choose another file)", path)
		}
		return "", err
	}

	if _, err := io.WriteString(f, res.Code); err != nil {
		_ = f.Close()
		return "", err
	}

	return path, f.Close()
}

// safeFilename keeps only the base name of a model-suggested file name so a
// reply cannot direct output outside the working directory. Names carrying
// whitespace or control characters are replaced with the default.
func safeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	switch base {
	case "", ".", "..", string(filepath.Separator):
		return fallback.Filename
	}
	if strings.IndexFunc(base, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return fallback.Filename
	}
	return base
}

// --- spinner program ---

type resultMsg engine.Result

type generateModel struct {
	spinner  spinner.Model
	generate func() engine.Result
	result   *engine.Result
	started  time.Time
	canceled bool
}

func newGenerateModel(generate func() engine.Result) generateModel {
	s := spinner.New()
	s.Spinner = spinner.Spinner{Frames: spinnerFrames, FPS: time.Second / 10}
	s.Style = spinnerStyle

	return generateModel{spinner: s, generate: generate, started: time.Now()}
}

func (m generateModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return resultMsg(m.generate()) })
}

func (m generateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		r := engine.Result(msg)
		m.result = &r
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			m.canceled = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m generateModel) View() string {
	if m.result != nil || m.canceled {
		return ""
	}

	elapsed := time.Since(m.started).Round(time.Second)
	return m.spinner.View() + " " + statusStyle.Render(fmt.Sprintf("Generuję stronę... (%s)", elapsed)) + "\n"
}

func generateWithSpinner(ctx context.Context, eng *engine.Engine, prompt string) (engine.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newGenerateModel(func() engine.Result { return eng.GenerateCode(ctx, prompt) })
	final, err := tea.NewProgram(m, tea.WithOutput(os.Stderr), tea.WithContext(ctx)).Run()
	if err != nil {
		return engine.Result{}, fmt.Errorf("spinner: %w", err)
	}

	fm, ok := final.(generateModel)
	if !ok || fm.canceled || fm.result == nil {
		return engine.Result{}, errors.New(errorStyle.Render("generation canceled"))
	}

	return *fm.result, nil
}
