package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/germanamz/pagecraft/internal/config"
	"github.com/germanamz/pagecraft/pkg/engine"
	"github.com/germanamz/pagecraft/pkg/providers/huggingface"
	"github.com/germanamz/pagecraft/pkg/settings"
	"github.com/germanamz/pagecraft/pkg/telemetry"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// app bundles what every engine-backed command needs.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	engine   *engine.Engine
	shutdown telemetry.ShutdownFunc
}

// setup loads .env and config, configures logging and tracing, and builds the
// engine over the settings file with PAGECRAFT_* overrides.
func setup(ctx context.Context, flags commonFlags) (*app, error) {
	if err := loadDotEnv(flags.envFile); err != nil {
		return nil, fmt.Errorf("load %s: %w", flags.envFile, err)
	}

	var paths []string
	if flags.configDir != "" {
		paths = append(paths, flags.configDir)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(cfg.Level())
	if os.Getenv("DEBUG") == "1" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := log.Logger.With().Str("component", "pagecraft").Logger()

	tp, shutdown, err := telemetry.Setup(ctx, cfg.TelemetryURL)
	if err != nil {
		return nil, err
	}

	client := &http.Client{}
	src := settings.WithEnv(settings.NewFileStore(cfg.SettingsFile))

	eng := engine.New(src,
		engine.WithLogger(logger),
		engine.WithHTTPClient(client),
		engine.WithTracer(tp.Tracer(engine.TracerName)),
		engine.WithTimeout(cfg.Generation.Timeout),
		engine.WithPipelineLoader(huggingface.NewInferenceLoader(huggingface.InferenceConfig{
			Endpoint: cfg.HuggingFace.Endpoint,
			Client:   client,
		})),
		engine.WithPipelineOptions(cfg.HuggingFace.Options()),
	)

	return &app{cfg: cfg, log: logger, engine: eng, shutdown: shutdown}, nil
}

// close flushes pending spans.
func (a *app) close() {
	if err := a.shutdown(context.Background()); err != nil {
		a.log.Warn().Err(err).Msg("telemetry shutdown")
	}
}

// renderMarkdown converts markdown text to terminal-formatted output. Falls
// back to plain text if the renderer is unavailable.
func renderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}
