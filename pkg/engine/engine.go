package engine

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/germanamz/pagecraft/pkg/chats/chat"
	"github.com/germanamz/pagecraft/pkg/chats/message"
	"github.com/germanamz/pagecraft/pkg/fallback"
	"github.com/germanamz/pagecraft/pkg/modeladapter"
	"github.com/germanamz/pagecraft/pkg/providers/huggingface"
	"github.com/germanamz/pagecraft/pkg/reply"
	"github.com/germanamz/pagecraft/pkg/settings"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of the default tracer.
const TracerName = "github.com/germanamz/pagecraft/pkg/engine"

const failureMessage = "Wystąpił błąd podczas generowania kodu: %s. Używam zapasowego generatora."

const instructionTemplate = `Stwórz kompletną stronę internetową na podstawie tego opisu: "%s".

Wygeneruj:
1. Kompletny kod HTML z CSS i JavaScript
2. Responsywny design
3. Nowoczesny wygląd
4. Działające funkcjonalności

Odpowiedz w formacie:
OPIS: [krótki opis tego co utworzyłeś]
FILENAME: [nazwa pliku, np. index.html]
CODE:
[pełny kod HTML]`

// Instruction wraps prompt into the user message asking for the labeled
// OPIS/FILENAME/CODE reply.
func Instruction(prompt string) string {
	return fmt.Sprintf(instructionTemplate, prompt)
}

// Result is the outcome of a generation. Code is never empty.
type Result struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Code     string `json:"code"`
}

// Fallback returns the degraded Result for prompt, explaining err.
func Fallback(prompt string, err error) Result {
	return Result{
		Message:  fmt.Sprintf(failureMessage, detail(err)),
		Filename: fallback.Filename,
		Code:     fallback.Document(prompt),
	}
}

// Engine orchestrates generations. It holds no per-call state; the only
// long-lived resource is the huggingface adapter with its memoized pipeline.
type Engine struct {
	src       settings.Source
	log       zerolog.Logger
	tracer    trace.Tracer
	client    *http.Client
	timeout   time.Duration
	overrides Adapters
	adapters  Adapters
	loader    huggingface.Loader
	hfOpts    huggingface.Options
	hf        *huggingface.Adapter
}

// New creates an Engine reading settings from src.
func New(src settings.Source, opts ...Option) *Engine {
	e := &Engine{
		src:    src,
		log:    zerolog.Nop(),
		tracer: trace.NewNoopTracerProvider().Tracer(TracerName),
	}

	for _, o := range opts {
		o(e)
	}

	if e.loader == nil {
		e.loader = huggingface.NewInferenceLoader(huggingface.InferenceConfig{Client: e.client})
	}
	e.hf = huggingface.New(e.loader, e.hfOpts)
	e.adapters = e.overrides.merge(e.builtinAdapters())

	return e
}

// Settings returns the current settings snapshot.
func (e *Engine) Settings() (settings.Settings, error) {
	s, err := e.src.Snapshot()
	if err != nil {
		return settings.Settings{}, fmt.Errorf("engine: settings: %w", err)
	}
	return s, nil
}

// IsConfigured reports whether the current settings can drive a generation.
// A snapshot error counts as not configured.
func (e *Engine) IsConfigured() bool {
	s, err := e.src.Snapshot()
	if err != nil {
		return false
	}
	return settings.IsConfigured(s)
}

// GenerateCode asks the configured provider for a page matching prompt. It
// never fails: every error is folded into the returned Result.
func (e *Engine) GenerateCode(ctx context.Context, prompt string) (res Result) {
	start := time.Now()
	log := e.log.With().Str("request_id", uuid.NewString()).Logger()

	ctx, span := e.tracer.Start(ctx, "engine.GenerateCode")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("engine panicked: %v", r)
			log.Error().Err(err).Dur("duration", time.Since(start)).Msg("generation failed")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			res = Fallback(prompt, err)
		}
	}()

	s, err := e.Settings()
	if err != nil {
		return e.fail(span, log, start, prompt, err)
	}

	model := s.ModelOrDefault()
	log = log.With().Str("provider", string(s.Provider)).Str("model", model).Logger()
	span.SetAttributes(
		attribute.String("provider", string(s.Provider)),
		attribute.String("model", model),
	)

	sender, err := e.sender(s, log)
	if err != nil {
		return e.fail(span, log, start, prompt, err)
	}

	raw, err := sender.Send(ctx, chat.New(message.User(Instruction(prompt))))
	if err != nil {
		return e.fail(span, log, start, prompt, err)
	}

	parsed := reply.Parse(raw)
	res = Result{
		Message:  parsed.Description,
		Filename: parsed.Filename,
		Code:     parsed.Code,
	}
	if !parsed.HasCode() {
		log.Warn().Msg("reply carried no code, using fallback document")
		res.Code = fallback.Document(prompt)
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Str("filename", res.Filename).
		Bool("fallback_code", !parsed.HasCode()).
		Msg("generation finished")

	return res
}

// sender validates s and builds its adapter wrapped in the call middleware.
func (e *Engine) sender(s settings.Settings, log zerolog.Logger) (modeladapter.Sender, error) {
	if err := validate(s); err != nil {
		return nil, err
	}

	f, err := e.adapters.factory(s.Provider)
	if err != nil {
		return nil, err
	}

	base, err := f(s)
	if err != nil {
		return nil, fmt.Errorf("engine: %s adapter: %w", s.Provider, err)
	}

	return modeladapter.Chain(base,
		modeladapter.Tracing(e.tracer,
			attribute.String("provider", string(s.Provider)),
			attribute.String("model", s.ModelOrDefault()),
		),
		modeladapter.Logger(log),
		modeladapter.Recovery(),
		modeladapter.Timeout(e.timeout),
	), nil
}

func (e *Engine) fail(span trace.Span, log zerolog.Logger, start time.Time, prompt string, err error) Result {
	log.Warn().Err(err).Dur("duration", time.Since(start)).Msg("generation failed, using fallback")
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return Fallback(prompt, err)
}
