// Package huggingface provides a Sender backed by a lazily constructed
// text-generation pipeline.
//
// The pipeline is built on first use and memoized per {model, token, device}.
// Construction can be slow, so it is guarded by a busy flag: a call that
// arrives while a pipeline is being built fails immediately with a
// [LoadError] instead of queueing behind it. The model ignores the labeled
// section instruction and produces plain continuation text.
package huggingface

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/germanamz/pagecraft/pkg/chats/chat"
	"github.com/germanamz/pagecraft/pkg/modeladapter"
)

// Task is the pipeline task requested from the loader.
const Task = "text-generation"

// Device is the hardware acceleration mode a pipeline runs on.
type Device string

const (
	DeviceWebGPU Device = "webgpu"
	DeviceWASM   Device = "wasm"
	DeviceCPU    Device = "cpu"
)

// Params are the generation parameters passed to the pipeline.
type Params struct {
	MaxNewTokens int
	Temperature  float64
	DoSample     bool
}

// DefaultParams are used when Options.Params is the zero value.
var DefaultParams = Params{MaxNewTokens: 200, Temperature: 0.7, DoSample: true}

// LoadOptions describe the pipeline a Loader should construct.
type LoadOptions struct {
	Task   string
	Model  string
	Token  string // Optional access token; empty means anonymous.
	Device Device
}

// Pipeline generates a continuation for a prompt.
type Pipeline interface {
	Generate(ctx context.Context, prompt string, p Params) (string, error)
}

// Loader constructs a Pipeline. It returns an error wrapping
// ErrDeviceUnavailable when the requested device cannot be used.
type Loader func(ctx context.Context, opts LoadOptions) (Pipeline, error)

var (
	// ErrBusy is reported when a pipeline is already being constructed.
	ErrBusy = errors.New("Model jest już ładowany...") //nolint:staticcheck // user-facing message

	// ErrDeviceUnavailable is returned by loaders that cannot use the
	// requested acceleration device.
	ErrDeviceUnavailable = errors.New("acceleration device unavailable")
)

// LoadError reports that the pipeline is busy or could not be constructed.
type LoadError struct {
	Busy bool
	Err  error
}

func (e *LoadError) Error() string {
	if e.Busy {
		return ErrBusy.Error()
	}
	return fmt.Sprintf("huggingface: load pipeline: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	if e.Busy {
		return ErrBusy
	}
	return e.Err
}

// Options configure an Adapter.
type Options struct {
	// Device is the acceleration mode requested from the loader.
	// Defaults to DeviceWebGPU.
	Device Device
	// FallbackDevice, when set, is tried once if the loader reports
	// ErrDeviceUnavailable for Device. There is no implicit fallback.
	FallbackDevice Device
	// Params override DefaultParams when non-zero.
	Params Params
}

type pipelineKey struct {
	model string
	token string
}

// Adapter owns the memoized pipeline. It is safe for concurrent use.
type Adapter struct {
	loader Loader
	opts   Options

	mu      sync.Mutex
	loading bool
	key     pipelineKey
	pipe    Pipeline
}

// New creates an Adapter that builds pipelines with loader.
func New(loader Loader, opts Options) *Adapter {
	if opts.Device == "" {
		opts.Device = DeviceWebGPU
	}
	if opts.Params == (Params{}) {
		opts.Params = DefaultParams
	}

	return &Adapter{loader: loader, opts: opts}
}

// Bind returns a Sender that generates with the given model and optional
// token. Binding a different model or token than the memoized pipeline was
// built for invalidates it for that and every later call; calls already
// holding the old pipeline finish on it.
func (a *Adapter) Bind(model, token string) modeladapter.Sender {
	key := pipelineKey{model: model, token: token}

	return modeladapter.SenderFunc(func(ctx context.Context, c *chat.Chat) (string, error) {
		return a.send(ctx, key, c)
	})
}

func (a *Adapter) send(ctx context.Context, key pipelineKey, c *chat.Chat) (string, error) {
	p, err := a.pipeline(ctx, key)
	if err != nil {
		return "", err
	}

	out, err := p.Generate(ctx, c.LastUser(), a.opts.Params)
	if err != nil {
		return "", fmt.Errorf("huggingface: %w", err)
	}

	return out, nil
}

// Loaded reports whether a pipeline is currently memoized.
func (a *Adapter) Loaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.pipe != nil
}

func (a *Adapter) pipeline(ctx context.Context, key pipelineKey) (Pipeline, error) {
	a.mu.Lock()
	if a.pipe != nil && a.key == key {
		p := a.pipe
		a.mu.Unlock()
		return p, nil
	}
	if a.loading {
		a.mu.Unlock()
		return nil, &LoadError{Busy: true}
	}
	a.loading = true
	a.pipe = nil
	a.mu.Unlock()

	var (
		p   Pipeline
		err error
	)

	// Runs on panic too, so a crashing loader cannot leave the flag set.
	defer func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		a.loading = false
		if err == nil && p != nil {
			a.key = key
			a.pipe = p
		}
	}()

	p, err = a.load(ctx, key)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	return p, nil
}

func (a *Adapter) load(ctx context.Context, key pipelineKey) (Pipeline, error) {
	opts := LoadOptions{
		Task:   Task,
		Model:  key.model,
		Token:  key.token,
		Device: a.opts.Device,
	}

	p, err := a.loader(ctx, opts)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrDeviceUnavailable) || a.opts.FallbackDevice == "" {
		return nil, err
	}

	opts.Device = a.opts.FallbackDevice
	return a.loader(ctx, opts)
}
