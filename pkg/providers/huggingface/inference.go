package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/germanamz/pagecraft/pkg/modeladapter"
)

// DefaultEndpoint is the Hugging Face inference router. Any
// text-generation-inference compatible server exposing /models/{model} can be
// used instead.
const DefaultEndpoint = "https://router.huggingface.co/hf-inference"

// InferenceConfig configures NewInferenceLoader.
type InferenceConfig struct {
	// Endpoint serving /models/{model} text-generation requests.
	Endpoint string
	// Client is the HTTP client; nil falls back to http.DefaultClient.
	Client *http.Client
	// Devices lists the acceleration modes the endpoint serves. Empty
	// accepts any device.
	Devices []Device
}

// NewInferenceLoader returns a Loader whose pipelines run against a
// text-generation-inference compatible HTTP endpoint. Construction performs no
// I/O; the first Generate asks the endpoint to wait while the model loads, so
// each generation is a single request.
func NewInferenceLoader(cfg InferenceConfig) Loader {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	return func(_ context.Context, opts LoadOptions) (Pipeline, error) {
		if opts.Task != Task {
			return nil, fmt.Errorf("unsupported task %q", opts.Task)
		}
		if len(cfg.Devices) > 0 && !slices.Contains(cfg.Devices, opts.Device) {
			return nil, fmt.Errorf("%w: %s", ErrDeviceUnavailable, opts.Device)
		}

		p := &inferencePipeline{
			ModelAdapter: modeladapter.New(cfg.Endpoint, modeladapter.Auth{Key: opts.Token}, cfg.Client),
		}
		p.Name = opts.Model

		return p, nil
	}
}

type inferencePipeline struct {
	modeladapter.ModelAdapter
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
	Options    inferenceOptions    `json:"options"`
}

type inferenceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature,omitempty"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

func (p *inferencePipeline) path() string {
	return "/models/" + p.Name
}

// Generate returns the continuation of prompt.
func (p *inferencePipeline) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	req := inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			MaxNewTokens: params.MaxNewTokens,
			Temperature:  params.Temperature,
			DoSample:     params.DoSample,
		},
		Options: inferenceOptions{WaitForModel: true},
	}

	var raw json.RawMessage
	if err := p.PostJSON(ctx, p.path(), req, &raw); err != nil {
		return "", err
	}

	return decodeGeneration(raw)
}

// decodeGeneration accepts both the list form [{generated_text}] and a bare
// {generated_text} object.
func decodeGeneration(raw json.RawMessage) (string, error) {
	var list []generation
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", nil
		}
		return list[0].GeneratedText, nil
	}

	var single generation
	if err := json.Unmarshal(raw, &single); err != nil {
		return "", fmt.Errorf("decode generation: %w", err)
	}

	return single.GeneratedText, nil
}
