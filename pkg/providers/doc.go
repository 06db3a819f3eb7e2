// Package providers groups the provider adapters pagecraft can dispatch to.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/pagecraft/pkg/providers/catalog]: the closed set of provider descriptors (ids, labels, supported and default models)
//   - [github.com/germanamz/pagecraft/pkg/providers/openai]: Chat Completions API adapter
//   - [github.com/germanamz/pagecraft/pkg/providers/anthropic]: Messages API adapter
//   - [github.com/germanamz/pagecraft/pkg/providers/ollama]: local Ollama daemon adapter
//   - [github.com/germanamz/pagecraft/pkg/providers/huggingface]: lazily constructed text-generation pipeline
//
// Every adapter implements [github.com/germanamz/pagecraft/pkg/modeladapter.Sender];
// the HTTP adapters embed [github.com/germanamz/pagecraft/pkg/modeladapter.ModelAdapter].
package providers
