// Package modeladapter defines the contract and shared plumbing for provider
// adapters.
//
// It contains the [Sender] interface every adapter implements, the embeddable
// [ModelAdapter] base struct with HTTP helpers, auth and custom headers,
// [ProviderError], the error adapters return on transport failure or a
// non-success response, and Sender [Middleware] (timeout, panic recovery,
// logging, tracing). Concrete adapters live in separate packages under
// pkg/providers.
package modeladapter
