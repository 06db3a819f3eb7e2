// Package engine is the composition root of pagecraft. An [Engine] reads a
// fresh settings snapshot on every call, dispatches a single-message
// conversation to the adapter for the configured provider, parses the
// labeled reply and guarantees a usable [Result].
//
// GenerateCode never fails outward. Configuration problems, upstream errors,
// pipeline load failures and adapter panics are all folded into a Result whose
// Message carries the failure detail and whose Code is the local fallback
// document. Callers are expected to check [Engine.IsConfigured] first so that
// an unconfigured setup never spends a round trip.
package engine
