// Package translate converts transcript segments between languages using
// an OpenAI-compatible chat completions endpoint. Segment count and order
// are contractual: the model is prompted for index-aligned output and the
// client rejects any response that breaks the invariant.
package translate
