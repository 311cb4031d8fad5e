// Package gateway wraps the external generative-AI provider behind a small,
// stable completion contract. Callers see one error kind for every provider
// failure and are guaranteed a non-empty reply on success.
package gateway

import (
	"context"
	"errors"
)

// ErrGenerationFailed is the single error kind surfaced for any provider
// failure: transport errors, timeouts, non-2xx responses, malformed or
// empty payloads. Provider-specific detail goes to server logs only.
var ErrGenerationFailed = errors.New("answer generation failed")

// FallbackReply is returned when the provider responds successfully but the
// candidates carry no usable text. Returning a fixed string instead of an
// empty one keeps empty AI turns out of the transcript.
const FallbackReply = "I'm sorry, I couldn't generate a response at this time. Please try again."

// Completer is the stateless text-completion contract consumed by the chat
// orchestrator: one prompt in, one completion out. Implementations must
// honor ctx for cancellation and must never return ("", nil).
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
