package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// Gemini is a Completer backed by the Google generative-AI API. One
// long-lived instance is constructed at process start and injected into the
// orchestrator; the underlying client is safe for concurrent use.
//
// The gateway keeps no session state: every Complete call is a single
// GenerateContent round-trip bounded by Timeout. There is no retry policy.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini constructs the provider client. The model name and per-call
// timeout come from configuration.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Close releases the underlying client connection.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Complete sends the rendered prompt and returns the completion text.
// Every provider failure (transport error, timeout, empty response) is
// folded into ErrGenerationFailed; a success with no text parts yields the
// fixed FallbackReply rather than an empty string.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("model", g.model).Msg("gemini completion failed")
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text := ExtractText(resp)
	if text == "" {
		log.Warn().Str("model", g.model).Msg("gemini response had no text candidates")
		return FallbackReply, nil
	}
	return text, nil
}

// ExtractText concatenates the text parts of the first candidate. It
// returns "" when the response carries no usable text.
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}
