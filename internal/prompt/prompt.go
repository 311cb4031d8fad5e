// Package prompt renders a user question into the fixed instructional
// template sent to the model. The template is a plain-text asset with a
// single {{user_question}} placeholder; substitution is verbatim, with no
// escaping and no truncation.
package prompt

import (
	"embed"
	"errors"
	"strings"
)

// Placeholder is the token the template must contain exactly once or more.
const Placeholder = "{{user_question}}"

//go:embed templates/query_prompt.txt
var templates embed.FS

var (
	// ErrTemplateMissing is returned when the template asset cannot be
	// loaded or does not contain the placeholder token.
	ErrTemplateMissing = errors.New("query prompt template missing")

	// ErrEmptyQuestion is returned when the question is empty or
	// whitespace-only after trimming.
	ErrEmptyQuestion = errors.New("question is empty")
)

// Renderer substitutes user questions into an instructional template.
// The zero value is not usable; construct with NewRenderer (embedded
// template) or NewRendererFromString (tests, overrides).
type Renderer struct {
	template string
}

// NewRenderer loads the embedded query template.
func NewRenderer() (*Renderer, error) {
	raw, err := templates.ReadFile("templates/query_prompt.txt")
	if err != nil {
		return nil, ErrTemplateMissing
	}
	return NewRendererFromString(string(raw))
}

// NewRendererFromString builds a Renderer around the given template text.
// The text must contain the Placeholder token.
func NewRendererFromString(template string) (*Renderer, error) {
	if !strings.Contains(template, Placeholder) {
		return nil, ErrTemplateMissing
	}
	return &Renderer{template: template}, nil
}

// Render trims the question and substitutes it for the placeholder.
// The trimmed question and the template are concatenated verbatim into the
// outbound prompt text.
func (r *Renderer) Render(question string) (string, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return "", ErrEmptyQuestion
	}
	return strings.ReplaceAll(r.template, Placeholder, q), nil
}
