package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestExtractText_FirstCandidateTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{
						genai.Text("Your glucose level "),
						genai.Text("is normal."),
					},
				},
			},
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("second candidate ignored")},
				},
			},
		},
	}

	got := ExtractText(resp)
	if got != "Your glucose level is normal." {
		t.Fatalf("ExtractText = %q", got)
	}
}

func TestExtractText_EmptyCases(t *testing.T) {
	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: nil}},
		}},
		{"no text parts", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{}}}},
		}},
		{"whitespace only", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{
				Parts: []genai.Part{genai.Text("   \n")},
			}}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractText(tc.resp); got != "" {
				t.Fatalf("ExtractText = %q, want empty", got)
			}
		})
	}
}

func TestExtractText_SkipsNonTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{
						genai.Blob{MIMEType: "image/png", Data: []byte{0x1}},
						genai.Text("only the text survives"),
					},
				},
			},
		},
	}
	if got := ExtractText(resp); got != "only the text survives" {
		t.Fatalf("ExtractText = %q", got)
	}
}

// stubCompleter verifies the Completer contract shape used by callers.
type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

func TestCompleterContract(t *testing.T) {
	var c Completer = stubCompleter{reply: FallbackReply}

	got, err := c.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got == "" {
		t.Fatalf("Completer returned empty reply")
	}

	c = stubCompleter{err: ErrGenerationFailed}
	if _, err := c.Complete(context.Background(), "prompt"); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}
