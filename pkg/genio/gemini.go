package genio

import (
	"context"
	"iter"
	"log/slog"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"
)

var _ Session = (*GeminiSession)(nil)

// GeminiSession runs one generation turn against the Gemini API. Text parts
// from each streamed response become delta events; a clean finish produces
// the complete event before idle.
type GeminiSession struct {
	hub

	Client *genai.Client
	Model  string

	// System is an optional system instruction for the turn.
	System string
}

func (s *GeminiSession) Send(ctx context.Context, text string) error {
	var cfg *genai.GenerateContentConfig
	if s.System != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{genai.NewPartFromText(s.System)},
			},
		}
	}
	itr := s.Client.Models.GenerateContentStream(ctx, s.Model, genai.Text(text), cfg)

	// Pull the first response synchronously so connection and auth failures
	// surface from Send rather than being swallowed by the pump goroutine.
	next, stop := iter.Pull2(itr)
	resp, err, ok := next()
	if ok && err != nil {
		stop()
		if e, isAPI := err.(*apierror.APIError); isAPI {
			err = e.Unwrap()
		}
		return err
	}

	go s.pull(resp, ok, next, stop)
	return nil
}

func (s *GeminiSession) pull(first *genai.GenerateContentResponse, ok bool, next func() (*genai.GenerateContentResponse, error, bool), stop func()) {
	defer stop()
	defer s.emitIdle()

	var total strings.Builder
	resp := first
	for ok {
		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			var sb strings.Builder
			for _, p := range resp.Candidates[0].Content.Parts {
				if p.Text != "" {
					sb.WriteString(p.Text)
				}
			}
			if sb.Len() > 0 {
				total.WriteString(sb.String())
				s.emitDelta(sb.String(), total.String())
			}
		}

		var err error
		resp, err, ok = next()
		if err != nil {
			if e, isAPI := err.(*apierror.APIError); isAPI {
				err = e.Unwrap()
			}
			slog.Warn("genio: gemini stream ended with error", "model", s.Model, "err", err)
			return
		}
	}
	s.emitComplete(total.String())
}
