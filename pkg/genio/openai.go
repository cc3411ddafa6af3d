package genio

import (
	"context"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"
)

var _ Session = (*OpenAISession)(nil)

// OpenAISession runs one generation turn against the OpenAI chat-completions
// streaming API. Each SSE content delta becomes a delta event; when the
// stream finishes cleanly the assembled text fires as the complete event,
// followed by idle.
//
// A turn that dies mid-stream still idles: the partial text already
// delivered through deltas is all the caller gets, and its decode decides
// whether the attempt is salvageable.
type OpenAISession struct {
	hub

	Client *openai.Client
	Model  string

	// System is an optional system prompt sent ahead of the outbound message.
	System string
}

func (s *OpenAISession) Send(ctx context.Context, text string) error {
	var msgs []openai.ChatCompletionMessageParamUnion
	if s.System != "" {
		msgs = append(msgs, openai.SystemMessage(s.System))
	}
	msgs = append(msgs, openai.UserMessage(text))

	stream := s.Client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Messages: msgs,
		Model:    s.Model,
	})
	if err := stream.Err(); err != nil {
		return err
	}

	go s.pull(stream)
	return nil
}

func (s *OpenAISession) pull(stream *ssestream.Stream[openai.ChatCompletionChunk]) {
	defer s.emitIdle()

	var total strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if d := chunk.Choices[0].Delta.Content; d != "" {
			total.WriteString(d)
			s.emitDelta(d, total.String())
		}
	}
	if err := stream.Err(); err != nil {
		slog.Warn("genio: openai stream ended with error", "model", s.Model, "err", err)
		return
	}
	s.emitComplete(total.String())
}
