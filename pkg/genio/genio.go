// Package genio bridges push-based generator sessions into pull-based chunk
// streams.
//
// A Session is an opaque generation turn: one outbound message goes in, and
// the session fires incremental-fragment events, one final-message event,
// and a turn-idle event. Stream adapts that callback protocol into a finite
// sequence the caller drains with Next, in emission order, ending after idle.
//
// The package also ships Session implementations for OpenAI chat streaming,
// Gemini streaming, and a websocket realtime endpoint.
package genio

import (
	"context"
	"errors"
)

// ErrDone is returned by Next once the turn is over and every queued chunk
// has been delivered.
var ErrDone = errors.New("genio: done")

// Session is one opaque generator turn.
//
// Handlers registered through the On* methods run synchronously inside the
// session's dispatch; they must not block. Every On* call returns a cancel
// function that unregisters the handler and is safe to call more than once.
type Session interface {
	// Send submits the outbound message that starts the turn. A transport
	// failure is returned synchronously; no events fire afterwards.
	Send(ctx context.Context, text string) error

	// OnDelta fires for each incremental fragment, along with the cumulative
	// text so far.
	OnDelta(fn func(delta, text string)) (cancel func())

	// OnComplete fires once with the final assembled text.
	OnComplete(fn func(text string)) (cancel func())

	// OnIdle fires when the turn is over and no further events will follow.
	OnIdle(fn func()) (cancel func())
}

// ChunkKind discriminates the two chunk shapes.
type ChunkKind int

const (
	// ChunkDelta is an incremental fragment.
	ChunkDelta ChunkKind = iota
	// ChunkComplete is the final assembled message.
	ChunkComplete
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkDelta:
		return "delta"
	case ChunkComplete:
		return "complete"
	}
	return "unknown"
}

// Chunk is one unit of a streamed turn.
type Chunk struct {
	Kind ChunkKind
	// Delta is the incremental fragment; set on delta chunks only.
	Delta string
	// Text is the cumulative text so far on delta chunks, and the final
	// assembled text on complete chunks.
	Text string
}

// TextStream is a finite, non-restartable pull sequence of chunks.
type TextStream interface {
	// Next returns the next chunk in emission order. It blocks until a chunk
	// arrives and returns ErrDone once the turn is over. The stream defines
	// no internal timeout; callers needing bounded waits must impose one.
	Next() (*Chunk, error)
	// Close stops consumption early and releases the stream's event
	// subscriptions. Safe to call at any point, any number of times.
	Close() error
}
