package genio

import (
	"context"
	"errors"
	"sync"

	"github.com/studyforge/studyforge/pkg/pipe"
)

// Stream sends outbound on the session and returns the turn as a pull
// sequence. Subscriptions are registered before the send so no event can be
// missed, and they are released exactly once on every exit path: normal
// exhaustion, early Close, or an error.
//
// The idle event closes the queue's write side rather than tearing it down,
// so any delta or complete events dispatched before idle are still delivered
// before Next reports ErrDone.
func Stream(ctx context.Context, sess Session, outbound string) (TextStream, error) {
	q := pipe.New[*Chunk]()

	cancelDelta := sess.OnDelta(func(delta, text string) {
		q.Push(&Chunk{Kind: ChunkDelta, Delta: delta, Text: text})
	})
	cancelComplete := sess.OnComplete(func(text string) {
		q.Push(&Chunk{Kind: ChunkComplete, Text: text})
	})
	cancelIdle := sess.OnIdle(func() {
		q.CloseWrite()
	})

	s := &sessionStream{
		q: q,
		unsubscribe: func() {
			cancelDelta()
			cancelComplete()
			cancelIdle()
		},
	}

	if err := sess.Send(ctx, outbound); err != nil {
		s.release()
		q.CloseWithError(err)
		return nil, err
	}
	return s, nil
}

type sessionStream struct {
	q           *pipe.Queue[*Chunk]
	once        sync.Once
	unsubscribe func()
}

func (s *sessionStream) release() {
	s.once.Do(s.unsubscribe)
}

func (s *sessionStream) Next() (*Chunk, error) {
	chunk, err := s.q.Next()
	if err != nil {
		s.release()
		if errors.Is(err, pipe.ErrDone) {
			return nil, ErrDone
		}
		return nil, err
	}
	return chunk, nil
}

func (s *sessionStream) Close() error {
	s.release()
	s.q.CloseWithError(ErrDone)
	return nil
}
