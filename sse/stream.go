package sse

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/ragchat"
)

// stream implements [ragchat.Stream] over a chat response body.
type stream struct {
	body    io.ReadCloser
	scanner *Scanner
	ctx     context.Context
	state   ragchat.StreamState
	err     error // terminal error, if any
}

// Interface compliance check.
var _ ragchat.Stream = (*stream)(nil)

// NewStream returns a Stream that decodes events from body. Closing the
// stream closes body. When ctx is cancelled mid-read, Next returns the
// context's error.
func NewStream(ctx context.Context, body io.ReadCloser) ragchat.Stream {
	return &stream{
		body:    body,
		scanner: NewScanner(body),
		ctx:     ctx,
		state:   ragchat.StreamStateNew,
	}
}

// Next reads lines until one parses into an event.
// Returns io.EOF when the body ends.
func (s *stream) Next() (ragchat.Event, error) {
	switch s.state {
	case ragchat.StreamStateComplete:
		return nil, io.EOF
	case ragchat.StreamStateError:
		return nil, s.err
	case ragchat.StreamStateClosed:
		return nil, ragchat.ErrStreamClosed
	}

	for {
		if err := s.ctx.Err(); err != nil {
			s.terminate(err)
			return nil, s.err
		}
		line, err := s.scanner.Next()
		if err != nil {
			s.terminate(err)
			if s.state == ragchat.StreamStateComplete {
				return nil, io.EOF
			}
			return nil, s.err
		}

		s.state = ragchat.StreamStateStreaming

		if evt, ok := Parse(line); ok {
			return evt, nil
		}
		// Keep-alive or noise frame - keep reading.
	}
}

// State returns the current stream state.
func (s *stream) State() ragchat.StreamState {
	return s.state
}

// Close closes the underlying response body.
func (s *stream) Close() error {
	if s.state != ragchat.StreamStateComplete && s.state != ragchat.StreamStateError {
		s.state = ragchat.StreamStateClosed
	}
	return s.body.Close()
}

// terminate records the end of the body or a terminal error.
func (s *stream) terminate(err error) {
	if errors.Is(err, io.EOF) {
		s.state = ragchat.StreamStateComplete
		return
	}
	s.state = ragchat.StreamStateError
	// A cancelled request surfaces as a read error from the transport;
	// report the context's error so callers can tell the two apart.
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		s.err = ctxErr
		return
	}
	s.err = fmt.Errorf("sse: %w", err)
}
