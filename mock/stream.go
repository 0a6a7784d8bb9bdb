package mock

import (
	"io"

	"github.com/fwojciec/ragchat"
)

// Interface compliance check.
var _ ragchat.Stream = (*Stream)(nil)

// Stream is a test double for ragchat.Stream.
// Set the function fields for the methods you need. NextFn panics when nil to
// catch missing setup. CloseFn and StateFn are nil-safe (no-op and zero
// value) because code under test commonly calls defer stream.Close() and
// these methods rarely need custom behavior.
type Stream struct {
	NextFn  func() (ragchat.Event, error)
	StateFn func() ragchat.StreamState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (ragchat.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() ragchat.StreamState {
	if s.StateFn == nil {
		return ragchat.StreamStateNew
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Events returns a Stream that yields events in order, then err. A nil err
// ends the stream with io.EOF.
func Events(err error, events ...ragchat.Event) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (ragchat.Event, error) {
			if i < len(events) {
				evt := events[i]
				i++
				return evt, nil
			}
			if err != nil {
				return nil, err
			}
			return nil, io.EOF
		},
	}
}
