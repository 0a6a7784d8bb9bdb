package ragchat

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving frames.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// Stream uses a pull-based iterator pattern over one chat response body.
// Cancellation flows through the context passed to Client.Chat.
//
// Next returns the next application event in transport order. Noise frames
// are skipped internally. It returns io.EOF when the body ends; a trailing
// partial frame is discarded. Any other error is a transport failure and is
// returned again by every later call.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Close() error
}
