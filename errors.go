package ragchat

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrEmptyMessage indicates a send with blank text.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrPending indicates a send while another exchange is still streaming.
	ErrPending = errors.New("an answer is still streaming")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrUnsupportedFile indicates an upload the service would reject.
	ErrUnsupportedFile = errors.New("only PDF and TXT files are supported")
)
