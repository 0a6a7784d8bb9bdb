package ragchat

// Event is a sealed interface representing one decoded stream event.
// Frame-level noise never becomes an Event; it is dropped by the parser.
// Transport failures come from Stream.Next's error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventChunk carries an incremental piece of answer text for a track.
type EventChunk struct {
	Mode Mode
	Text string
}

func (EventChunk) event() {}

// EventError signals that the exchange failed server-side. Mode is set when
// the service attributes the failure to one retrieval strategy.
type EventError struct {
	Mode    Mode
	Message string
}

func (EventError) event() {}

// EventStart signals that the service began answering for a track.
type EventStart struct {
	Mode Mode
}

func (EventStart) event() {}

// EventSources delivers the reference descriptors retrieved for a track.
type EventSources struct {
	Mode    Mode
	Sources []Reference
}

func (EventSources) event() {}

// EventDone signals that the service finished writing the response.
type EventDone struct{}

func (EventDone) event() {}

// Interface compliance checks.
var (
	_ Event = EventChunk{}
	_ Event = EventError{}
	_ Event = EventStart{}
	_ Event = EventSources{}
	_ Event = EventDone{}
)
