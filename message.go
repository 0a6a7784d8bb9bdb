package ragchat

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a message.
type Status int

const (
	StatusEmpty     Status = iota // Created, no event applied yet.
	StatusStreaming               // Receiving stream events.
	StatusCompleted               // Stream ended without an error event.
	StatusFailed                  // Error event, transport failure or cancellation.
)

// Terminal reports whether no further event may change the message.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusStreaming:
		return "streaming"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureReason classifies why an exchange failed.
type FailureReason string

const (
	FailureNone      FailureReason = ""
	FailureProtocol  FailureReason = "protocol"
	FailureTransport FailureReason = "transport"
	FailureCancelled FailureReason = "cancelled"
)

// Failure records why a message ended in StatusFailed. Detail holds the
// server or network message; it is logged, never rendered.
type Failure struct {
	Reason FailureReason
	Detail string
}

// Message is one turn in the conversation. Messages are values: the
// accumulator returns a new Message for every applied event.
type Message struct {
	ID         string
	Role       Role
	Content    string
	Sources    []Reference
	Comparison *Comparison
	Status     Status
	Failure    Failure
	CreatedAt  time.Time
}

// Comparison holds the two independent answer tracks of a message created
// while comparison mode was on.
type Comparison struct {
	Naive  Track
	Hybrid Track
}

// Track returns a pointer to the track named by mode, or nil for an unknown
// mode.
func (c *Comparison) Track(mode Mode) *Track {
	switch mode {
	case ModeNaive:
		return &c.Naive
	case ModeHybrid:
		return &c.Hybrid
	default:
		return nil
	}
}

// Track is one answer stream. Content only grows within an exchange.
type Track struct {
	Content string
	Sources []Reference
	Started bool
}

// Reference is a retrieved passage backing an answer.
type Reference struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Content  string   `json:"content"`
	Source   string   `json:"source,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
}

// Label returns the display name of the reference.
func (r Reference) Label() string {
	if r.Source != "" {
		return r.Source
	}
	return r.ID
}

// Score converts the vector distance into a similarity score. ok is false
// when the service reported no distance.
func (r Reference) Score() (score float64, ok bool) {
	if r.Distance == nil {
		return 0, false
	}
	return 1 - *r.Distance, true
}

// NewUserMessage creates a finalized user message.
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   text,
		Status:    StatusCompleted,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage creates an empty assistant message awaiting stream
// events. Both comparison tracks are allocated when comparison is true.
func NewAssistantMessage(comparison bool) Message {
	msg := Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Status:    StatusEmpty,
		CreatedAt: time.Now(),
	}
	if comparison {
		msg.Comparison = &Comparison{}
	}
	return msg
}
