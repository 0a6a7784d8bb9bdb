// Package chat drives question/answer exchanges against a [ragchat.Client]
// and owns the resulting conversation.
package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/fwojciec/ragchat"
	"github.com/rs/zerolog"
)

// Session owns the message list of one chat pane and is its only writer.
// At most one exchange streams at a time.
type Session struct {
	client ragchat.Client
	log    zerolog.Logger

	mu       sync.Mutex
	messages []ragchat.Message
	pending  bool
}

// Option configures a [Session].
type Option func(*sessionConfig)

type sessionConfig struct {
	log      zerolog.Logger
	greeting bool
}

// WithLogger sets the logger for exchange diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *sessionConfig) { c.log = l }
}

// WithoutGreeting starts the session with an empty message list.
func WithoutGreeting() Option {
	return func(c *sessionConfig) { c.greeting = false }
}

// New creates a Session that sends questions through client. The list starts
// with the assistant greeting.
func New(client ragchat.Client, opts ...Option) *Session {
	cfg := sessionConfig{log: zerolog.Nop(), greeting: true}
	for _, o := range opts {
		o(&cfg)
	}
	s := &Session{client: client, log: cfg.log}
	if cfg.greeting {
		greeting := ragchat.NewAssistantMessage(false)
		greeting.Content = ragchat.Greeting
		greeting.Status = ragchat.StatusCompleted
		s.messages = append(s.messages, greeting)
	}
	return s
}

// SendOption configures a single Send invocation.
type SendOption func(*sendConfig)

type sendConfig struct {
	onUpdate func(ragchat.Message)
}

// WithUpdateHandler sets a callback that receives every value the pending
// assistant message takes, in order, starting with its empty value and
// ending with its terminal one. If nil or not set, updates are only visible
// through Messages.
func WithUpdateHandler(h func(ragchat.Message)) SendOption {
	return func(c *sendConfig) { c.onUpdate = h }
}

// Messages returns a copy of the conversation.
func (s *Session) Messages() []ragchat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ragchat.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Pending reports whether an exchange is streaming.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Send runs one exchange. It appends the user message and an empty
// assistant message, streams the answer into the latter and returns once
// the assistant message is terminal.
//
// Blank text fails with [ragchat.ErrEmptyMessage] and a send while another
// exchange streams fails with [ragchat.ErrPending]; neither changes the
// conversation. Protocol, transport and cancellation failures end up in the
// assistant message, not in the returned error.
func (s *Session) Send(ctx context.Context, text string, comparison bool, opts ...SendOption) error {
	var cfg sendConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if strings.TrimSpace(text) == "" {
		return ragchat.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return ragchat.ErrPending
	}
	s.pending = true
	s.messages = append(s.messages, ragchat.NewUserMessage(text))
	msg := ragchat.NewAssistantMessage(comparison)
	s.messages = append(s.messages, msg)
	idx := len(s.messages) - 1
	s.mu.Unlock()

	log := s.log.With().Str("message_id", msg.ID).Bool("comparison", comparison).Logger()

	publish := func(m ragchat.Message) {
		s.mu.Lock()
		s.messages[idx] = m
		s.mu.Unlock()
		if cfg.onUpdate != nil {
			cfg.onUpdate(m)
		}
	}
	publish(msg)

	s.exchange(ctx, msg, ragchat.ChatRequest{Message: text, Comparison: comparison}, publish, log)

	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
	return nil
}

// exchange streams one answer into msg, publishing every value up to and
// including the terminal one.
func (s *Session) exchange(ctx context.Context, msg ragchat.Message, req ragchat.ChatRequest, publish func(ragchat.Message), log zerolog.Logger) {
	stream, err := s.client.Chat(ctx, req)
	if err != nil {
		msg = s.fail(ctx, msg, err, log)
		publish(msg)
		return
	}
	defer stream.Close()

	events := 0
	for {
		if err := ctx.Err(); err != nil {
			msg = s.fail(ctx, msg, err, log)
			publish(msg)
			return
		}
		evt, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			msg = s.fail(ctx, msg, err, log)
			publish(msg)
			return
		}
		events++
		msg = ragchat.Apply(msg, evt)
		publish(msg)
		if msg.Status.Terminal() {
			log.Warn().
				Str("reason", string(msg.Failure.Reason)).
				Str("detail", msg.Failure.Detail).
				Msg("exchange failed")
			return
		}
	}

	msg = ragchat.Complete(msg)
	publish(msg)
	log.Debug().Int("events", events).Msg("exchange completed")
}

func (s *Session) fail(ctx context.Context, msg ragchat.Message, err error, log zerolog.Logger) ragchat.Message {
	reason := ragchat.FailureTransport
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		reason = ragchat.FailureCancelled
	}
	log.Error().Err(err).Str("reason", string(reason)).Msg("exchange failed")
	return ragchat.Fail(msg, reason, err.Error())
}
