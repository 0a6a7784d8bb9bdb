// Package bubbletea provides a Bubble Tea TUI for the traffic law assistant.
package bubbletea

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ragchat"
)

// SendFunc runs one exchange. onUpdate is called with every value the
// assistant message takes, in order. The function blocks until the
// message is terminal.
type SendFunc func(ctx context.Context, text string, comparison bool, onUpdate func(ragchat.Message)) error

// Library lists and extends the document collection answers are drawn
// from. [ragchat.Client] satisfies it.
type Library interface {
	Documents(ctx context.Context) ([]ragchat.Document, error)
	Upload(ctx context.Context, name string, r io.Reader) (ragchat.UploadResult, error)
}

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// MessageUpdateMsg carries a new value of the pending assistant message.
type MessageUpdateMsg struct {
	Message ragchat.Message
}

// SendDoneMsg signals that an exchange has ended.
type SendDoneMsg struct {
	Err error
}

// DocumentsMsg carries the result of a document list fetch. Poll marks a
// fetch made by the polling loop; only those schedule the next poll.
type DocumentsMsg struct {
	Documents []ragchat.Document
	Err       error
	Poll      bool
}

// UploadDoneMsg carries the result of an upload started with /upload.
type UploadDoneMsg struct {
	Name   string
	Result ragchat.UploadResult
	Err    error
}

// pollMsg triggers the next document list fetch.
type pollMsg struct{}
