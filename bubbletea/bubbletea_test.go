package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ragchat"
	bt "github.com/fwojciec/ragchat/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, send bt.SendFunc, opts ...bt.Option) bt.Model {
	t.Helper()
	return initModelWithSize(t, send, 80, 24, opts...)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, send bt.SendFunc, width, height int, opts ...bt.Option) bt.Model {
	t.Helper()
	m := bt.New(send, ragchat.DefaultTheme(), opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopSend is a send function that does nothing.
func nopSend(_ context.Context, _ string, _ bool, _ func(ragchat.Message)) error {
	return nil
}

// answer builds an assistant message value with a fixed ID.
func answer(id, content string, status ragchat.Status) ragchat.Message {
	return ragchat.Message{ID: id, Role: ragchat.RoleAssistant, Content: content, Status: status}
}

func ptr[T any](v T) *T { return &v }
