package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ragchat"
)

// BlockSeparator exports blockSeparator for testing.
func BlockSeparator(prev, curr MessageBlock) string {
	return blockSeparator(prev, curr)
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// PreviewText exports previewText for testing.
func PreviewText(s string, limit int) string {
	return previewText(s, limit)
}

// Blocks returns the conversation blocks in display order.
func Blocks(m Model) []MessageBlock {
	return m.blocks
}

// BlockFocus returns the index of the focused collapsible block.
func BlockFocus(m Model) int {
	return m.blockFocus
}

// StartSend exports startSend for testing.
func StartSend(send SendFunc, ctx context.Context, text string, comparison bool, updateCh chan<- ragchat.Message, doneCh chan<- error) tea.Cmd {
	return startSend(send, ctx, text, comparison, updateCh, doneCh)
}
