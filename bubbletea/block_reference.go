package bubbletea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ragchat"
	"github.com/fwojciec/ragchat/markdown"
	"github.com/rivo/uniseg"
)

var _ MessageBlock = (*ReferenceBlock)(nil)

// previewGraphemes caps the passage preview shown per reference.
const previewGraphemes = 160

// ReferenceBlock lists the passages an answer was grounded on. It starts
// collapsed to a one-line summary.
type ReferenceBlock struct {
	title     string
	refs      []ragchat.Reference
	collapsed bool
	styles    Styles
}

// NewReferenceBlock creates a collapsed ReferenceBlock.
func NewReferenceBlock(title string, refs []ragchat.Reference, styles Styles) *ReferenceBlock {
	return &ReferenceBlock{title: title, refs: refs, collapsed: true, styles: styles}
}

// Collapsed reports whether only the summary line is shown.
func (b *ReferenceBlock) Collapsed() bool {
	return b.collapsed
}

func (b *ReferenceBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ReferenceBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	header := b.styles.Source.Render(wrap.Render(fmt.Sprintf("%s %s (%d)", indicator, b.title, len(b.refs))))
	if b.collapsed {
		return header
	}

	indent := lipgloss.NewStyle().PaddingLeft(2).Width(width)
	var sb strings.Builder
	sb.WriteString(header)
	for i, ref := range b.refs {
		line := fmt.Sprintf("[%d] %s", i+1, markdown.Sanitize(ref.Label()))
		if score, ok := ref.Score(); ok {
			line += b.styles.Muted.Render(fmt.Sprintf("  score %.3f", score))
		}
		sb.WriteString("\n")
		sb.WriteString(indent.Render(line))
		if preview := previewText(ref.Content, previewGraphemes); preview != "" {
			sb.WriteString("\n")
			sb.WriteString(b.styles.Muted.Render(indent.Render(preview)))
		}
	}
	return sb.String()
}

// previewText sanitizes s, flattens whitespace and cuts s after limit grapheme clusters.
func previewText(s string, limit int) string {
	s = strings.Join(strings.Fields(markdown.Sanitize(s)), " ")
	g := uniseg.NewGraphemes(s)
	var sb strings.Builder
	for n := 0; g.Next(); n++ {
		if n == limit {
			sb.WriteString("…")
			break
		}
		sb.WriteString(g.Str())
	}
	return sb.String()
}
