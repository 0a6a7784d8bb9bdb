package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ragchat"
)

var _ MessageBlock = (*AnswerBlock)(nil)

const (
	naiveTitle  = "Naive RAG"
	hybridTitle = "Hybrid GraphRAG"

	noAnswer   = "(no answer)"
	searching  = "Searching documents..."
	waiting    = "Waiting..."
	generating = "Generating..."

	// columnGap separates the two comparison columns.
	columnGap = "   "
)

// AnswerBlock renders one assistant message. A comparison message shows its
// two tracks side by side; a failed message shows the failure notice in
// place of its answer.
type AnswerBlock struct {
	msg    ragchat.Message
	text   *AssistantTextBlock
	naive  *AssistantTextBlock
	hybrid *AssistantTextBlock
	styles Styles
}

// NewAnswerBlock creates an AnswerBlock showing msg.
func NewAnswerBlock(msg ragchat.Message, theme ragchat.Theme, styles Styles) *AnswerBlock {
	b := &AnswerBlock{
		text:   NewAssistantTextBlock(theme),
		naive:  NewAssistantTextBlock(theme),
		hybrid: NewAssistantTextBlock(theme),
		styles: styles,
	}
	b.SetMessage(msg)
	return b
}

// SetMessage replaces the displayed message with a newer value of it.
func (b *AnswerBlock) SetMessage(msg ragchat.Message) {
	b.msg = msg
	if msg.Comparison != nil {
		b.naive.Set(msg.Comparison.Naive.Content)
		b.hybrid.Set(msg.Comparison.Hybrid.Content)
		return
	}
	if msg.Status != ragchat.StatusFailed {
		b.text.Set(msg.Content)
	}
}

// Message returns the displayed message.
func (b *AnswerBlock) Message() ragchat.Message {
	return b.msg
}

func (b *AnswerBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AnswerBlock) View(width int) string {
	var body string
	if b.msg.Comparison != nil {
		body = b.columns(width)
	} else {
		body = b.single(width)
	}
	if b.msg.Status != ragchat.StatusFailed {
		return body
	}
	notice := b.styles.Error.Width(width).Render(b.msg.Content)
	if body == "" {
		return notice
	}
	return body + "\n" + notice
}

func (b *AnswerBlock) single(width int) string {
	switch {
	case b.msg.Status == ragchat.StatusFailed:
		return ""
	case b.text.Text() != "":
		return b.text.View(width)
	case b.msg.Status == ragchat.StatusCompleted:
		return b.styles.Muted.Render(noAnswer)
	default:
		return b.styles.Muted.Render(searching)
	}
}

// columns lays the two tracks out side by side. Narrow terminals stack them.
func (b *AnswerBlock) columns(width int) string {
	naive := b.column(naiveTitle, b.styles.Naive, b.msg.Comparison.Naive, b.naive)
	hybrid := b.column(hybridTitle, b.styles.Hybrid, b.msg.Comparison.Hybrid, b.hybrid)

	colWidth := (width - len(columnGap)) / 2
	if colWidth < 20 {
		return naive(width) + "\n\n" + hybrid(width)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(colWidth).Render(naive(colWidth)),
		columnGap,
		lipgloss.NewStyle().Width(colWidth).Render(hybrid(colWidth)),
	)
}

func (b *AnswerBlock) column(title string, style lipgloss.Style, tr ragchat.Track, text *AssistantTextBlock) func(int) string {
	return func(width int) string {
		header := style.Render(title)
		if tr.Content != "" {
			return header + "\n" + text.View(width)
		}
		var placeholder string
		switch {
		case b.msg.Status.Terminal():
			placeholder = noAnswer
		case tr.Started:
			placeholder = generating
		default:
			placeholder = waiting
		}
		return header + "\n" + b.styles.Muted.Render(placeholder)
	}
}
