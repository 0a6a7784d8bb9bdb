package bubbletea_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ragchat"
	bt "github.com/fwojciec/ragchat/bubbletea"
	"github.com/fwojciec/ragchat/markdown"
	"github.com/stretchr/testify/assert"
)

func TestAssistantTextBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("renders markdown", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("hello **world**")
		view := block.View(80)
		assert.Contains(t, view, "hello")
		assert.Contains(t, view, "world")
	})

	t.Run("append accumulates deltas", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("hello ")
		block.Append("world")
		view := block.View(80)
		assert.Contains(t, view, "hello world")
	})

	t.Run("wraps paragraphs to width", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("short words that keep going and going beyond thirty columns easily")
		view := block.View(30)
		assert.Contains(t, view, "easily")
	})

	t.Run("finalized paragraph stays while trailing text streams", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("first paragraph\n\n")
		block.Append("trailing")
		view := block.View(80)
		assert.Contains(t, view, "first paragraph")
		assert.Contains(t, view, "trailing")
	})

	t.Run("width change re-renders cached finalized content", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("word1 word2 word3 word4 word5 word6\n\ntail")
		narrow := block.View(20)
		wide := block.View(80)
		assert.NotEqual(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
	})

	t.Run("content ending at paragraph boundary has no spurious whitespace", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("complete paragraph\n\n")
		view := block.View(80)
		// The finalized content should render cleanly with no extra blank
		// lines from an empty trailing fragment.
		assert.Contains(t, view, "complete paragraph")
		// promoteFinalized strips the "\n\n" delimiter, so finalizedRaw is
		// "complete paragraph" (without trailing newlines). We compare
		// against the same input to match what renderFinalized produces.
		// TrimRight on both sides normalises renderer-added trailing
		// newlines which are not semantically significant.
		trimmed := strings.TrimRight(view, "\n")
		assert.Equal(t, trimmed, strings.TrimRight(
			markdown.Render("complete paragraph", 80, theme), "\n",
		))
	})

	t.Run("unclosed fenced code block renders safely", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("```go\nfmt.Println(\"x\")")
		view := block.View(80)
		assert.Contains(t, view, "fmt.Println")
	})

	t.Run("blank line inside code fence does not split finalization", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("text\n\n```go\nfunc() {\n\ncode")
		view := block.View(80)
		// The code block content should render as code, not prose.
		assert.Contains(t, view, "code")
		assert.Contains(t, view, "text")
	})

	t.Run("update returns self with no command", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("hello")
		updated, cmd := block.Update(tea.KeyMsg{})
		assert.Equal(t, block, updated)
		assert.Nil(t, cmd)
	})

	t.Run("empty content renders empty string", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		view := block.View(80)
		assert.Empty(t, view)
	})

	t.Run("zero width renders gracefully", func(t *testing.T) {
		t.Parallel()
		theme := ragchat.DefaultTheme()
		block := bt.NewAssistantTextBlock(theme)
		block.Append("hello world")
		assert.NotPanics(t, func() { block.View(0) })
	})

	t.Run("set applies growth as append", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(ragchat.DefaultTheme())
		block.Set("Theo Điều 5")
		block.Set("Theo Điều 5, người lái xe")
		assert.Equal(t, "Theo Điều 5, người lái xe", block.Text())
		assert.Contains(t, block.View(80), "người lái xe")
	})

	t.Run("set replaces diverging text", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(ragchat.DefaultTheme())
		block.Set("first paragraph\n\nsecond")
		block.Set("other")
		assert.Equal(t, "other", block.Text())
		view := block.View(80)
		assert.NotContains(t, view, "first paragraph")
		assert.Contains(t, view, "other")
	})
}
