package markdown_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ragchat"
	"github.com/fwojciec/ragchat/markdown"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	// Force ANSI color output so styled elements produce visible escape
	// codes that we can assert against.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := ragchat.DefaultTheme()

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.Render("", 80, theme))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, stripANSI(markdown.Render("hello world", 80, theme)), "hello world")
	})

	t.Run("vietnamese text survives", func(t *testing.T) {
		t.Parallel()
		src := "Theo **Điều 5**, người lái xe phải dừng lại."
		assert.Equal(t, "Theo Điều 5, người lái xe phải dừng lại.", strings.TrimSpace(stripANSI(markdown.Render(src, 80, theme))))
	})

	t.Run("heading renders content with distinct styling", func(t *testing.T) {
		t.Parallel()
		heading := markdown.Render("# Title", 80, theme)
		paragraph := markdown.Render("Title", 80, theme)
		assert.Contains(t, stripANSI(heading), "Title")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("emphasis is styled", func(t *testing.T) {
		t.Parallel()
		for _, src := range []string{"**bold**", "*italic*", "***bold italic***", "`code`", "~~gone~~"} {
			result := markdown.Render(src, 80, theme)
			assert.NotEqual(t, stripANSI(result), result, src)
		}
	})

	t.Run("fenced code block preserves content without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```go\nfmt.Println(\"hello world\")\n```"
		result := stripANSI(markdown.Render(src, 20, theme))
		assert.Contains(t, result, "go")
		assert.Contains(t, result, `fmt.Println("hello world")`)
	})

	t.Run("indented code block", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("paragraph\n\n    indented code\n    more code", 80, theme))
		assert.Contains(t, result, "│ indented code")
		assert.Contains(t, result, "│ more code")
	})

	t.Run("ordered list keeps numbering", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("3. third\n4. fourth", 80, theme))
		assert.Contains(t, result, "3. third")
		assert.Contains(t, result, "4. fourth")
	})

	t.Run("nested list", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("- outer\n  - inner one\n  - inner two", 80, theme))
		lines := strings.Split(result, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "- outer", strings.TrimRight(lines[0], " "))
		assert.True(t, strings.HasPrefix(lines[1], "  - inner one"))
		assert.True(t, strings.HasPrefix(lines[2], "  - inner two"))
	})

	t.Run("list item continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		src := "- this is a very long list item that should wrap and have continuation lines properly indented"
		lines := strings.Split(stripANSI(markdown.Render(src, 30, theme)), "\n")
		require.Greater(t, len(lines), 1)
		assert.True(t, strings.HasPrefix(lines[0], "- "))
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				assert.True(t, strings.HasPrefix(line, "  "), "continuation line should be indented: %q", line)
			}
		}
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := "word1 word2 word3 word4 word5 word6 word7 word8 word9 word10 word11 word12"
		result := stripANSI(markdown.Render(long, 30, theme))
		assert.Contains(t, result, "word1")
		assert.Contains(t, result, "word12")
		assert.Greater(t, len(strings.Split(result, "\n")), 1)
	})

	t.Run("multiple paragraphs separated by a blank line", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("first paragraph\n\nsecond paragraph", 80, theme))
		assert.Contains(t, result, "first paragraph")
		assert.Contains(t, result, "\n\nsecond paragraph")
	})

	t.Run("blockquote gets a bar on every line", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("> Khoản 1\n>\n> Khoản 2", 80, theme))
		for _, line := range strings.Split(result, "\n") {
			assert.True(t, strings.HasPrefix(line, "▌"), "quote line should carry the bar: %q", line)
		}
		assert.Contains(t, result, "Khoản 1")
		assert.Contains(t, result, "Khoản 2")
	})

	t.Run("table columns are aligned", func(t *testing.T) {
		t.Parallel()
		src := "| Vehicle | Fine |\n|---|---|\n| Car | 800.000 |\n| Motorbike | 200.000 |"
		lines := strings.Split(stripANSI(markdown.Render(src, 80, theme)), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "Vehicle   │ Fine", lines[0])
		assert.Equal(t, "──────────┼────────", lines[1])
		assert.Equal(t, "Car       │ 800.000", lines[2])
		assert.Equal(t, "Motorbike │ 200.000", lines[3])
	})

	t.Run("link shows text and URL", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("[click](https://example.com)", 80, theme))
		assert.Contains(t, result, "click (https://example.com)")
	})

	t.Run("image renders alt text and URL", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("![alt text](https://example.com/img.png)", 80, theme))
		assert.Contains(t, result, "alt text")
		assert.Contains(t, result, "example.com/img.png")
	})

	t.Run("thematic break", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("above\n\n---\n\nbelow", 80, theme))
		assert.Contains(t, result, "above")
		assert.Contains(t, result, "────")
		assert.Contains(t, result, "below")
	})

	t.Run("width zero defaults to 80", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, stripANSI(markdown.Render("hello world", 0, theme)), "hello world")
	})
}
