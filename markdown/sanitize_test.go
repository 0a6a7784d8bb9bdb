package markdown_test

import (
	"testing"

	"github.com/fwojciec/ragchat"
	"github.com/fwojciec/ragchat/markdown"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "Điều 5. Người lái xe", "Điều 5. Người lái xe"},
		{"strips color codes", "\x1b[31mred\x1b[0m", "red"},
		{"strips OSC title sequence", "\x1b]0;pwned\x07answer", "answer"},
		{"keeps tabs and newlines", "a\tb\nc", "a\tb\nc"},
		{"removes C0 controls", "a\x01b\x02c\x07", "abc"},
		{"removes DEL and C1 controls", "a\x7fb\u0085c", "abc"},
		{"normalizes CRLF", "a\r\nb\r\n", "a\nb\n"},
		{"lone CR becomes newline", "line one\rline two", "line one\nline two"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, markdown.Sanitize(tt.in))
		})
	}
}

func TestRender_SanitizesSource(t *testing.T) {
	t.Parallel()
	result := markdown.Render("safe\x1b]0;title\x07 text", 80, ragchat.DefaultTheme())
	assert.NotContains(t, result, "\x1b]0;")
	assert.Contains(t, stripANSI(result), "safe text")
}
