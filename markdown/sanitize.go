package markdown

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes server-supplied text safe to print. It strips ANSI escape
// sequences and control characters, keeping tabs and newlines. CRLF and
// lone CR line endings become LF.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\r':
			b.WriteByte('\n')
		case r == '\t' || r == '\n':
			b.WriteRune(r)
		case r <= 0x1F || r == 0x7F || (r >= 0x80 && r <= 0x9F):
			// C0, DEL and C1 controls.
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
