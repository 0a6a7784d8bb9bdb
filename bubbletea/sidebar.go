package bubbletea

import (
	"context"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ragchat"
	"github.com/fwojciec/ragchat/markdown"
	"github.com/mattn/go-runewidth"
)

const (
	sidebarWidth    = 28
	minChatWidth    = 40
	listTimeout     = 10 * time.Second
	uploadTimeout   = 5 * time.Minute
	uploadCommand   = "/upload"
	documentsHeader = "Documents"
)

// documentIcon maps an indexing status to its sidebar marker.
func (m Model) documentIcon(status string) string {
	switch status {
	case "processed", "completed":
		return m.styles.Success.Render("●")
	case "failed":
		return m.styles.Error.Render("✗")
	default:
		return m.styles.Muted.Render("○")
	}
}

// sidebarView renders the document list in a column of the given height.
func (m Model) sidebarView(height int) string {
	contentWidth := sidebarWidth - 2 // border and padding
	lines := []string{m.styles.Accent.Render(documentsHeader)}
	switch {
	case m.docsErr != nil:
		lines = append(lines, m.styles.Error.Render("unavailable"))
	case m.documents == nil:
		lines = append(lines, m.styles.Muted.Render("loading..."))
	case len(m.documents) == 0:
		lines = append(lines, m.styles.Muted.Render("none yet"))
	default:
		for _, doc := range m.documents {
			name := runewidth.Truncate(markdown.Sanitize(doc.Source), contentWidth-2, "…")
			lines = append(lines, m.documentIcon(doc.Status)+" "+name)
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return m.styles.Sidebar.Width(sidebarWidth - 1).Height(height).Render(strings.Join(lines, "\n"))
}

func fetchDocuments(lib Library, poll bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		docs, err := lib.Documents(ctx)
		if docs == nil && err == nil {
			docs = []ragchat.Document{}
		}
		return DocumentsMsg{Documents: docs, Err: err, Poll: poll}
	}
}

func schedulePoll(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg { return pollMsg{} })
}

func uploadFile(lib Library, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return UploadDoneMsg{Name: path, Err: err}
		}
		defer f.Close()
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()
		res, err := lib.Upload(ctx, path, f)
		return UploadDoneMsg{Name: path, Result: res, Err: err}
	}
}
