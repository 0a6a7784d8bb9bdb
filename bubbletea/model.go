package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ragchat"
)

var _ tea.Model = Model{}

// DefaultPollInterval is how often the document list is refreshed.
const DefaultPollInterval = 10 * time.Second

// Model is the Bubble Tea model for the assistant TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable conversation area. Exported for test access.
	Viewport viewport.Model

	send    SendFunc
	library Library
	history []ragchat.Message
	theme   ragchat.Theme
	styles  Styles

	blocks     []MessageBlock
	blockFocus int // index of focused collapsible block (-1 = none)

	// answers maps message IDs to their blocks so every update lands on
	// the block created for the first value.
	answers map[string]*AnswerBlock
	// references records which source lists already have a block, keyed
	// by message ID and track.
	references map[string]bool

	comparison bool
	poll       time.Duration
	documents  []ragchat.Document
	docsErr    error
	notice     string

	running  bool
	cancel   context.CancelFunc
	updateCh chan ragchat.Message
	doneCh   chan error
	err      error
	ready    bool
	width    int
}

// Option configures a [Model].
type Option func(*Model)

// WithLibrary enables the document sidebar and /upload.
func WithLibrary(lib Library) Option {
	return func(m *Model) { m.library = lib }
}

// WithPollInterval sets how often the document list is refreshed.
func WithPollInterval(d time.Duration) Option {
	return func(m *Model) { m.poll = d }
}

// WithComparison sets the initial comparison mode.
func WithComparison(on bool) Option {
	return func(m *Model) { m.comparison = on }
}

// WithHistory renders messages that exist before the first exchange.
func WithHistory(msgs []ragchat.Message) Option {
	return func(m *Model) { m.history = msgs }
}

// New creates a new TUI Model that sends questions through send.
func New(send SendFunc, theme ragchat.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about traffic law..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	m := Model{
		Input:      ti,
		send:       send,
		theme:      theme,
		styles:     NewStyles(theme),
		blockFocus: -1,
		answers:    make(map[string]*AnswerBlock),
		references: make(map[string]bool),
		poll:       DefaultPollInterval,
	}
	for _, o := range opts {
		o(&m)
	}
	if m.poll <= 0 {
		m.poll = DefaultPollInterval
	}
	return m
}

// Running returns whether an exchange is streaming.
func (m Model) Running() bool { return m.running }

// Comparison returns whether the next question is sent in comparison mode.
func (m Model) Comparison() bool { return m.comparison }

// Documents returns the last fetched document list.
func (m Model) Documents() []ragchat.Document { return m.documents }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// SetRunningWithCancel is a test helper that puts the model in a running state
// with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.library == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, fetchDocuments(m.library, true))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MessageUpdateMsg:
		m = m.applyMessage(msg.Message)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.updateCh != nil {
			return m, listenForUpdate(m.updateCh, m.doneCh)
		}
		return m, nil

	case SendDoneMsg:
		m.running = false
		m.cancel = nil
		m.updateCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		m = m.updateBlockFocus()
		cmds = append(cmds, m.Input.Focus())
		return m, tea.Batch(cmds...)

	case DocumentsMsg:
		m.docsErr = msg.Err
		if msg.Err == nil {
			m.documents = msg.Documents
		}
		if !msg.Poll {
			return m, nil
		}
		return m, schedulePoll(m.poll)

	case pollMsg:
		if m.library == nil {
			return m, nil
		}
		return m, fetchDocuments(m.library, true)

	case UploadDoneMsg:
		return m.handleUploadDone(msg)
	}

	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.Viewport.View(),
			m.sidebarView(m.Viewport.Height),
		))
	} else {
		b.WriteString(m.Viewport.View())
	}
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	b.WriteString(m.Input.View())

	return b.String()
}

func (m Model) showSidebar() bool {
	return m.library != nil && m.width-sidebarWidth >= minChatWidth
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-inputH-statusHeight-borderHeight, 1)

	m.width = msg.Width
	vpWidth := msg.Width
	if m.showSidebar() {
		vpWidth -= sidebarWidth
	}

	if !m.ready {
		m.Viewport = viewport.New(vpWidth, vpHeight)
		m = m.renderHistory()
		m.ready = true
	} else {
		m.Viewport.Width = vpWidth
		m.Viewport.Height = vpHeight
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyCtrlT:
		if !m.running {
			m.comparison = !m.comparison
		}
		return m, nil

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		if rest, ok := strings.CutPrefix(text, uploadCommand); ok && (rest == "" || rest[0] == ' ') {
			return m.startUpload(strings.TrimSpace(rest))
		}
		return m.submitInput(text)

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
			m.Viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	// When idle, pass keys to both input (for typing) and viewport (for
	// scrolling). Character keys only go to the input.
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m.notice = ""

	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.updateCh = make(chan ragchat.Message, 256)
	m.doneCh = make(chan error, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startSend(m.send, ctx, text, m.comparison, m.updateCh, m.doneCh),
		listenForUpdate(m.updateCh, m.doneCh),
	)
}

func (m Model) startUpload(path string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	if m.library == nil {
		m.notice = m.styles.Error.Render("Uploads are not available")
		return m, nil
	}
	if path == "" {
		m.notice = m.styles.Error.Render("Usage: /upload <file.pdf|file.txt>")
		return m, nil
	}
	m.notice = m.styles.Muted.Render("Uploading " + path + "...")
	return m, uploadFile(m.library, path)
}

func (m Model) handleUploadDone(msg UploadDoneMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case msg.Err != nil:
		err = fmt.Errorf("upload %s: %w", msg.Name, msg.Err)
	case !msg.Result.OK():
		err = fmt.Errorf("upload %s: %s", msg.Name, msg.Result.Message)
	}
	if err != nil {
		m.notice = ""
		m.blocks = append(m.blocks, NewErrorBlock(err, m.styles))
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		return m, nil
	}
	m.notice = m.styles.Success.Render(fmt.Sprintf("Uploaded %s: %s", msg.Result.Filename, msg.Result.Message))
	return m, fetchDocuments(m.library, false)
}

// renderHistory creates blocks for messages that predate the model.
func (m Model) renderHistory() Model {
	for _, msg := range m.history {
		switch msg.Role {
		case ragchat.RoleUser:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg.Content, m.styles))
		case ragchat.RoleAssistant:
			m = m.applyMessage(msg)
		}
	}
	return m
}

// applyMessage routes a message value to its answer block, creating the
// block and any reference blocks on first sight.
func (m Model) applyMessage(msg ragchat.Message) Model {
	if b, ok := m.answers[msg.ID]; ok {
		b.SetMessage(msg)
	} else {
		b := NewAnswerBlock(msg, m.theme, m.styles)
		m.blocks = append(m.blocks, b)
		m.answers[msg.ID] = b
	}

	if msg.Comparison == nil {
		m = m.attachReferences(msg.ID, "Sources", msg.Sources)
	} else {
		m = m.attachReferences(msg.ID+"/naive", naiveTitle+" sources", msg.Comparison.Naive.Sources)
		m = m.attachReferences(msg.ID+"/hybrid", hybridTitle+" sources", msg.Comparison.Hybrid.Sources)
	}
	return m
}

func (m Model) attachReferences(key, title string, refs []ragchat.Reference) Model {
	if len(refs) == 0 || m.references[key] {
		return m
	}
	m.references[key] = true
	m.blocks = append(m.blocks, NewReferenceBlock(title, refs, m.styles))
	return m.updateBlockFocus()
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString(blockSeparator(m.blocks[i-1], block))
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// updateBlockFocus focuses the last collapsible block.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if _, ok := m.blocks[i].(*ReferenceBlock); ok {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if _, ok := m.blocks[idx].(*ReferenceBlock); ok {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) modeLabel() string {
	if m.comparison {
		return m.styles.Naive.Render(naiveTitle) + m.styles.Muted.Render(" vs ") + m.styles.Hybrid.Render(hybridTitle)
	}
	return m.styles.Hybrid.Render(hybridTitle)
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		return m.styles.Muted.Render("Generating... Ctrl+C to cancel")
	}
	if m.notice != "" {
		return m.notice
	}
	return m.modeLabel() + m.styles.Muted.Render("  Enter to send, Ctrl+T to compare, Ctrl+C to quit")
}

// startSend runs one exchange in a goroutine and signals completion.
func startSend(send SendFunc, ctx context.Context, text string, comparison bool, updateCh chan<- ragchat.Message, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		// listenForUpdate drains updateCh until it is closed, so the send
		// never blocks for good and the cancelled terminal value is kept.
		err := send(ctx, text, comparison, func(msg ragchat.Message) {
			updateCh <- msg
		})
		close(updateCh)
		doneCh <- err
		return nil
	}
}

// listenForUpdate waits for the next message value from the channel.
// When the channel closes, it reads the error from doneCh and returns SendDoneMsg.
func listenForUpdate(ch <-chan ragchat.Message, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return SendDoneMsg{Err: <-doneCh}
		}
		return MessageUpdateMsg{Message: msg}
	}
}
