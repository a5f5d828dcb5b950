package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wardenhq/warden/internal/logbuf"
	"github.com/wardenhq/warden/internal/logwriter"
)

type viewMode int

const (
	modeLive viewMode = iota
	modeHistory
	modeSearch
)

const refreshInterval = 250 * time.Millisecond

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// Options configure the viewer.
type Options struct {
	Context context.Context
	Buffer  *logbuf.Buffer
	Writer  *logwriter.Writer
	// Feed delivers raw output chunks from the producer. The channel is
	// consumed inside the bubbletea loop so that every Buffer call stays
	// on a single goroutine. May be nil for a read-only session.
	Feed <-chan string
}

// Run starts the viewer and blocks until the user quits or the context is
// cancelled.
func Run(opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(opts.Context)}
	// Stdin usually carries the producer stream, so keyboard input has to
	// come from the controlling terminal instead.
	if tty, err := os.Open("/dev/tty"); err == nil {
		defer func() { _ = tty.Close() }()
		progOpts = append(progOpts, tea.WithInput(tty))
	}
	p := tea.NewProgram(newModel(opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

type tickMsg time.Time

type chunkMsg string

type feedClosedMsg struct{}

type model struct {
	buffer *logbuf.Buffer
	writer *logwriter.Writer
	feed   <-chan string
	keys   keyMap

	viewport viewport.Model
	search   textinput.Model

	mode        viewMode
	follow      bool
	ready       bool
	inputActive bool
	feedOpen    bool

	// history pagination state
	histStart   int
	histContent string

	searchCount int

	width, height int
}

func newModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "search history..."
	ti.CharLimit = 200

	return model{
		buffer:   opts.Buffer,
		writer:   opts.Writer,
		feed:     opts.Feed,
		keys:     defaultKeyMap(),
		search:   ti,
		mode:     modeLive,
		follow:   true,
		feedOpen: opts.Feed != nil,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), waitFeed(m.feed))
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitFeed blocks on the producer channel and hands each chunk to the
// update loop as a message.
func waitFeed(feed <-chan string) tea.Cmd {
	if feed == nil {
		return nil
	}
	return func() tea.Msg {
		chunk, ok := <-feed
		if !ok {
			return feedClosedMsg{}
		}
		return chunkMsg(chunk)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		contentHeight := m.height - 2 // title above, status below
		if contentHeight < 1 {
			contentHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, contentHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = contentHeight
		}
		m.refresh()
		return m, nil

	case tickMsg:
		if m.mode == modeLive {
			m.refresh()
		}
		return m, tick()

	case chunkMsg:
		m.buffer.Append(string(msg))
		if m.mode == modeLive {
			m.refresh()
		}
		return m, waitFeed(m.feed)

	case feedClosedMsg:
		m.feedOpen = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputActive {
		switch msg.String() {
		case "enter":
			m.inputActive = false
			m.search.Blur()
			m.runSearch(m.search.Value())
			return m, nil
		case "esc":
			m.inputActive = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.inputActive = true
		m.search.SetValue("")
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.History):
		m.enterHistory()
		return m, nil

	case key.Matches(msg, m.keys.Older):
		if m.mode == modeHistory {
			m.loadOlder()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.buffer.Clear()
		m.histContent = ""
		m.histStart = 0
		m.mode = modeLive
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Follow):
		m.follow = !m.follow
		if m.follow {
			m.viewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Live):
		m.mode = modeLive
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	switch m.mode {
	case modeLive:
		m.viewport.SetContent(m.buffer.Recent())
		if m.follow {
			m.viewport.GotoBottom()
		}
	case modeHistory:
		m.viewport.SetContent(m.histContent)
	}
}

// enterHistory loads the newest page of on-disk history.
func (m *model) enterHistory() {
	text, start := m.buffer.LoadChunk(m.buffer.LineCount(), 0)
	m.histContent = text
	m.histStart = start
	m.mode = modeHistory
	m.refresh()
	m.viewport.GotoBottom()
}

// loadOlder prepends the next page back, walking toward the start of the
// file.
func (m *model) loadOlder() {
	if m.histStart <= 0 {
		return
	}
	text, start := m.buffer.LoadChunk(m.histStart, 0)
	if text == "" {
		return
	}
	m.histContent = text + m.histContent
	m.histStart = start
	m.refresh()
	m.viewport.GotoTop()
}

func (m *model) runSearch(query string) {
	text, count := m.buffer.Search(query)
	m.mode = modeSearch
	m.searchCount = count
	m.viewport.SetContent(text)
	m.viewport.GotoTop()
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	title := titleStyle.Render(m.buffer.Name() + " – " + modeLabel(m.mode))
	status := statusStyle.Render(m.statusLine())
	if m.inputActive {
		status = m.search.View()
	}
	return title + "\n" + m.viewport.View() + "\n" + status
}

func (m model) statusLine() string {
	var dropped uint64
	if m.writer != nil {
		dropped = m.writer.Dropped()
	}
	return statusLine(m.mode, m.buffer.LineCount(), m.searchCount, dropped, m.feedOpen)
}

func modeLabel(mode viewMode) string {
	switch mode {
	case modeHistory:
		return "history"
	case modeSearch:
		return "search"
	default:
		return "live"
	}
}

// statusLine formats the bottom bar. Kept free of model state so it can
// be tested directly.
func statusLine(mode viewMode, lineCount, searchCount int, dropped uint64, feedOpen bool) string {
	s := fmt.Sprintf("%d lines", lineCount)
	if mode == modeSearch {
		s = fmt.Sprintf("%d matches – %s", searchCount, s)
	}
	if dropped > 0 {
		s += fmt.Sprintf(" – %d chunks dropped", dropped)
	}
	if !feedOpen {
		s += " – stream ended"
	}
	switch mode {
	case modeLive:
		s += "  [/ search · h history · c clear · q quit]"
	case modeHistory:
		s += "  [u older · esc live · q quit]"
	case modeSearch:
		s += "  [esc live · q quit]"
	}
	return s
}
