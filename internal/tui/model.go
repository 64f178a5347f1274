package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/sccalc/foundation/calc/script"
	mdwstringx "github.com/msto63/sccalc/foundation/utils/stringx"
	"github.com/msto63/sccalc/internal/history"
	"github.com/msto63/sccalc/pkg/core/version"
)

// View represents the tabs of the TUI
type View int

const (
	ViewCalculator View = iota
	ViewVariables
	ViewHistory
	viewCount
)

var viewNames = []string{"Calculator", "Variables", "History"}

// String returns the tab title
func (v View) String() string {
	if v < 0 || v >= viewCount {
		return "unknown"
	}
	return viewNames[v]
}

// LineKind classifies scrollback lines
type LineKind int

const (
	LineInput LineKind = iota
	LineOutput
	LineError
)

// Line is one scrollback entry
type Line struct {
	Kind LineKind
	Text string
}

// historyLimit bounds the rows shown on the History tab
const historyLimit = 100

// errInputUnavailable is returned to input commands; the TUI cannot block
// the update loop for a nested prompt.
var errInputUnavailable = errors.New("input is not available in the TUI")

// Options configures the model
type Options struct {
	Session  script.Options
	Recorder *history.Recorder // nil disables the History tab contents
}

// Model is the main TUI model
type Model struct {
	// State
	view     View
	width    int
	height   int
	ready    bool
	err      error
	exitCode int

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Calculator state
	session *script.Session
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	lines   []Line

	// History state
	recorder *history.Recorder
	entries  []*history.Entry
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter an expression or command..."
	ti.Prompt = "> "
	ti.CharLimit = 1000
	ti.Focus()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	sessionOpts := opts.Session
	sessionOpts.Stdout = stdout
	sessionOpts.Stderr = stderr
	sessionOpts.ReadLine = func(string) (string, error) {
		return "", errInputUnavailable
	}
	if opts.Recorder != nil && sessionOpts.OnEvaluate == nil {
		sessionOpts.OnEvaluate = opts.Recorder.Hook
	}

	return Model{
		view:     ViewCalculator,
		input:    ti,
		session:  script.New(sessionOpts),
		stdout:   stdout,
		stderr:   stderr,
		recorder: opts.Recorder,
	}
}

// Session returns the calculator session
func (m Model) Session() *script.Session {
	return m.session
}

// Lines returns the calculator scrollback
func (m Model) Lines() []Line {
	return m.lines
}

// CurrentView returns the active tab
func (m Model) CurrentView() View {
	return m.view
}

// ExitCode returns the code requested by quit or exit, 0 otherwise
func (m Model) ExitCode() int {
	return m.exitCode
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.view = (m.view + 1) % viewCount
			m.updateContent()
			if m.view == ViewHistory {
				return m, m.loadHistory()
			}
			return m, nil

		case "ctrl+l":
			switch m.view {
			case ViewCalculator:
				m.lines = nil
			case ViewHistory:
				m.entries = nil
			}
			m.updateContent()
			return m, nil

		case "enter":
			if m.view != ViewCalculator {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			if m.execute(line) {
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-8))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-8)
		}
		m.input.Width = max(10, msg.Width-8)
		m.updateContent()

	case historyLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
		}
		m.updateContent()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// execute runs one line through the session and moves its output into the
// scrollback. It reports whether the session asked to quit.
func (m *Model) execute(line string) bool {
	m.lines = append(m.lines, Line{Kind: LineInput, Text: line})

	outcome := m.session.ExecuteLine(context.Background(), line)

	m.appendOutput(m.stdout, LineOutput)
	m.appendOutput(m.stderr, LineError)
	m.updateContent()

	if outcome.IsFatal() {
		m.exitCode = outcome.Code
		return true
	}
	return false
}

func (m *Model) appendOutput(buf *bytes.Buffer, kind LineKind) {
	text := strings.TrimRight(buf.String(), "\n")
	buf.Reset()
	if text == "" {
		return
	}
	for _, l := range mdwstringx.SplitLines(text) {
		m.lines = append(m.lines, Line{Kind: kind, Text: l})
	}
}

type historyLoadedMsg struct {
	entries []*history.Entry
	err     error
}

func (m *Model) loadHistory() tea.Cmd {
	recorder := m.recorder
	if recorder == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		entries, err := recorder.Store().Query(ctx, history.Filter{Limit: historyLimit})
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	if m.view == ViewCalculator {
		s.WriteString(FocusedInputStyle.Render(m.input.View()))
		s.WriteString("\n")
	}
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *Model) renderHeader() string {
	var renderedTabs []string
	for v := View(0); v < viewCount; v++ {
		if v == m.view {
			renderedTabs = append(renderedTabs, ActiveTabStyle.Render(v.String()))
		} else {
			renderedTabs = append(renderedTabs, TabStyle.Render(v.String()))
		}
	}

	title := TitleStyle.Render(version.Short())
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabLine)
}

func (m *Model) renderFooter() string {
	help := "Tab: switch • Ctrl+L: clear • Ctrl+C: quit"
	status := fmt.Sprintf("echo %s", onOff(m.session.Echo()))
	if m.session.Strict() {
		status += " • strict"
	}

	return StatusBarStyle.Width(m.width).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			help,
			strings.Repeat(" ", max(0, m.width-len(help)-len(status)-4)),
			status,
		),
	)
}

func (m *Model) updateContent() {
	var content string
	switch m.view {
	case ViewCalculator:
		content = m.renderCalculator()
	case ViewVariables:
		content = m.renderVariables()
	case ViewHistory:
		content = m.renderHistory()
	}

	m.viewport.SetContent(content)
	if m.view == ViewCalculator {
		m.viewport.GotoBottom()
	} else {
		m.viewport.GotoTop()
	}
}

func (m *Model) renderCalculator() string {
	if len(m.lines) == 0 {
		return HelpStyle.Render("Type an expression such as 'x = 2 * pi' or 'help'.")
	}

	var s strings.Builder
	for _, l := range m.lines {
		switch l.Kind {
		case LineInput:
			s.WriteString(InputLineStyle.Render(">> " + l.Text))
		case LineOutput:
			s.WriteString(OutputLineStyle.Render(l.Text))
		case LineError:
			s.WriteString(ErrorLineStyle.Render(l.Text))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m *Model) renderVariables() string {
	store := m.session.Store()
	var s strings.Builder

	s.WriteString(SubtitleStyle.Render("Variables"))
	s.WriteString("\n")
	for _, name := range store.VariableNames() {
		value, _ := store.Lookup(name)
		s.WriteString(fmt.Sprintf("  %s %s\n", NameStyle.Render(mdwstringx.PadRight(name, 16, ' ')), value))
	}

	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Iterators"))
	s.WriteString("\n")
	names := store.IteratorNames()
	if len(names) == 0 {
		s.WriteString("  (none)\n")
	}
	for _, name := range names {
		it, _ := store.Iterator(name)
		s.WriteString(fmt.Sprintf("  %s %s\n", NameStyle.Render(mdwstringx.PadRight(name, 16, ' ')), it))
	}

	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("  %s %s\n", NameStyle.Render(mdwstringx.PadRight("A", 16, ' ')), store.PreviousAnswer()))
	return s.String()
}

func (m *Model) renderHistory() string {
	if m.recorder == nil {
		return HelpStyle.Render("History is disabled.")
	}
	if m.err != nil {
		return RenderError(m.err.Error())
	}
	if len(m.entries) == 0 {
		return HelpStyle.Render("No evaluations recorded yet.")
	}

	var s strings.Builder
	for _, e := range m.entries {
		result := OutputLineStyle.Render(e.Value)
		if e.Failed() {
			result = ErrorLineStyle.Render(e.Error)
		}
		s.WriteString(fmt.Sprintf("%s  %-6s %s = %s\n",
			HelpStyle.Render(e.Timestamp.Format("2006-01-02 15:04:05")),
			e.Source,
			mdwstringx.Truncate(e.Input, 40, "…"),
			result))
	}
	return s.String()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Run starts the full-screen program and returns the exit code requested
// inside it.
func Run(ctx context.Context, opts Options) (int, error) {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return script.ExitFailure, fmt.Errorf("failed to run TUI: %w", err)
	}
	if model, ok := final.(Model); ok {
		return model.ExitCode(), nil
	}
	return script.ExitOK, nil
}
