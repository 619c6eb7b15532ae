package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/flashingpumpkin/terminus/internal/render"
)

// frameInterval paces animation frames at roughly 60fps.
const frameInterval = 16 * time.Millisecond

// keyMap defines key bindings.
type keyMap struct {
	Submit   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

var defaultKeyMap = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.PageUp, k.PageDown, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model is the main bubbletea model for the terminus TUI.
type Model struct {
	// Layout
	layout Layout

	// Content
	lines *render.Log // Ring buffer for bounded memory usage

	// Widgets
	viewport viewport.Model
	input    textinput.Model
	help     help.Model
	keys     keyMap

	// Prompt glyph, restored when the prompt is shown again
	prompt        string
	promptVisible bool

	// submit receives the input value when Enter is pressed
	submit func(string)

	// Animation clock
	clock     func() time.Time
	now       time.Time
	animUntil time.Time // When the last running animation settles
	animating bool      // Whether a frame tick is scheduled

	// Wrapped rows of settled lines, keyed by line ID
	rowCache   map[render.ID][]string
	cacheWidth int

	// Styles
	styles Styles

	// State
	ready bool
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = render.DefaultMaxLines
	}
	styles := GetStyles(opts.Theme)

	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.Input
	ti.Cursor.Style = styles.Cursor
	ti.Focus()

	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpBar
	h.Styles.ShortSeparator = styles.HelpBar

	return Model{
		lines:         render.NewLog(maxLines),
		viewport:      viewport.New(0, 0),
		input:         ti,
		help:          h,
		keys:          defaultKeyMap,
		prompt:        opts.Prompt,
		promptVisible: true,
		submit:        opts.Submit,
		clock:         time.Now,
		rowCache:      make(map[render.ID][]string),
		styles:        styles,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = CalculateLayout(msg.Width, msg.Height)
		m.ready = true
		m.now = m.clock()
		m.viewport.Width = m.layout.ContentWidth()
		m.viewport.Height = m.layout.OutputHeight
		m.input.Width = m.layout.ContentWidth() - ansi.StringWidth(m.prompt) - 1
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case frameMsg:
		m.now = time.Time(msg)
		m.refresh()
		if m.now.Before(m.animUntil) {
			return m, frameCmd()
		}
		m.animating = false
		return m, nil

	case LineMsg:
		m.now = m.clock()
		line := msg.Line
		if line.Animated && line.Start.IsZero() {
			line.Start = m.now
		}
		m.lines.Push(line)
		cmd := m.trackAnimation(line)
		m.refresh()
		return m, cmd

	case TextMsg:
		m.now = m.clock()
		m.updateLine(msg.ID, func(l *render.Line) {
			l.Text = msg.Text
			l.Animated = false
			l.Block = nil
		})
		m.refresh()
		return m, nil

	case BlockMsg:
		m.now = m.clock()
		var updated render.Line
		found := m.updateLine(msg.ID, func(l *render.Line) {
			l.Text = msg.Text
			l.Class = msg.Class
			l.Animated = true
			l.Block = msg.Block
			l.Start = msg.Start
			if l.Start.IsZero() {
				l.Start = m.now
			}
			updated = *l
		})
		var cmd tea.Cmd
		if found {
			cmd = m.trackAnimation(updated)
		}
		m.refresh()
		return m, cmd

	case CursorOffMsg:
		m.updateLine(msg.ID, func(l *render.Line) {
			if l.Block != nil {
				l.Block.RemoveCursor()
			}
		})
		m.refresh()
		return m, nil

	case ClearMsg:
		m.lines.Clear()
		m.rowCache = make(map[render.ID][]string)
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case PromptMsg:
		m.promptVisible = msg.Visible
		if msg.Visible {
			m.input.Prompt = m.prompt
		} else {
			m.input.Prompt = ""
		}
		return m, nil

	case FocusMsg:
		return m, m.input.Focus()

	case ScrollMsg:
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			value := m.input.Value()
			m.input.Reset()
			if m.submit != nil {
				m.submit(value)
			}
			return m, nil
		case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateLine applies fn to line id and drops its cached rows.
func (m *Model) updateLine(id render.ID, fn func(*render.Line)) bool {
	delete(m.rowCache, id)
	return m.lines.Update(id, fn)
}

// trackAnimation extends the animation window to cover line and schedules
// a frame if none is pending.
func (m *Model) trackAnimation(line render.Line) tea.Cmd {
	if !line.Animated || line.Block == nil {
		return nil
	}
	until := line.SettledAt()
	if until.After(m.animUntil) {
		m.animUntil = until
	}
	if m.animating || !m.now.Before(m.animUntil) {
		return nil
	}
	m.animating = true
	return frameCmd()
}

// refresh rebuilds the viewport content, keeping it pinned to the bottom
// when it already was.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	width := m.layout.ContentWidth()
	if width != m.cacheWidth || len(m.rowCache) > 2*m.lines.Cap() {
		m.rowCache = make(map[render.ID][]string)
		m.cacheWidth = width
	}

	tailing := m.viewport.AtBottom()
	var rows []string
	m.lines.Iterate(func(_ int, line render.Line) bool {
		if cached, ok := m.rowCache[line.ID]; ok {
			rows = append(rows, cached...)
			return true
		}
		wrapped := m.wrapRendered(m.renderLine(line), width)
		if line.Settled(m.now) && !line.Block.HasCursor() {
			m.rowCache[line.ID] = wrapped
		}
		rows = append(rows, wrapped...)
		return true
	})
	m.viewport.SetContent(strings.Join(rows, "\n"))
	if tailing {
		m.viewport.GotoBottom()
	}
}

// wrapRendered splits a rendered line on breaks and wraps each row.
func (m Model) wrapRendered(s string, width int) []string {
	var rows []string
	for _, part := range strings.Split(s, "\n") {
		rows = append(rows, wrapLine(part, width)...)
	}
	return rows
}

// renderLine renders a line at the current animation time. Units that have
// not started are omitted and units still fading in use the fading style.
func (m Model) renderLine(line render.Line) string {
	style := m.styles.ClassStyle(line.Class)
	if !line.Animated || line.Block == nil {
		return style.Render(line.Text)
	}

	elapsed := m.now.Sub(line.Start)
	var sb, run strings.Builder
	var runStyle *lipgloss.Style
	flush := func() {
		if run.Len() > 0 && runStyle != nil {
			sb.WriteString(runStyle.Render(run.String()))
		}
		run.Reset()
	}
	write := func(s string, st *lipgloss.Style) {
		if st != runStyle {
			flush()
			runStyle = st
		}
		run.WriteString(s)
	}

	fading := m.styles.Fading
	cursor := m.styles.Cursor
	for _, u := range line.Block.Units {
		switch {
		case u.Break:
			flush()
			sb.WriteByte('\n')
		case u.Cursor:
			write(render.CursorGlyph, &cursor)
		case elapsed < u.Delay:
			// Not yet revealed
		case elapsed < u.Delay+render.AnimationDuration:
			write(u.Text, &fading)
		default:
			write(u.Text, &style)
		}
	}
	flush()
	return sb.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.layout.TooSmall {
		return m.renderTooSmall()
	}

	return m.renderFull()
}

// renderTooSmall renders the "terminal too small" message.
func (m Model) renderTooSmall() string {
	return m.styles.TooSmallMessage.Render(m.layout.TooSmallMessage)
}

// renderFull renders the output, the input and the help bar.
func (m Model) renderFull() string {
	sections := []string{
		m.viewport.View(),
		RenderSingleBorder(m.layout.Width, m.styles.Separator),
		m.input.View(),
		m.help.View(m.keys),
	}
	return strings.Join(sections, "\n")
}

// Lines returns the lines currently held by the output log.
func (m Model) Lines() []render.Line {
	return m.lines.Lines()
}

// PromptVisible reports whether the prompt glyph is shown.
func (m Model) PromptVisible() bool {
	return m.promptVisible
}

// wrapLine wraps a single line to fit within the given width, preserving ANSI codes.
// Returns a slice of wrapped lines. Continuation lines are indented with 4 spaces.
func wrapLine(line string, width int) []string {
	if width <= 0 {
		return []string{line}
	}

	// Use ansi.StringWidth to measure visible width (excludes ANSI escape sequences)
	visibleWidth := ansi.StringWidth(line)
	if visibleWidth <= width {
		return []string{line}
	}

	const continuationIndent = "    " // 4 spaces for continuation lines
	continuationWidth := width - len(continuationIndent)
	if continuationWidth <= 10 {
		// Terminal too narrow for meaningful wrapping
		continuationWidth = width
	}

	var result []string
	remaining := line
	isFirst := true

	for len(remaining) > 0 {
		targetWidth := width
		indent := ""
		if !isFirst && continuationWidth != width {
			targetWidth = continuationWidth
			indent = continuationIndent
		}

		if ansi.StringWidth(remaining) <= targetWidth {
			result = append(result, indent+remaining)
			break
		}

		// Find a good break point
		breakIdx := findBreakPoint(remaining, targetWidth)
		if breakIdx <= 0 {
			// No good break point, force break at width
			breakIdx = truncateToWidth(remaining, targetWidth)
			if breakIdx <= 0 {
				breakIdx = len(remaining)
			}
		}

		result = append(result, indent+remaining[:breakIdx])
		remaining = strings.TrimLeft(remaining[breakIdx:], " ")
		isFirst = false
	}

	return result
}

// findBreakPoint finds the best position to break a line at or before targetWidth.
// Returns the index after the last space that fits, or 0 if no good break point.
func findBreakPoint(s string, targetWidth int) int {
	lastSpace := -1
	currentWidth := 0
	inEscape := false

	for i, r := range s {
		// Track ANSI escape sequences
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			// ANSI sequences end with a letter
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}

		charWidth := ansi.StringWidth(string(r))
		if currentWidth+charWidth > targetWidth {
			if lastSpace >= 0 {
				return lastSpace + 1 // Include the space, then trim later
			}
			return i // Force break at current position
		}

		currentWidth += charWidth
		if r == ' ' {
			lastSpace = i
		}
	}

	return 0 // Line fits, no break needed
}

// truncateToWidth returns the byte index where the visible width reaches targetWidth.
func truncateToWidth(s string, targetWidth int) int {
	currentWidth := 0
	inEscape := false

	for i, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}

		charWidth := ansi.StringWidth(string(r))
		if currentWidth+charWidth > targetWidth {
			return i
		}
		currentWidth += charWidth
	}

	return len(s)
}
