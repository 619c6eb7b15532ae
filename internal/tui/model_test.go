package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/flashingpumpkin/terminus/internal/render"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestModel returns a ready 80x10 model with a frozen clock and no colours.
func newTestModel(t *testing.T, submit func(string)) Model {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	lipgloss.SetColorProfile(termenv.Ascii)

	m := NewModel(Options{Prompt: "$ ", Theme: ThemeDark, Submit: submit})
	m.clock = func() time.Time { return testEpoch }
	return step(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func lineByID(t *testing.T, m Model, id render.ID) render.Line {
	t.Helper()
	for _, l := range m.Lines() {
		if l.ID == id {
			return l
		}
	}
	t.Fatalf("line %d not found", id)
	return render.Line{}
}

func TestNewModel(t *testing.T) {
	m := NewModel(Options{Prompt: "$ "})

	if len(m.Lines()) != 0 {
		t.Errorf("expected empty output, got %d lines", len(m.Lines()))
	}
	if m.ready {
		t.Error("expected model not to be ready initially")
	}
	if !m.PromptVisible() {
		t.Error("expected prompt to be visible initially")
	}
	if m.lines.Cap() != render.DefaultMaxLines {
		t.Errorf("Cap() = %d, want %d", m.lines.Cap(), render.DefaultMaxLines)
	}
}

func TestModelInit(t *testing.T) {
	m := NewModel(Options{Prompt: "$ "})
	if m.Init() == nil {
		t.Error("expected Init() to start the cursor blink")
	}
}

func TestModelViewNotReady(t *testing.T) {
	m := NewModel(Options{Prompt: "$ "})
	if view := m.View(); view != "Initializing..." {
		t.Errorf("expected 'Initializing...' when not ready, got %q", view)
	}
}

func TestModelUpdateWindowSize(t *testing.T) {
	m := newTestModel(t, nil)

	if !m.ready {
		t.Error("expected model to be ready after window size message")
	}
	if m.layout.Width != 80 {
		t.Errorf("expected width 80, got %d", m.layout.Width)
	}
	if m.viewport.Height != 7 {
		t.Errorf("expected viewport height 7, got %d", m.viewport.Height)
	}
}

func TestModelViewTooSmall(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, tea.WindowSizeMsg{Width: 10, Height: 3})

	if view := m.View(); !strings.Contains(view, "Terminal too small") {
		t.Errorf("expected too small message, got %q", view)
	}
}

func TestModelViewShowsLinesAndPrompt(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, LineMsg{Line: render.Line{ID: 1, Text: "file1.txt  notes.md"}})

	view := m.View()
	if !strings.Contains(view, "file1.txt  notes.md") {
		t.Errorf("view missing output line:\n%s", view)
	}
	if !strings.Contains(view, "$ ") {
		t.Errorf("view missing prompt:\n%s", view)
	}
	if !strings.Contains(view, "ctrl+c") {
		t.Errorf("view missing help bar:\n%s", view)
	}
}

func TestModelUpdateQuit(t *testing.T) {
	m := newTestModel(t, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command from ctrl+c")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from ctrl+c")
	}
}

func TestModelLetterKeysGoToInput(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if got := m.input.Value(); got != "q" {
		t.Errorf("input = %q, want %q", got, "q")
	}
}

func TestModelEnterSubmitsAndClears(t *testing.T) {
	var submitted []string
	m := newTestModel(t, func(s string) { submitted = append(submitted, s) })

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ls -la")})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(submitted) != 1 || submitted[0] != "ls -la" {
		t.Errorf("submitted = %q, want [\"ls -la\"]", submitted)
	}
	if got := m.input.Value(); got != "" {
		t.Errorf("input after enter = %q, want empty", got)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(submitted) != 2 || submitted[1] != "" {
		t.Errorf("blank enter submitted = %q, want a second empty value", submitted)
	}
}

func TestModelAnimatedLineReveal(t *testing.T) {
	m := newTestModel(t, nil)

	line := render.NewLine(1, render.Text("hello"), true, render.Options{BaseDelay: 10 * time.Millisecond})
	line.Start = testEpoch

	updated, cmd := m.Update(LineMsg{Line: line})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a frame to be scheduled for an animated line")
	}

	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "h"},
		{25 * time.Millisecond, "hel"},
		{40 * time.Millisecond, "hello"},
	}
	for _, tt := range tests {
		m = step(t, m, frameMsg(testEpoch.Add(tt.elapsed)))
		if got := m.renderLine(lineByID(t, m, 1)); got != tt.want {
			t.Errorf("at %v renderLine = %q, want %q", tt.elapsed, got, tt.want)
		}
	}
}

func TestModelFramesStopWhenSettled(t *testing.T) {
	m := newTestModel(t, nil)

	line := render.NewLine(1, render.Text("ab"), true, render.Options{BaseDelay: 10 * time.Millisecond})
	line.Start = testEpoch
	m = step(t, m, LineMsg{Line: line})

	_, cmd := m.Update(frameMsg(testEpoch.Add(100 * time.Millisecond)))
	if cmd == nil {
		t.Error("expected another frame while units are fading in")
	}

	updated, cmd := m.Update(frameMsg(testEpoch.Add(time.Second)))
	m = updated.(Model)
	if cmd != nil {
		t.Error("expected frames to stop once the animation settled")
	}
	if m.animating {
		t.Error("expected animating = false after settling")
	}
}

func TestModelInstantLineSchedulesNoFrame(t *testing.T) {
	m := newTestModel(t, nil)

	_, cmd := m.Update(LineMsg{Line: render.NewLine(1, render.Text("42"), false, render.Options{})})
	if cmd != nil {
		t.Error("expected no frame for an instant line")
	}
}

func TestModelBlockWithCursor(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, LineMsg{Line: render.Line{ID: 7}})

	block := render.Typewrite("ls", render.Options{BaseDelay: 10 * time.Millisecond, Cursor: true})
	m = step(t, m, BlockMsg{ID: 7, Text: "ls", Block: block, Start: testEpoch})
	m = step(t, m, frameMsg(testEpoch.Add(time.Second)))

	if got := m.renderLine(lineByID(t, m, 7)); got != "ls"+render.CursorGlyph {
		t.Errorf("renderLine = %q, want %q", got, "ls"+render.CursorGlyph)
	}

	m = step(t, m, CursorOffMsg{ID: 7})
	if got := m.renderLine(lineByID(t, m, 7)); got != "ls" {
		t.Errorf("renderLine after cursor off = %q, want %q", got, "ls")
	}
	if !strings.Contains(m.viewport.View(), "ls") {
		t.Errorf("viewport missing echoed command:\n%s", m.viewport.View())
	}
}

func TestModelTextReplacesBlock(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, LineMsg{Line: render.Line{ID: 1}})
	m = step(t, m, BlockMsg{ID: 1, Text: "ls", Block: render.Typewrite("ls", render.Options{Cursor: true}), Start: testEpoch})
	m = step(t, m, TextMsg{ID: 1, Text: "ls"})

	line := lineByID(t, m, 1)
	if line.Animated || line.Block != nil {
		t.Errorf("expected instant line after TextMsg, got %+v", line)
	}
	if line.Text != "ls" {
		t.Errorf("Text = %q, want %q", line.Text, "ls")
	}
}

func TestModelMultilineBlock(t *testing.T) {
	m := newTestModel(t, nil)
	line := render.NewLine(1, render.Text("a\nb"), true, render.Options{})
	line.Start = testEpoch
	m = step(t, m, LineMsg{Line: line})
	m = step(t, m, frameMsg(testEpoch.Add(time.Second)))

	if got := m.renderLine(lineByID(t, m, 1)); got != "a\nb" {
		t.Errorf("renderLine = %q, want %q", got, "a\nb")
	}
}

func TestModelClear(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, LineMsg{Line: render.Line{ID: 1, Text: "one"}})
	m = step(t, m, LineMsg{Line: render.Line{ID: 2, Text: "two"}})
	m = step(t, m, ClearMsg{})

	if n := len(m.Lines()); n != 0 {
		t.Errorf("expected no lines after clear, got %d", n)
	}
	if strings.Contains(m.View(), "one") {
		t.Error("expected cleared output to be gone from the view")
	}
}

func TestModelPromptVisibility(t *testing.T) {
	m := newTestModel(t, nil)

	m = step(t, m, PromptMsg{Visible: false})
	if m.PromptVisible() {
		t.Error("expected prompt hidden")
	}
	if m.input.Prompt != "" {
		t.Errorf("input prompt = %q, want empty", m.input.Prompt)
	}

	m = step(t, m, PromptMsg{Visible: true})
	if !m.PromptVisible() {
		t.Error("expected prompt shown")
	}
	if m.input.Prompt != "$ " {
		t.Errorf("input prompt = %q, want %q", m.input.Prompt, "$ ")
	}
}

func TestModelScrolling(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 1; i <= 30; i++ {
		m = step(t, m, LineMsg{Line: render.Line{ID: render.ID(i), Text: fmt.Sprintf("line %d", i)}})
		m = step(t, m, ScrollMsg{})
	}
	if !m.viewport.AtBottom() {
		t.Fatal("expected viewport at bottom after ScrollMsg")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	if m.viewport.AtBottom() {
		t.Error("expected pgup to scroll away from the bottom")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if !m.viewport.AtBottom() {
		t.Error("expected pgdown to return to the bottom")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	m = step(t, m, ScrollMsg{})
	if !m.viewport.AtBottom() {
		t.Error("expected ScrollMsg to return to the bottom")
	}
}

func TestModelBoundedLog(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := NewModel(Options{Prompt: "$ ", Theme: ThemeDark, MaxLines: 3})
	for i := 1; i <= 5; i++ {
		m = step(t, m, LineMsg{Line: render.Line{ID: render.ID(i), Text: fmt.Sprint(i)}})
	}

	lines := m.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Text != "3" || lines[2].Text != "5" {
		t.Errorf("expected oldest lines dropped, got %q..%q", lines[0].Text, lines[2].Text)
	}
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"fits", "hello", 10, []string{"hello"}},
		{"zero width", "hello", 0, []string{"hello"}},
		{"break at space", "hello world", 8, []string{"hello ", "world"}},
		{"force break", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{
			"continuation indent",
			"the quick brown fox jumps over the lazy dog",
			20,
			[]string{"the quick brown fox ", "    jumps over the ", "    lazy dog"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLine(tt.line, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapLine() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("wrapLine()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
