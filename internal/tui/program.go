package tui

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/flashingpumpkin/terminus/internal/errors"
	"github.com/flashingpumpkin/terminus/internal/render"
)

// Options configures the TUI.
type Options struct {
	// Prompt is the glyph shown before the input field.
	Prompt string

	// Theme selects the colour palette. ThemeAuto is resolved at start.
	Theme Theme

	// MaxLines bounds the output log.
	MaxLines int

	// Submit receives the input value each time Enter is pressed.
	Submit func(string)

	// Instant renders animated text without the typewriter effect.
	Instant bool

	// Input and Output override the terminal. Nil uses stdin and stdout.
	Input  io.Reader
	Output io.Writer

	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool
}

// Program wraps the tea.Program and implements render.Renderer on top of it.
// Every Renderer call becomes a message processed by the model's event loop.
type Program struct {
	program *tea.Program
	send    func(tea.Msg)
	instant bool
	nextID  atomic.Uint64

	done     chan struct{}
	doneOnce sync.Once
}

var _ render.Renderer = (*Program)(nil)

// New creates a new TUI program.
func New(opts Options) *Program {
	// Handle NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	opts.Theme = ResolveTheme(opts.Theme)

	progOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	program := tea.NewProgram(NewModel(opts), progOpts...)
	return &Program{
		program: program,
		send:    program.Send,
		instant: opts.Instant,
		done:    make(chan struct{}),
	}
}

// Run starts the TUI program. This blocks until the program exits.
func (p *Program) Run() error {
	defer p.markDone()
	_, err := p.program.Run()
	return err
}

// Done is closed once the program has exited.
func (p *Program) Done() <-chan struct{} {
	return p.done
}

func (p *Program) markDone() {
	p.doneOnce.Do(func() { close(p.done) })
}

// Send sends a message to the program.
func (p *Program) Send(msg tea.Msg) {
	p.send(msg)
}

// Quit sends a quit message to the program.
func (p *Program) Quit() {
	p.program.Quit()
}

func (p *Program) allocID() render.ID {
	return render.ID(p.nextID.Add(1))
}

// WriteLine implements render.Renderer.
func (p *Program) WriteLine(c render.Content, animate bool, opts render.Options) render.ID {
	id := p.allocID()
	line := render.NewLine(id, c, animate && !p.instant, opts)
	if line.Animated {
		line.Start = time.Now()
	}
	p.Send(LineMsg{Line: line})
	p.Send(ScrollMsg{})
	return id
}

// OpenLine implements render.Renderer.
func (p *Program) OpenLine() render.ID {
	id := p.allocID()
	p.Send(LineMsg{Line: render.Line{ID: id}})
	return id
}

// AnimateText implements render.Renderer. It returns ErrRendererClosed if
// the program exits before the animation settles.
func (p *Program) AnimateText(ctx context.Context, id render.ID, text string, opts render.Options) error {
	if p.instant {
		p.SetText(id, text)
		return ctx.Err()
	}

	block := render.Typewrite(text, opts)
	d := render.AnimationTime(block.Chars(), opts.BaseDelay)
	p.Send(BlockMsg{ID: id, Text: text, Class: opts.Class, Block: block, Start: time.Now()})

	t := time.NewTimer(d)
	defer t.Stop()

	var err error
	select {
	case <-t.C:
	case <-ctx.Done():
		err = ctx.Err()
	case <-p.done:
		return errors.ErrRendererClosed
	}

	p.Send(CursorOffMsg{ID: id})
	return err
}

// SetText implements render.Renderer.
func (p *Program) SetText(id render.ID, text string) {
	p.Send(TextMsg{ID: id, Text: text})
}

// ScrollToBottom implements render.Renderer.
func (p *Program) ScrollToBottom() {
	p.Send(ScrollMsg{})
}

// ClearOutput implements render.Renderer.
func (p *Program) ClearOutput() {
	p.Send(ClearMsg{})
}

// ShowPrompt implements render.Renderer.
func (p *Program) ShowPrompt() {
	p.Send(PromptMsg{Visible: true})
}

// HidePrompt implements render.Renderer.
func (p *Program) HidePrompt() {
	p.Send(PromptMsg{Visible: false})
}

// FocusInput implements render.Renderer.
func (p *Program) FocusInput() {
	p.Send(FocusMsg{})
}
