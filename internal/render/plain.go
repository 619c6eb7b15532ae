package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// PlainOptions configures a Plain renderer.
type PlainOptions struct {
	Prompt string
	// Animate types animated text out unit by unit.
	Animate bool
	// Terminal reports whether the writer is a terminal. Without one no
	// control sequences are written and Animate is ignored.
	Terminal bool
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Plain is a line-mode Renderer for output that is not driven by the TUI.
// Animated text is typed out unit by unit on a terminal when Animate is
// set; otherwise every line is written at once.
type Plain struct {
	mu            sync.Mutex
	w             io.Writer
	prompt        string
	animate       bool
	terminal      bool
	nextID        ID
	open          ID   // Opened line not yet printed
	promptVisible bool // Tracked for parity with the TUI; line mode reprints on every show
	styles        map[Class]*color.Color
}

// NewPlain creates a Plain renderer writing to w.
func NewPlain(w io.Writer, opts PlainOptions) *Plain {
	return &Plain{
		w:        w,
		prompt:   opts.Prompt,
		animate:  opts.Animate && opts.Terminal,
		terminal: opts.Terminal,
		styles: map[Class]*color.Color{
			ClassInfo:  color.New(color.FgCyan),
			ClassError: color.New(color.FgRed, color.Bold),
		},
	}
}

func (p *Plain) paint(class Class, s string) string {
	if c, ok := p.styles[class]; ok {
		return c.Sprint(s)
	}
	return s
}

// typeUnits writes a block one unit at a time. Must be called with p.mu held.
func (p *Plain) typeUnits(ctx context.Context, b *Block, base time.Duration) error {
	var err error
	for i, u := range b.Units {
		if u.Cursor {
			continue
		}
		if i > 0 && err == nil && !u.Break {
			err = Sleep(ctx, base)
		}
		if u.Break {
			_, _ = fmt.Fprintln(p.w)
			continue
		}
		_, _ = fmt.Fprint(p.w, p.paint(b.Class, u.Text))
	}
	return err
}

// WriteLine implements Renderer.
func (p *Plain) WriteLine(c Content, animate bool, opts Options) ID {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	line := NewLine(p.nextID, c, animate, opts)
	if animate && p.animate {
		_ = p.typeUnits(context.Background(), line.Block, opts.baseDelay())
		_, _ = fmt.Fprintln(p.w)
	} else {
		_, _ = fmt.Fprintln(p.w, p.paint(line.Class, line.Text))
	}
	return line.ID
}

// OpenLine implements Renderer. Nothing is printed until the line gets text.
func (p *Plain) OpenLine() ID {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.open = p.nextID
	return p.open
}

// AnimateText implements Renderer.
func (p *Plain) AnimateText(ctx context.Context, id ID, text string, opts Options) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open != id {
		return nil
	}
	p.open = 0

	block := Typewrite(text, opts)
	if !p.animate {
		_, _ = fmt.Fprintln(p.w, p.paint(block.Class, block.String()))
		return ctx.Err()
	}

	err := p.typeUnits(ctx, block, opts.baseDelay())
	if opts.Cursor && err == nil {
		_, _ = fmt.Fprint(p.w, CursorGlyph)
		err = Sleep(ctx, AnimationDuration)
		_, _ = fmt.Fprint(p.w, "\b \b")
	}
	_, _ = fmt.Fprintln(p.w)
	return err
}

// SetText implements Renderer.
func (p *Plain) SetText(id ID, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open != id {
		return
	}
	p.open = 0
	_, _ = fmt.Fprintln(p.w, text)
}

// ScrollToBottom implements Renderer. Line mode is always at the bottom.
func (p *Plain) ScrollToBottom() {}

// ClearOutput implements Renderer. Output that is not a terminal has
// nothing to erase.
func (p *Plain) ClearOutput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.terminal {
		return
	}
	_, _ = fmt.Fprint(p.w, ansi.EraseEntireScreen+ansi.CursorHomePosition)
}

// ShowPrompt implements Renderer.
func (p *Plain) ShowPrompt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprint(p.w, p.prompt)
	p.promptVisible = true
}

// HidePrompt implements Renderer.
func (p *Plain) HidePrompt() {
	p.mu.Lock()
	p.promptVisible = false
	p.mu.Unlock()
}

// FocusInput implements Renderer. The terminal keeps focus in line mode.
func (p *Plain) FocusInput() {}
