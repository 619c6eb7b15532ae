// Package session implements the REPL of the fake terminal: reading lines,
// echoing them, dispatching the built-in commands and owning the ticker.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/flashingpumpkin/terminus/internal/log"
	"github.com/flashingpumpkin/terminus/internal/render"
)

// DefaultTickerInterval is how often scramblybugs prints a number.
const DefaultTickerInterval = 100 * time.Millisecond

// Options tunes a Session.
type Options struct {
	// BaseDelay is the typewriter stagger for handler output. Zero types
	// every unit at once; a negative value selects DefaultBaseDelay.
	BaseDelay time.Duration
	// EchoDelay is the typewriter stagger for the command echo. Zero types
	// every unit at once; a negative value selects EchoBaseDelay.
	EchoDelay time.Duration
	// TickerInterval is the scramblybugs period.
	TickerInterval time.Duration
	// Rand returns the next scramblybugs number. Defaults to [0, 1e9).
	Rand func() int
}

// DefaultOptions returns the stock timings.
func DefaultOptions() Options {
	return Options{
		BaseDelay:      render.DefaultBaseDelay,
		EchoDelay:      render.EchoBaseDelay,
		TickerInterval: DefaultTickerInterval,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.BaseDelay < 0 {
		o.BaseDelay = d.BaseDelay
	}
	if o.EchoDelay < 0 {
		o.EchoDelay = d.EchoDelay
	}
	if o.TickerInterval <= 0 {
		o.TickerInterval = d.TickerInterval
	}
	if o.Rand == nil {
		o.Rand = func() int { return rand.Intn(1_000_000_000) }
	}
	return o
}

// Session runs the read-evaluate-print loop against a Renderer.
type Session struct {
	renderer render.Renderer
	reader   *Reader
	commands *Registry
	opts     Options

	mu    sync.Mutex
	state State
}

// New creates a Session with the built-in commands.
func New(r render.Renderer, reader *Reader, opts Options) *Session {
	s := &Session{
		renderer: r,
		reader:   reader,
		opts:     opts.withDefaults(),
		state:    State{Prompt: PromptShown, InputActive: true},
	}
	s.commands = NewRegistry(s.builtinCommands()...)
	return s
}

// Commands returns the command table.
func (s *Session) Commands() *Registry {
	return s.commands
}

// State returns a snapshot of the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) showPrompt() {
	s.mu.Lock()
	s.state.Prompt = PromptShown
	s.mu.Unlock()
	s.renderer.ShowPrompt()
}

func (s *Session) hidePrompt() {
	s.mu.Lock()
	s.state.Prompt = PromptHidden
	s.mu.Unlock()
	s.renderer.HidePrompt()
}

// ReadLine focuses the input and waits for the next submitted line.
// Every submitted line marks the input active again.
func (s *Session) ReadLine(ctx context.Context) (string, error) {
	s.renderer.FocusInput()
	line, err := s.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.state.InputActive = true
	s.mu.Unlock()
	return line, nil
}

// Execute echoes line, then runs the matching command or prints
// "<line> not recognized". Blank input is ignored.
func (s *Session) Execute(ctx context.Context, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	id := s.renderer.OpenLine()
	err := s.renderer.AnimateText(ctx, id, line, render.Options{BaseDelay: s.opts.EchoDelay, Cursor: true})
	if err != nil {
		s.renderer.SetText(id, line)
		log.Warn("echo animation failed: %v", err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	if cmd, ok := s.commands.Get(name); ok {
		log.Debug("running %s %v", name, args)
		if err := cmd.Run(ctx, args); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	} else {
		s.renderer.WriteLine(render.Content{Text: line + " not recognized", Class: render.ClassError}, true, s.lineOpts())
	}

	s.renderer.ScrollToBottom()
	if s.State().InputActive {
		s.renderer.FocusInput()
	}
	return nil
}

// Run loops forever: show the prompt, read a line, hide the prompt and
// execute it. Blank lines go straight back to reading. Run returns when ctx
// is cancelled or a command fails, and stops the ticker on the way out.
func (s *Session) Run(ctx context.Context) error {
	defer s.Close()

	for {
		s.showPrompt()
		line, err := s.ReadLine(ctx)
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		s.hidePrompt()
		if err := s.Execute(ctx, line); err != nil {
			return err
		}
	}
}

// Close stops the background ticker if one is running.
func (s *Session) Close() {
	s.mu.Lock()
	t := s.state.Ticker
	s.state.Ticker = nil
	s.mu.Unlock()
	t.Stop()
}

func (s *Session) lineOpts() render.Options {
	return render.Options{BaseDelay: s.opts.BaseDelay}
}
