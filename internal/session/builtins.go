package session

import (
	"context"
	"strconv"

	"github.com/flashingpumpkin/terminus/internal/log"
	"github.com/flashingpumpkin/terminus/internal/render"
)

// Fixed output of the built-in commands.
const (
	LsOutput       = "file1.txt  notes.md  script.sh"
	TestLine       = "This is a test line."
	TestExitWord   = "exit"
	TickerStarted  = "scramblybugs started"
	TickerStopped  = "scramblybugs stopped"
	TickerIdle     = "scramblybugs not running"
	tickerStopArgs = "stop"
)

func (s *Session) builtinCommands() []*Command {
	return []*Command{
		{Name: "ls", Description: "List files", Run: s.doLs},
		{Name: "clear", Description: "Clear the screen", Run: s.doClear},
		{Name: "scramblybugs", Description: "Print random numbers until stopped (scramblybugs stop)", Run: s.doScramblybugs},
		{Name: "test", Description: "Echo lines back until exit", Run: s.doTest},
		{Name: "hide", Description: "Hide the prompt", Run: s.doHide},
	}
}

func (s *Session) doLs(context.Context, []string) error {
	s.renderer.WriteLine(render.Text(LsOutput), false, render.Options{})
	return nil
}

func (s *Session) doClear(context.Context, []string) error {
	s.renderer.ClearOutput()
	return nil
}

// doScramblybugs starts the number ticker, replacing any running one.
// "scramblybugs stop" cancels it.
func (s *Session) doScramblybugs(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == tickerStopArgs {
		s.mu.Lock()
		t := s.state.Ticker
		s.state.Ticker = nil
		s.mu.Unlock()

		if !t.Running() {
			s.renderer.WriteLine(render.Content{Text: TickerIdle, Class: render.ClassInfo}, true, s.lineOpts())
			return nil
		}
		t.Stop()
		s.renderer.WriteLine(render.Content{Text: TickerStopped, Class: render.ClassInfo}, true, s.lineOpts())
		return nil
	}

	s.mu.Lock()
	prev := s.state.Ticker
	s.state.Ticker = nil
	s.mu.Unlock()
	if prev.Running() {
		log.Debug("replacing running scramblybugs ticker")
	}
	prev.Stop()

	s.renderer.WriteLine(render.Content{Text: TickerStarted, Class: render.ClassInfo}, true, s.lineOpts())

	next := StartTicker(ctx, s.opts.TickerInterval, func() {
		s.renderer.WriteLine(render.Text(strconv.Itoa(s.opts.Rand())), false, render.Options{})
	})

	s.mu.Lock()
	s.state.Ticker = next
	s.mu.Unlock()
	return nil
}

// doTest echoes every line back until the literal exit word, which is echoed too.
func (s *Session) doTest(ctx context.Context, _ []string) error {
	s.renderer.WriteLine(render.Text(TestLine), true, s.lineOpts())
	for {
		line, err := s.ReadLine(ctx)
		if err != nil {
			return err
		}
		s.renderer.WriteLine(render.Text(line), true, s.lineOpts())
		if line == TestExitWord {
			return nil
		}
	}
}

func (s *Session) doHide(context.Context, []string) error {
	s.hidePrompt()
	s.mu.Lock()
	s.state.InputActive = false
	s.mu.Unlock()
	return nil
}
