package render

import (
	"context"
	"sync"
	"time"
)

// Recorder is an in-memory Renderer. It keeps the output log and counts
// every side effect so callers can assert on them.
type Recorder struct {
	// Wait is called with the computed duration of each AnimateText.
	// Defaults to returning ctx.Err() immediately.
	Wait func(ctx context.Context, d time.Duration) error

	// AnimateErr, when set, makes AnimateText fail before drawing.
	AnimateErr error

	mu            sync.Mutex
	log           *Log
	nextID        ID
	promptVisible bool
	scrolls       int
	focuses       int
	clears        int
	waits         []time.Duration
}

// NewRecorder creates a Recorder with the prompt visible.
func NewRecorder() *Recorder {
	return &Recorder{
		log:           NewLog(DefaultMaxLines),
		promptVisible: true,
	}
}

func (r *Recorder) allocID() ID {
	r.nextID++
	return r.nextID
}

// WriteLine implements Renderer.
func (r *Recorder) WriteLine(c Content, animate bool, opts Options) ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocID()
	r.log.Push(NewLine(id, c, animate, opts))
	r.scrolls++
	return id
}

// OpenLine implements Renderer.
func (r *Recorder) OpenLine() ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocID()
	r.log.Push(Line{ID: id})
	return id
}

// AnimateText implements Renderer.
func (r *Recorder) AnimateText(ctx context.Context, id ID, text string, opts Options) error {
	if r.AnimateErr != nil {
		return r.AnimateErr
	}

	block := Typewrite(text, opts)
	d := AnimationTime(block.Chars(), opts.BaseDelay)

	r.mu.Lock()
	r.log.Update(id, func(l *Line) {
		l.Text = text
		l.Class = opts.Class
		l.Animated = true
		l.Block = block
	})
	r.waits = append(r.waits, d)
	r.mu.Unlock()

	wait := r.Wait
	if wait == nil {
		wait = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	}
	err := wait(ctx, d)

	r.mu.Lock()
	block.RemoveCursor()
	r.mu.Unlock()
	return err
}

// SetText implements Renderer.
func (r *Recorder) SetText(id ID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.Update(id, func(l *Line) {
		l.Text = text
		l.Animated = false
		l.Block = nil
	})
}

// ScrollToBottom implements Renderer.
func (r *Recorder) ScrollToBottom() {
	r.mu.Lock()
	r.scrolls++
	r.mu.Unlock()
}

// ClearOutput implements Renderer.
func (r *Recorder) ClearOutput() {
	r.mu.Lock()
	r.log.Clear()
	r.clears++
	r.mu.Unlock()
}

// ShowPrompt implements Renderer.
func (r *Recorder) ShowPrompt() {
	r.mu.Lock()
	r.promptVisible = true
	r.mu.Unlock()
}

// HidePrompt implements Renderer.
func (r *Recorder) HidePrompt() {
	r.mu.Lock()
	r.promptVisible = false
	r.mu.Unlock()
}

// FocusInput implements Renderer.
func (r *Recorder) FocusInput() {
	r.mu.Lock()
	r.focuses++
	r.mu.Unlock()
}

// Lines returns a copy of the output log, oldest first.
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.log.Lines()
	for i := range lines {
		if lines[i].Block != nil {
			b := *lines[i].Block
			b.Units = append([]Unit(nil), b.Units...)
			lines[i].Block = &b
		}
	}
	return lines
}

// Texts returns the raw text of every line, oldest first.
func (r *Recorder) Texts() []string {
	lines := r.Lines()
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}

// PromptVisible reports whether the prompt glyph is shown.
func (r *Recorder) PromptVisible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.promptVisible
}

// Scrolls returns how many times the view scrolled to the bottom.
func (r *Recorder) Scrolls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scrolls
}

// Focuses returns how many times the input was focused.
func (r *Recorder) Focuses() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.focuses
}

// Clears returns how many times the output was cleared.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Waits returns the durations AnimateText waited for.
func (r *Recorder) Waits() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.waits...)
}
