// Package render holds the output primitives of the terminal: lines,
// typewriter units and the Renderer contract implemented by the TUI,
// the line-mode writer and the in-memory recorder.
package render

import (
	"context"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Class is the semantic style class of a line.
type Class string

const (
	// ClassDefault renders with the normal text style.
	ClassDefault Class = ""
	// ClassInfo marks status lines such as "scramblybugs started".
	ClassInfo Class = "info"
	// ClassError marks the "not recognized" line.
	ClassError Class = "error"
)

// Animation timings.
const (
	// DefaultBaseDelay is the stagger between consecutive units of normal output.
	DefaultBaseDelay = 20 * time.Millisecond
	// EchoBaseDelay is the faster stagger used when echoing a typed command.
	EchoBaseDelay = 10 * time.Millisecond
	// AnimationDuration is how long a single unit takes to fade in.
	AnimationDuration = 420 * time.Millisecond
)

// CursorGlyph is drawn for the transient cursor marker.
const CursorGlyph = "▌"

// Options tunes how text is written.
type Options struct {
	BaseDelay time.Duration // Stagger per unit; zero types every unit at once
	Class     Class         // Semantic class applied to the wrapper
	Cursor    bool          // Append a cursor marker (AnimateText only)
}

func (o Options) baseDelay() time.Duration {
	if o.BaseDelay < 0 {
		return 0
	}
	return o.BaseDelay
}

// Unit is one visual element of a typewriter block.
type Unit struct {
	Text   string        // One grapheme cluster; empty for breaks and cursors
	Index  int           // Stagger index among character units
	Delay  time.Duration // Offset from the block start at which the unit appears
	Break  bool          // Line break
	Cursor bool          // Cursor marker
}

// Block is the typewriter wrapper holding the units of one animated text.
type Block struct {
	Class Class
	Units []Unit
}

// WriteChar appends the unit for ch to the block. A "\n" appends a line
// break and returns nil; any other text returns the created unit.
func (b *Block) WriteChar(ch string, index int, opts Options) *Unit {
	if ch == "\n" || ch == "\r\n" {
		b.Units = append(b.Units, Unit{Break: true})
		return nil
	}
	b.Units = append(b.Units, Unit{
		Text:  ch,
		Index: index,
		Delay: time.Duration(index) * opts.baseDelay(),
	})
	return &b.Units[len(b.Units)-1]
}

// Chars returns the number of character units, excluding breaks and the cursor.
func (b *Block) Chars() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, u := range b.Units {
		if !u.Break && !u.Cursor {
			n++
		}
	}
	return n
}

// HasCursor reports whether the cursor marker is still attached.
func (b *Block) HasCursor() bool {
	if b == nil {
		return false
	}
	for _, u := range b.Units {
		if u.Cursor {
			return true
		}
	}
	return false
}

// RemoveCursor detaches the cursor marker. Returns false if there was none.
func (b *Block) RemoveCursor() bool {
	if b == nil {
		return false
	}
	for i, u := range b.Units {
		if u.Cursor {
			b.Units = append(b.Units[:i], b.Units[i+1:]...)
			return true
		}
	}
	return false
}

// LastDelay returns the delay of the final character unit.
func (b *Block) LastDelay() time.Duration {
	var last time.Duration
	if b == nil {
		return last
	}
	for _, u := range b.Units {
		if !u.Break && !u.Cursor && u.Delay > last {
			last = u.Delay
		}
	}
	return last
}

// String returns the plain text of the block, breaks included, cursor excluded.
func (b *Block) String() string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	for _, u := range b.Units {
		switch {
		case u.Break:
			sb.WriteByte('\n')
		case u.Cursor:
		default:
			sb.WriteString(u.Text)
		}
	}
	return sb.String()
}

// Typewrite splits text into grapheme units with staggered delays.
// Breaks do not advance the stagger index.
func Typewrite(text string, opts Options) *Block {
	b := &Block{Class: opts.Class}
	index := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if b.WriteChar(g.Str(), index, opts) != nil {
			index++
		}
	}
	if opts.Cursor {
		b.Units = append(b.Units, Unit{Cursor: true, Index: index})
	}
	return b
}

// AnimationTime is how long an animation of chars units takes to settle:
// max(0, (chars-1)*base + AnimationDuration).
func AnimationTime(chars int, base time.Duration) time.Duration {
	if base < 0 {
		base = 0
	}
	d := time.Duration(chars-1)*base + AnimationDuration
	if d < 0 {
		return 0
	}
	return d
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ID identifies a line within a renderer. IDs increase monotonically.
type ID uint64

// Content is a line payload with an optional class.
type Content struct {
	Text  string
	Class Class
}

// Text is shorthand for an unclassed Content.
func Text(s string) Content {
	return Content{Text: s}
}

// Line is a rendered unit of output.
type Line struct {
	ID       ID
	Text     string    // Raw text
	Class    Class     // Semantic class
	Animated bool      // Rendered through a typewriter block
	Block    *Block    // Units when animated, nil otherwise
	Start    time.Time // When the animation began (set by the display)
}

// NewLine builds the line WriteLine appends. The content class wins over
// the options class.
func NewLine(id ID, c Content, animate bool, opts Options) Line {
	if c.Class != ClassDefault {
		opts.Class = c.Class
	}
	opts.Cursor = false
	line := Line{ID: id, Text: c.Text, Class: opts.Class}
	if animate {
		line.Animated = true
		line.Block = Typewrite(c.Text, opts)
	}
	return line
}

// SettledAt is when the last unit of an animated line has finished
// fading in. Lines without a block are settled from the start.
func (l Line) SettledAt() time.Time {
	if !l.Animated || l.Block == nil {
		return l.Start
	}
	return l.Start.Add(l.Block.LastDelay() + AnimationDuration)
}

// Settled reports whether the line no longer changes over time at now.
func (l Line) Settled(now time.Time) bool {
	return !now.Before(l.SettledAt())
}
