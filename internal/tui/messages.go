package tui

import (
	"time"

	"github.com/flashingpumpkin/terminus/internal/render"
)

// LineMsg appends a line to the output log.
type LineMsg struct {
	Line render.Line
}

// TextMsg replaces the text of a line without animation.
type TextMsg struct {
	ID   render.ID
	Text string
}

// BlockMsg replaces the content of a line with a typewriter block.
type BlockMsg struct {
	ID    render.ID
	Text  string
	Class render.Class
	Block *render.Block
	Start time.Time
}

// CursorOffMsg detaches the cursor marker from a line.
type CursorOffMsg struct {
	ID render.ID
}

// ClearMsg wipes the output log.
type ClearMsg struct{}

// PromptMsg shows or hides the prompt glyph.
type PromptMsg struct {
	Visible bool
}

// FocusMsg focuses the input field.
type FocusMsg struct{}

// ScrollMsg scrolls the output to the newest line.
type ScrollMsg struct{}

// frameMsg advances running animations.
type frameMsg time.Time
