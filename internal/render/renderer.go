package render

import "context"

// Renderer owns the output log, the scroll position, the input field and the
// prompt glyph. Implementations must be safe for concurrent use: the ticker
// writes from its own goroutine.
type Renderer interface {
	// WriteLine appends a line, instantly or through a typewriter block,
	// then scrolls to the newest content.
	WriteLine(c Content, animate bool, opts Options) ID

	// OpenLine appends an empty line for AnimateText to fill.
	OpenLine() ID

	// AnimateText replaces the content of line id with a typewriter block
	// and blocks until the animation settles, removing the cursor marker
	// just before returning. Returns ctx.Err() when cancelled.
	AnimateText(ctx context.Context, id ID, text string, opts Options) error

	// SetText assigns text to line id without animation.
	SetText(id ID, text string)

	ScrollToBottom()
	ClearOutput()
	ShowPrompt()
	HidePrompt()
	FocusInput()
}
