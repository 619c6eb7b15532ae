package session

// PromptState is the visibility of the prompt glyph.
type PromptState int

const (
	// PromptShown means the prompt is visible and input is accepted.
	PromptShown PromptState = iota
	// PromptHidden means a command is running or the prompt was hidden explicitly.
	PromptHidden
)

// String returns the name of the prompt state.
func (p PromptState) String() string {
	switch p {
	case PromptShown:
		return "shown"
	case PromptHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// State is the mutable state of a session. The in-flight read lives in the
// session's Reader.
type State struct {
	Prompt      PromptState
	InputActive bool    // Set by every submitted line, cleared by hide; gates the refocus after a command
	Ticker      *Ticker // Running scramblybugs ticker, nil when none
}
