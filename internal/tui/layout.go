// Package tui provides the full screen terminal front end for terminus using bubbletea.
package tui

import "fmt"

// MinTerminalWidth is the minimum supported terminal width.
const MinTerminalWidth = 20

// MinTerminalHeight is the minimum supported terminal height.
const MinTerminalHeight = 5

// Region heights (number of lines)
const (
	// InputHeight is the height of the prompt and input field.
	InputHeight = 1

	// SeparatorHeight is the rule between the output and the input.
	SeparatorHeight = 1

	// HelpBarHeight is the height of the help bar at the bottom.
	HelpBarHeight = 1
)

// Layout represents the calculated dimensions for each UI region.
type Layout struct {
	// Total terminal dimensions
	Width  int
	Height int

	// OutputHeight is the height of the scrollable output viewport
	OutputHeight int

	InputHeight     int
	SeparatorHeight int
	HelpBarHeight   int

	// TooSmall indicates the terminal is below minimum size
	TooSmall bool

	// TooSmallMessage is shown when terminal is too small
	TooSmallMessage string
}

// CalculateLayout computes the layout based on terminal dimensions.
func CalculateLayout(width, height int) Layout {
	layout := Layout{
		Width:           width,
		Height:          height,
		InputHeight:     InputHeight,
		SeparatorHeight: SeparatorHeight,
		HelpBarHeight:   HelpBarHeight,
	}

	if width < MinTerminalWidth || height < MinTerminalHeight {
		layout.TooSmall = true
		layout.TooSmallMessage = fmt.Sprintf("Terminal too small. Minimum size: %dx%d.", MinTerminalWidth, MinTerminalHeight)
		return layout
	}

	layout.OutputHeight = height - layout.InputHeight - layout.SeparatorHeight - layout.HelpBarHeight
	return layout
}

// ContentWidth returns the usable width of the output and input regions.
func (l Layout) ContentWidth() int {
	return l.Width
}
