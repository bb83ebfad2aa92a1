package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the shelf view.
const (
	ColorDefault   Color = iota
	ColorWood            // shelf frame and planks
	ColorSpine           // resting book
	ColorSpineAlt        // alternating book colour so neighbours stay distinct
	ColorDragged         // book under the pointer
	ColorDisplaced       // book pushed by the current preview
	ColorGuide           // placement guide outline
	ColorMuted           // labels and empty-slot dots
	ColorStatus          // status line
	ColorError           // rejection messages
)
