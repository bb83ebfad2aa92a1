// Package tui provides the Bubble Tea integration for the bookshelf.
// It handles the terminal UI loop, mouse dragging, input mapping and the
// SSH server that serves the same view remotely.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance slide animations by one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
