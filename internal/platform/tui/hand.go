package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bookshelf/internal/storage"
)

// Hand panel layout constants
const (
	handPanelWidth = 44
	handMinHeight  = 5
)

// HandStore is the part of the database the hand panel needs.
type HandStore interface {
	Hand(ctx context.Context) ([]storage.HandEntry, error)
	ShelveFromHand(ctx context.Context, isbns []string) error
}

// handPanel lists books waiting to be shelved.
type handPanel struct {
	entries []storage.HandEntry
	table   table.Model
	height  int
}

func newHandPanel(height int) handPanel {
	p := handPanel{height: max(height, handMinHeight)}
	p.table = p.createTable()
	return p
}

// createTable creates a new table with appropriate columns.
func (p *handPanel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ISBN", Width: 13},
		{Title: "Title", Width: 18},
		{Title: "Class", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(p.height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// SetEntries replaces the listed books.
func (p *handPanel) SetEntries(entries []storage.HandEntry) {
	p.entries = entries
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{e.ISBN, truncate(e.Title, 18), e.Class}
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.GotoTop()
	}
}

// SetHeight resizes the table.
func (p *handPanel) SetHeight(h int) {
	p.height = max(h, handMinHeight)
	p.table.SetHeight(p.height)
}

// Selected returns the ISBN under the cursor.
func (p handPanel) Selected() (string, bool) {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.entries) {
		return "", false
	}
	return p.entries[i].ISBN, true
}

// Update passes navigation keys to the table.
func (p handPanel) Update(msg tea.Msg) (handPanel, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// View renders the panel or an empty message.
func (p handPanel) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(handPanelWidth).
		Padding(0, 1)

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Render(fmt.Sprintf("Hand (%d)", len(p.entries)))

	if len(p.entries) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Render("Nothing in hand.\nAdd books with `shelf hand add`.")
		return style.Render(title + "\n\n" + empty)
	}
	return style.Render(title + "\n" + p.table.View())
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "."
}
