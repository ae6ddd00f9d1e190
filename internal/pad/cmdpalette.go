// ABOUTME: PaletteModel is a Bubble Tea leaf for fuzzy command completion
// ABOUTME: Filters registry keywords as the user types; enter picks, escape dismisses

package pad

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mauromedda/mdpad/internal/commands"
	"github.com/mauromedda/mdpad/pkg/textwidth"
)

const maxPaletteVisible = 10

// paletteSource adapts a command slice to the fuzzy matcher.
type paletteSource []*commands.Command

func (s paletteSource) String(i int) string { return s[i].Keyword }
func (s paletteSource) Len() int            { return len(s) }

// PaletteModel is a filterable overlay listing the registered commands.
// Implements tea.Model with value semantics.
type PaletteModel struct {
	entries  []*commands.Command
	visible  []*commands.Command
	selected int
	filter   string
	width    int
}

// NewPaletteModel creates a palette over the registry's command list.
func NewPaletteModel(reg *commands.Registry) PaletteModel {
	m := PaletteModel{
		entries: reg.List(),
	}
	m.applyFilter()
	return m
}

// Init returns nil; no commands needed at startup.
func (m PaletteModel) Init() tea.Cmd {
	return nil
}

// Update handles key and window-size messages.
func (m PaletteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyRunes:
			// Typing characters narrows the palette
			if len(msg.Runes) > 0 {
				m.filter += string(msg.Runes)
				m.selected = 0
				m.applyFilter()
			}
		case tea.KeyBackspace:
			if len(m.filter) > 0 {
				m.filter = m.filter[:len(m.filter)-1]
				m.selected = 0
				m.applyFilter()
			}
		case tea.KeyUp:
			m.moveUp()
		case tea.KeyDown:
			m.moveDown()
		case tea.KeyTab:
			m.moveDown()
		case tea.KeyEnter:
			keyword := m.Selected()
			if keyword != "" {
				return m, func() tea.Msg { return PaletteSelectMsg{Keyword: keyword} }
			}
		case tea.KeyEsc:
			return m, func() tea.Msg { return PaletteDismissMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the command list capped at maxPaletteVisible.
func (m PaletteModel) View() string {
	total := len(m.visible)
	if total == 0 {
		return ""
	}

	// Compute viewport window around the selected item
	start := 0
	end := total
	if total > maxPaletteVisible {
		start = m.selected - maxPaletteVisible/2
		if start < 0 {
			start = 0
		}
		end = start + maxPaletteVisible
		if end > total {
			end = total
			start = end - maxPaletteVisible
		}
	}

	s := Styles()
	var b strings.Builder

	for i := start; i < end; i++ {
		entry := m.visible[i]
		line := fmt.Sprintf("  %-12s %s", entry.Keyword, entry.Description)
		if m.width > 0 {
			line = textwidth.TruncateToWidth(line, m.width)
		}

		if i == m.selected {
			line = s.Bold.Render(s.Selection.Render(line))
		} else {
			line = s.Dim.Render(line)
		}

		if i > start {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}

	return b.String()
}

// SetFilter updates the filter string and resets selection. Returns a new model.
func (m PaletteModel) SetFilter(f string) PaletteModel {
	m.filter = f
	m.selected = 0
	m.applyFilter()
	return m
}

// Filter returns the current filter string.
func (m PaletteModel) Filter() string {
	return m.filter
}

// Selected returns the keyword of the currently highlighted command.
func (m PaletteModel) Selected() string {
	if len(m.visible) == 0 {
		return ""
	}
	return m.visible[m.selected].Keyword
}

// VisibleCount returns the number of commands matching the filter.
func (m PaletteModel) VisibleCount() int {
	return len(m.visible)
}

func (m *PaletteModel) moveDown() {
	if len(m.visible) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.visible)
}

func (m *PaletteModel) moveUp() {
	if len(m.visible) == 0 {
		return
	}
	m.selected = (m.selected - 1 + len(m.visible)) % len(m.visible)
}

// applyFilter rebuilds the visible list. An empty filter shows everything in
// registry order; otherwise commands are fuzzy-ranked against the filter.
func (m *PaletteModel) applyFilter() {
	if m.filter == "" {
		m.visible = make([]*commands.Command, len(m.entries))
		copy(m.visible, m.entries)
		return
	}

	matches := fuzzy.FindFrom(m.filter, paletteSource(m.entries))
	m.visible = make([]*commands.Command, 0, len(matches))
	for _, match := range matches {
		m.visible = append(m.visible, m.entries[match.Index])
	}
}
