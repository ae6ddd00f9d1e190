// ABOUTME: FooterModel is a Bubble Tea leaf that renders a one-line status bar
// ABOUTME: Shows file, cursor position, line/link counts, wrap tag, vim badge, key hints

package pad

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/mdpad/pkg/textwidth"
)

// FooterModel renders a one-line status bar at the bottom of the pad:
// file + position + counts on the left, vim badge and key hints on the right.
// The vim segment is non-empty exactly while vim mode is on.
type FooterModel struct {
	fileName  string
	dirty     bool
	row, col  int
	lineCount int
	linkCount int
	wordWrap  bool
	vimBadge  string
	hint      string
	width     int
}

// NewFooterModel creates an empty FooterModel.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// Init returns nil; no commands needed for a leaf model.
func (m FooterModel) Init() tea.Cmd {
	return nil
}

// Update handles messages relevant to the footer.
func (m FooterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
	}
	return m, nil
}

// WithFileName returns a FooterModel with the file name set.
func (m FooterModel) WithFileName(name string) FooterModel {
	m.fileName = name
	return m
}

// WithDirty returns a FooterModel with the unsaved-changes marker set.
func (m FooterModel) WithDirty(dirty bool) FooterModel {
	m.dirty = dirty
	return m
}

// WithCursor returns a FooterModel showing the given 1-based position.
func (m FooterModel) WithCursor(row, col int) FooterModel {
	m.row, m.col = row, col
	return m
}

// WithLineCount returns a FooterModel with the buffer line count set.
func (m FooterModel) WithLineCount(n int) FooterModel {
	m.lineCount = n
	return m
}

// WithLinkCount returns a FooterModel with the detected link count set.
func (m FooterModel) WithLinkCount(n int) FooterModel {
	m.linkCount = n
	return m
}

// WithWordWrap returns a FooterModel with the wrap tag toggled.
func (m FooterModel) WithWordWrap(on bool) FooterModel {
	m.wordWrap = on
	return m
}

// WithVimBadge returns a FooterModel with the vim badge set.
// An empty badge removes the segment entirely.
func (m FooterModel) WithVimBadge(badge string) FooterModel {
	m.vimBadge = badge
	return m
}

// WithHint returns a FooterModel with the key-hint tail set.
func (m FooterModel) WithHint(hint string) FooterModel {
	m.hint = hint
	return m
}

// VimBadge returns the current vim badge text.
func (m FooterModel) VimBadge() string {
	return m.vimBadge
}

// View renders the footer line.
func (m FooterModel) View() string {
	s := Styles()

	var parts []string

	name := m.fileName
	if name == "" {
		name = "[scratch]"
	}
	if m.dirty {
		name += " •"
	}
	parts = append(parts, s.FooterFile.Render(name))

	if m.row > 0 {
		parts = append(parts, s.FooterPos.Render(fmt.Sprintf("%d:%d", m.row, m.col)))
	}

	if m.lineCount > 0 {
		parts = append(parts, s.Secondary.Render(fmt.Sprintf("%dL", m.lineCount)))
	}

	if m.linkCount > 0 {
		parts = append(parts, s.Link.Render(fmt.Sprintf("[%d links]", m.linkCount)))
	}

	if m.wordWrap {
		parts = append(parts, s.Muted.Render("wrap"))
	}

	if m.vimBadge != "" {
		parts = append(parts, s.FooterVim.Render(" "+m.vimBadge+" "))
	}

	if m.hint != "" {
		parts = append(parts, s.FooterHint.Render(m.hint))
	}

	line := strings.Join(parts, s.Muted.Render("  "))

	if m.width > 0 && textwidth.VisibleWidth(line) > m.width {
		line = textwidth.TruncateToWidth(line, m.width)
	}

	return line
}
