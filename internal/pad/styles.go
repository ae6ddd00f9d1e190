// ABOUTME: Lipgloss styles built from the active theme palette
// ABOUTME: Styles() caches by theme pointer; rebuilt only when the theme changes

package pad

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/mdpad/pkg/theme"
)

// padStylesEntry pairs a theme pointer with its pre-built styles.
type padStylesEntry struct {
	theme  *theme.Theme
	styles PadStyles
}

// cachedStyles is the package-level atomic cache for PadStyles.
// Cache key is the theme pointer identity; invalidated when the theme changes.
var cachedStyles atomic.Pointer[padStylesEntry]

// PadStyles holds pre-built lipgloss styles for all semantic palette fields.
type PadStyles struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Border    lipgloss.Style
	Selection lipgloss.Style
	Link      lipgloss.Style

	FooterFile lipgloss.Style
	FooterPos  lipgloss.Style
	FooterVim  lipgloss.Style
	FooterHint lipgloss.Style

	Bold lipgloss.Style
	Dim  lipgloss.Style
}

// Styles returns PadStyles for the current theme, using a cached value when
// the theme pointer has not changed.
func Styles() PadStyles {
	t := theme.Current()
	if e := cachedStyles.Load(); e != nil && e.theme == t {
		return e.styles
	}
	s := buildStyles(t)
	cachedStyles.Store(&padStylesEntry{theme: t, styles: s})
	return s
}

// fg builds a foreground style from a palette color. Unset colors leave the
// style unstyled.
func fg(c theme.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.IsSet() {
		s = s.Foreground(lipgloss.Color(c.Spec()))
	}
	return s
}

// bg builds a background style from a palette color.
func bg(c theme.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.IsSet() {
		s = s.Background(lipgloss.Color(c.Spec()))
	}
	return s
}

// buildStyles constructs PadStyles from a theme's palette.
func buildStyles(t *theme.Theme) PadStyles {
	p := t.Palette
	return PadStyles{
		Primary:   fg(p.Primary),
		Secondary: fg(p.Secondary),
		Muted:     fg(p.Muted),
		Accent:    fg(p.Accent),

		Success: fg(p.Success),
		Warning: fg(p.Warning),
		Error:   fg(p.Error),
		Info:    fg(p.Info),

		Border:    fg(p.Border),
		Selection: bg(p.Selection),
		Link:      fg(p.Link).Underline(true),

		FooterFile: fg(p.FooterFile),
		FooterPos:  fg(p.FooterPos),
		FooterVim:  fg(p.FooterVim).Bold(true).Reverse(true),
		FooterHint: fg(p.FooterHint).Faint(true),

		Bold: lipgloss.NewStyle().Bold(true),
		Dim:  lipgloss.NewStyle().Faint(true),
	}
}
