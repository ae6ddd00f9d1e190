// ABOUTME: PreviewModel renders the pad buffer as styled markdown in a viewport
// ABOUTME: Glamour output is cached by content hash + width so reopening is instant

package pad

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// MarkdownCache memoizes glamour renders keyed by content hash and width.
// One cache is shared across preview opens so unchanged content renders once.
type MarkdownCache struct {
	rendered map[string]string
}

// NewMarkdownCache creates an empty cache.
func NewMarkdownCache() *MarkdownCache {
	return &MarkdownCache{rendered: make(map[string]string)}
}

// Render returns the terminal-styled rendering of the given markdown.
// Render failures fall back to the raw text.
func (c *MarkdownCache) Render(md string, width int) string {
	if md == "" {
		return ""
	}

	key := renderKey(md, width)
	if cached, ok := c.rendered[key]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}

	// Trim trailing whitespace that glamour adds
	out = strings.TrimRight(out, "\n ")

	c.rendered[key] = out
	return out
}

// Len returns the number of cached renders.
func (c *MarkdownCache) Len() int {
	return len(c.rendered)
}

func renderKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}

// PreviewModel is a read-only overlay showing the rendered buffer.
// Implements tea.Model with value semantics; scrolling is delegated to the
// bubbles viewport.
type PreviewModel struct {
	viewport viewport.Model
	cache    *MarkdownCache
	content  string
}

// NewPreviewModel creates a preview of the given markdown sized to the
// terminal. A nil cache gets a private one.
func NewPreviewModel(content string, width, height int, cache *MarkdownCache) PreviewModel {
	if cache == nil {
		cache = NewMarkdownCache()
	}
	w := max(width, 1)
	vp := viewport.New(w, max(height, 1))
	vp.SetContent(cache.Render(content, w))
	return PreviewModel{
		viewport: vp,
		cache:    cache,
		content:  content,
	}
}

// Init returns nil; no commands needed at startup.
func (m PreviewModel) Init() tea.Cmd {
	return nil
}

// Update handles dismissal, resizes, and viewport scrolling.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return PreviewDismissMsg{} }
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-1, 1)
		m.viewport.SetContent(m.cache.Render(m.content, msg.Width))
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders a title row above the scrolling viewport.
func (m PreviewModel) View() string {
	s := Styles()
	title := s.Muted.Render(fmt.Sprintf("preview %d%%  (esc to close)", int(m.viewport.ScrollPercent()*100)))
	return title + "\n" + m.viewport.View()
}
