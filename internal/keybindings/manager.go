// ABOUTME: Keybindings manager with O(1) key-to-action lookup
// ABOUTME: Merges global and project configs, detects conflicts, supports hot-reload

package keybindings

import (
	"fmt"
	"maps"
	"strings"

	"github.com/mauromedda/mdpad/internal/config"
)

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []config.KeyAction
}

// Manager provides O(1) key-to-action lookup from merged keybindings.
type Manager struct {
	bindings *config.Keybindings
	lookup   map[string]config.KeyAction // "ctrl+g" → ActionToggleVim
}

// New creates a Manager from global and project keybinding files.
// Project bindings override global ones. Missing files are ignored.
func New(globalPath, projectPath string) *Manager {
	m := &Manager{}
	m.Reload(globalPath, projectPath)
	return m
}

// NewFromBindings creates a Manager from an existing Keybindings instance.
func NewFromBindings(kb *config.Keybindings) *Manager {
	m := &Manager{bindings: kb}
	m.buildLookup()
	return m
}

// ActionForKey returns the action bound to the given key string, or "" if
// unbound. Key strings use the Bubble Tea format ("enter", "ctrl+g", "alt+p").
func (m *Manager) ActionForKey(key string) config.KeyAction {
	return m.lookup[key]
}

// Bindings returns the merged keybindings backing the lookup.
func (m *Manager) Bindings() *config.Keybindings {
	return m.bindings
}

// KeyFor returns the first key bound to the given action, or "" if unbound.
func (m *Manager) KeyFor(action config.KeyAction) string {
	keys := m.bindings.GetBindings(action)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// Conflicts detects keys bound to multiple actions.
func (m *Manager) Conflicts() []ConflictInfo {
	keyActions := make(map[string][]config.KeyAction)
	for action, keys := range m.bindings.Bindings {
		for _, k := range keys {
			keyActions[k] = append(keyActions[k], action)
		}
	}

	var conflicts []ConflictInfo
	for k, actions := range keyActions {
		if len(actions) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	return conflicts
}

// Reload re-reads keybinding files and rebuilds the lookup table. Each file
// layers only the actions it explicitly sets, so a project file leaves global
// overrides for other actions intact.
func (m *Manager) Reload(globalPath, projectPath string) {
	kb := config.NewKeybindings()

	for _, path := range []string{globalPath, projectPath} {
		if path == "" {
			continue
		}
		if overrides, err := config.LoadKeybindingOverrides(path); err == nil {
			maps.Copy(kb.Bindings, overrides)
		}
	}

	m.bindings = kb
	m.buildLookup()
}

// FormatAll returns a formatted table of all keybindings for help display.
func (m *Manager) FormatAll() string {
	var b strings.Builder
	b.WriteString("Keybindings:\n\n")

	// Order by category for readability
	categories := []struct {
		name    string
		actions []config.KeyAction
	}{
		{"Editing", []config.KeyAction{
			config.ActionSubmit, config.ActionUndo,
			config.ActionKillLine, config.ActionYank,
		}},
		{"Pad", []config.KeyAction{
			config.ActionSave, config.ActionPreview,
			config.ActionHistoryPrev, config.ActionHistoryNext,
		}},
		{"Mode & Control", []config.KeyAction{
			config.ActionToggleVim, config.ActionPalette, config.ActionQuit,
		}},
	}

	for _, cat := range categories {
		fmt.Fprintf(&b, "## %s\n", cat.name)
		for _, action := range cat.actions {
			keys := m.bindings.GetBindings(action)
			if len(keys) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %-20s %s\n", strings.Join(keys, ", "), action)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Manager) buildLookup() {
	m.lookup = make(map[string]config.KeyAction, len(m.bindings.Bindings)*2)
	for action, keys := range m.bindings.Bindings {
		for _, k := range keys {
			m.lookup[k] = action
		}
	}
}
