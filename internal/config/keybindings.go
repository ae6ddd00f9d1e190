// ABOUTME: Keybindings parser and loader for the mdpad keybinding format
// ABOUTME: Supports ~/.mdpad/keybindings.json with per-action key lists

package config

import (
	"encoding/json"
	"maps"
	"os"
)

// KeyAction represents an action that can be bound to keys.
type KeyAction string

const (
	ActionSubmit      KeyAction = "submit"
	ActionToggleVim   KeyAction = "toggleVim"
	ActionPalette     KeyAction = "palette"
	ActionPreview     KeyAction = "preview"
	ActionSave        KeyAction = "save"
	ActionHistoryPrev KeyAction = "historyPrev"
	ActionHistoryNext KeyAction = "historyNext"
	ActionUndo        KeyAction = "undo"
	ActionKillLine    KeyAction = "killLine"
	ActionYank        KeyAction = "yank"
	ActionQuit        KeyAction = "quit"
)

// Keybindings maps actions to the key strings that trigger them.
type Keybindings struct {
	Bindings map[KeyAction][]string `json:"-"`
}

// RawKeybindings is the on-disk JSON shape.
type RawKeybindings map[string][]string

// NewKeybindings creates a Keybindings with default bindings.
func NewKeybindings() *Keybindings {
	kb := &Keybindings{
		Bindings: make(map[KeyAction][]string),
	}
	kb.setDefaultBindings()
	return kb
}

// setDefaultBindings installs the stock mdpad bindings.
func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[ActionSubmit] = []string{"enter"}
	kb.Bindings[ActionToggleVim] = []string{"ctrl+g"}
	kb.Bindings[ActionPalette] = []string{"ctrl+p"}
	kb.Bindings[ActionPreview] = []string{"ctrl+t"}
	kb.Bindings[ActionSave] = []string{"ctrl+s"}
	kb.Bindings[ActionHistoryPrev] = []string{"alt+p"}
	kb.Bindings[ActionHistoryNext] = []string{"alt+n"}
	kb.Bindings[ActionUndo] = []string{"ctrl+z"}
	kb.Bindings[ActionKillLine] = []string{"ctrl+k"}
	kb.Bindings[ActionYank] = []string{"ctrl+y"}
	kb.Bindings[ActionQuit] = []string{"ctrl+c", "ctrl+d"}
}

// LoadKeybindingOverrides reads a keybindings file and returns only the
// actions it explicitly sets. Unknown action names are ignored so newer
// config files keep working on older builds.
func LoadKeybindingOverrides(path string) (map[KeyAction][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw RawKeybindings
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	known := NewKeybindings()
	overrides := make(map[KeyAction][]string)
	for actionName, keys := range raw {
		action := KeyAction(actionName)
		if _, ok := known.Bindings[action]; ok {
			overrides[action] = keys
		}
	}

	return overrides, nil
}

// LoadKeybindings loads a keybindings file merged over the defaults.
func LoadKeybindings(path string) (*Keybindings, error) {
	overrides, err := LoadKeybindingOverrides(path)
	if err != nil {
		return nil, err
	}

	kb := NewKeybindings()
	maps.Copy(kb.Bindings, overrides)
	return kb, nil
}

// SaveKeybindings saves keybindings to a file.
func (kb *Keybindings) SaveKeybindings(path string) error {
	raw := make(RawKeybindings)
	for action, keys := range kb.Bindings {
		raw[string(action)] = keys
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// GetBindings returns the bindings for an action.
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}
