// ABOUTME: Tests for keybindings manager
// ABOUTME: Validates key lookup, conflict detection, merge, reload, and format

package keybindings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauromedda/mdpad/internal/config"
)

func TestManager_DefaultBindings(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())

	tests := []struct {
		key    string
		action config.KeyAction
	}{
		{"enter", config.ActionSubmit},
		{"ctrl+g", config.ActionToggleVim},
		{"ctrl+p", config.ActionPalette},
		{"ctrl+t", config.ActionPreview},
		{"ctrl+s", config.ActionSave},
		{"alt+p", config.ActionHistoryPrev},
		{"alt+n", config.ActionHistoryNext},
		{"ctrl+c", config.ActionQuit},
		{"ctrl+d", config.ActionQuit},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := m.ActionForKey(tt.key)
			if got != tt.action {
				t.Errorf("ActionForKey(%q) = %q; want %q", tt.key, got, tt.action)
			}
		})
	}
}

func TestManager_UnboundKey(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())

	if action := m.ActionForKey("ctrl+q"); action != "" {
		t.Errorf("expected empty action for unbound key, got %q", action)
	}
}

func TestManager_Conflicts(t *testing.T) {
	t.Parallel()
	kb := config.NewKeybindings()
	kb.Bindings[config.ActionSave] = []string{"ctrl+s"}
	kb.Bindings[config.ActionPreview] = []string{"ctrl+s"}
	m := NewFromBindings(kb)

	conflicts := m.Conflicts()
	if len(conflicts) == 0 {
		t.Fatal("expected a conflict for ctrl+s")
	}

	found := false
	for _, c := range conflicts {
		if c.Key == "ctrl+s" {
			found = true
			if len(c.Actions) < 2 {
				t.Errorf("conflict for %q has fewer than 2 actions", c.Key)
			}
		}
	}
	if !found {
		t.Errorf("conflicts = %v; want entry for ctrl+s", conflicts)
	}
}

func TestManager_DefaultsHaveNoConflicts(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())

	if conflicts := m.Conflicts(); len(conflicts) != 0 {
		t.Errorf("default bindings conflict: %v", conflicts)
	}
}

func TestManager_ProjectLayersOverGlobal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global.json")
	projectPath := filepath.Join(dir, "project.json")

	globalData, _ := json.Marshal(map[string][]string{
		"toggleVim": {"ctrl+e"},
	})
	if err := os.WriteFile(globalPath, globalData, 0o600); err != nil {
		t.Fatal(err)
	}

	// The project file touches a different action; the global toggleVim
	// override must survive the merge.
	projectData, _ := json.Marshal(map[string][]string{
		"palette": {"ctrl+o"},
	})
	if err := os.WriteFile(projectPath, projectData, 0o600); err != nil {
		t.Fatal(err)
	}

	m := New(globalPath, projectPath)

	if action := m.ActionForKey("ctrl+e"); action != config.ActionToggleVim {
		t.Errorf("global override lost: ActionForKey(ctrl+e) = %q", action)
	}
	if action := m.ActionForKey("ctrl+o"); action != config.ActionPalette {
		t.Errorf("project override missing: ActionForKey(ctrl+o) = %q", action)
	}
}

func TestManager_NewWithFiles(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global.json")
	projectPath := filepath.Join(dir, "project.json")

	// Write global override
	globalData, _ := json.Marshal(map[string][]string{
		"toggleVim": {"ctrl+e"},
	})
	if err := os.WriteFile(globalPath, globalData, 0o600); err != nil {
		t.Fatal(err)
	}

	// Write project override (takes precedence)
	projectData, _ := json.Marshal(map[string][]string{
		"toggleVim": {"ctrl+b"},
	})
	if err := os.WriteFile(projectPath, projectData, 0o600); err != nil {
		t.Fatal(err)
	}

	m := New(globalPath, projectPath)

	if action := m.ActionForKey("ctrl+b"); action != config.ActionToggleVim {
		t.Errorf("expected toggleVim from project override, got %q", action)
	}
	if action := m.ActionForKey("ctrl+e"); action != "" {
		t.Errorf("global binding should be shadowed, got %q", action)
	}
}

func TestManager_NewMissingFiles(t *testing.T) {
	t.Parallel()
	// Should not panic with non-existent files
	m := New("/nonexistent/global.json", "/nonexistent/project.json")
	if m == nil {
		t.Fatal("expected non-nil manager even with missing files")
	}

	// Should still have default bindings
	if action := m.ActionForKey("ctrl+c"); action != config.ActionQuit {
		t.Errorf("expected default quit binding, got %q", action)
	}
}

func TestManager_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindings.json")

	m := New("", "")

	data, _ := json.Marshal(map[string][]string{
		"toggleVim": {"ctrl+e"},
	})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	m.Reload(path, "")

	if action := m.ActionForKey("ctrl+e"); action != config.ActionToggleVim {
		t.Errorf("expected toggleVim after reload, got %q", action)
	}
}

func TestManager_FormatAll(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())
	output := m.FormatAll()

	if !strings.Contains(output, "Keybindings:") {
		t.Error("expected header in FormatAll output")
	}
	if !strings.Contains(output, "Editing") {
		t.Error("expected Editing category")
	}
	if !strings.Contains(output, "Pad") {
		t.Error("expected Pad category")
	}
	if !strings.Contains(output, "Mode & Control") {
		t.Error("expected Mode & Control category")
	}
	if !strings.Contains(output, "ctrl+g") {
		t.Error("expected ctrl+g binding in output")
	}
}
