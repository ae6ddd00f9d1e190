// ABOUTME: Standard filesystem paths for mdpad configuration and data
// ABOUTME: Resolves ~/.mdpad/ for global and .mdpad/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".mdpad"
	projectDirName = ".mdpad"
)

// GlobalDir returns the user-global config directory (~/.mdpad/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.mdpad/ in cwd).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalSettingsFile returns the path to the global settings file.
func GlobalSettingsFile() string {
	return filepath.Join(GlobalDir(), "settings.json")
}

// ProjectSettingsFile returns the path to the project-local settings file.
func ProjectSettingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "settings.json")
}

// GlobalKeybindingsFile returns the path to the global keybindings file.
func GlobalKeybindingsFile() string {
	return filepath.Join(GlobalDir(), "keybindings.json")
}

// ProjectKeybindingsFile returns the path to the project keybindings file.
func ProjectKeybindingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "keybindings.json")
}

// ThemesDirs returns the theme directories in resolution order
// (project-local first, then global).
func ThemesDirs(projectRoot string) []string {
	return []string{
		filepath.Join(ProjectDir(projectRoot), "themes"),
		filepath.Join(GlobalDir(), "themes"),
	}
}

// CommandsDirs returns the user command directories in resolution order.
// Later directories override earlier ones on keyword collision, so the
// global dir comes first and the project dir wins.
func CommandsDirs(projectRoot string) []string {
	return []string{
		filepath.Join(GlobalDir(), "commands"),
		filepath.Join(ProjectDir(projectRoot), "commands"),
	}
}

// HistoryFile returns the path to the command history JSONL file.
func HistoryFile() string {
	return filepath.Join(GlobalDir(), "history.jsonl")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
