// ABOUTME: Settings loading with global + project config deep merge
// ABOUTME: JSON-based configuration using encoding/json; no external libs

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Defaults applied when a setting is absent from every config layer.
const (
	DefaultHeight      = 20
	DefaultTabWidth    = 4
	DefaultHistorySize = 200
)

// Settings holds the merged configuration.
type Settings struct {
	Theme       string `json:"theme,omitempty"`
	WordWrap    *bool  `json:"word_wrap,omitempty"`
	Vim         bool   `json:"vim,omitempty"`
	LinkDetect  *bool  `json:"link_detect,omitempty"`
	Height      int    `json:"height,omitempty"`
	TabWidth    int    `json:"tab_width,omitempty"`
	HistorySize int    `json:"history_size,omitempty"`
}

// Load reads and merges global and project-local settings.
// Project settings override global settings. Missing files yield defaults.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalSettingsFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global settings: %w", err)
	}

	project, err := loadFile(ProjectSettingsFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project settings: %w", err)
	}

	return merge(global, project), nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge deep-merges project settings onto global settings.
// Non-zero project values override global values; pointer fields override
// whenever set, so a project can explicitly turn word wrap off.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Theme != "" {
		result.Theme = project.Theme
	}
	if project.WordWrap != nil {
		result.WordWrap = project.WordWrap
	}
	if project.Vim {
		result.Vim = true
	}
	if project.LinkDetect != nil {
		result.LinkDetect = project.LinkDetect
	}
	if project.Height != 0 {
		result.Height = project.Height
	}
	if project.TabWidth != 0 {
		result.TabWidth = project.TabWidth
	}
	if project.HistorySize != 0 {
		result.HistorySize = project.HistorySize
	}

	return &result
}

// EffectiveWordWrap returns the word wrap setting, defaulting to on.
func (s *Settings) EffectiveWordWrap() bool {
	if s == nil || s.WordWrap == nil {
		return true
	}
	return *s.WordWrap
}

// EffectiveLinkDetect returns the link detection setting, defaulting to on.
func (s *Settings) EffectiveLinkDetect() bool {
	if s == nil || s.LinkDetect == nil {
		return true
	}
	return *s.LinkDetect
}

// EffectiveHeight returns the editor height, defaulting to DefaultHeight.
func (s *Settings) EffectiveHeight() int {
	if s == nil || s.Height <= 0 {
		return DefaultHeight
	}
	return s.Height
}

// EffectiveTabWidth returns the tab width, defaulting to DefaultTabWidth.
func (s *Settings) EffectiveTabWidth() int {
	if s == nil || s.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return s.TabWidth
}

// EffectiveHistorySize returns the history cap, defaulting to DefaultHistorySize.
func (s *Settings) EffectiveHistorySize() int {
	if s == nil || s.HistorySize <= 0 {
		return DefaultHistorySize
	}
	return s.HistorySize
}
