// ABOUTME: JSON theme file loading with validation and default fallback
// ABOUTME: Unset palette fields inherit from DefaultPalette to ensure completeness

package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
)

// jsonPalette is the JSON-friendly representation of a Palette.
// Fields use snake_case to match the JSON file format.
type jsonPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Muted     string `json:"muted"`
	Accent    string `json:"accent"`

	Success string `json:"success"`
	Warning string `json:"warning"`
	Error   string `json:"error"`
	Info    string `json:"info"`

	Border    string `json:"border"`
	Selection string `json:"selection"`
	Cursor    string `json:"cursor"`
	Link      string `json:"link"`

	FooterFile string `json:"footer_file"`
	FooterPos  string `json:"footer_pos"`
	FooterVim  string `json:"footer_vim"`
	FooterHint string `json:"footer_hint"`
}

type jsonTheme struct {
	Name    string      `json:"name"`
	Palette jsonPalette `json:"palette"`
}

// LoadFile reads a JSON theme file and returns a Theme.
// Missing palette fields fall back to DefaultPalette values.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var jt jsonTheme
	if err := json.Unmarshal(data, &jt); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if jt.Name == "" {
		return nil, fmt.Errorf("theme file %s: missing name", path)
	}

	return &Theme{
		Name:    jt.Name,
		Palette: convertPalette(jt.Palette, DefaultPalette()),
	}, nil
}

// convertPalette maps jsonPalette fields onto a Palette, using base for empty fields.
func convertPalette(jp jsonPalette, base Palette) Palette {
	p := base

	// Map JSON fields to Palette fields by reflection on matching names.
	// This avoids a long manual mapping.
	jpv := reflect.ValueOf(jp)
	pv := reflect.ValueOf(&p).Elem()
	jpt := jpv.Type()

	for i := range jpt.NumField() {
		spec := jpv.Field(i).String()
		if spec == "" {
			continue
		}
		pf := pv.FieldByName(jpt.Field(i).Name)
		if pf.IsValid() && pf.CanSet() {
			pf.Set(reflect.ValueOf(NewColor(spec)))
		}
	}

	return p
}
