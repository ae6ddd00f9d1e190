// ABOUTME: Semantic color theme types: Color, Palette, Theme
// ABOUTME: Colors hold lipgloss-compatible specs (256-color index or hex)

package theme

// Color is a terminal color spec understood by lipgloss: an ANSI 256-color
// index ("245") or a hex value ("#89b4fa"). The zero Color renders unstyled.
type Color struct {
	spec string
}

// NewColor creates a Color from a lipgloss color spec.
func NewColor(spec string) Color {
	return Color{spec: spec}
}

// Spec returns the raw color spec.
func (c Color) Spec() string {
	return c.spec
}

// IsSet reports whether the color has a non-empty spec.
func (c Color) IsSet() bool {
	return c.spec != ""
}

// Palette holds all semantic colors for a theme.
type Palette struct {
	// Text
	Primary   Color
	Secondary Color
	Muted     Color
	Accent    Color

	// Semantic
	Success Color
	Warning Color
	Error   Color
	Info    Color

	// UI
	Border    Color
	Selection Color
	Cursor    Color
	Link      Color

	// Footer
	FooterFile Color
	FooterPos  Color
	FooterVim  Color
	FooterHint Color
}

// Theme holds a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// DefaultPalette returns the dark palette that mdpad starts with.
func DefaultPalette() Palette {
	return Palette{
		Primary:   NewColor("252"),
		Secondary: NewColor("245"),
		Muted:     NewColor("240"),
		Accent:    NewColor("214"),

		Success: NewColor("114"),
		Warning: NewColor("221"),
		Error:   NewColor("203"),
		Info:    NewColor("117"),

		Border:    NewColor("238"),
		Selection: NewColor("236"),
		Cursor:    NewColor("252"),
		Link:      NewColor("111"),

		FooterFile: NewColor("252"),
		FooterPos:  NewColor("245"),
		FooterVim:  NewColor("114"),
		FooterHint: NewColor("240"),
	}
}
