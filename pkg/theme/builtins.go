// ABOUTME: Built-in themes: dark, light, monochrome
// ABOUTME: Provides Builtin(name) lookup and BuiltinNames() enumeration

package theme

var builtins = map[string]*Theme{
	"dark": {
		Name:    "dark",
		Palette: DefaultPalette(),
	},
	"light": {
		Name: "light",
		Palette: Palette{
			Primary:   NewColor("235"),
			Secondary: NewColor("243"),
			Muted:     NewColor("249"),
			Accent:    NewColor("166"),

			Success: NewColor("28"),
			Warning: NewColor("130"),
			Error:   NewColor("160"),
			Info:    NewColor("25"),

			Border:    NewColor("250"),
			Selection: NewColor("254"),
			Cursor:    NewColor("235"),
			Link:      NewColor("26"),

			FooterFile: NewColor("235"),
			FooterPos:  NewColor("243"),
			FooterVim:  NewColor("28"),
			FooterHint: NewColor("249"),
		},
	},
	"monochrome": {
		Name: "monochrome",
		Palette: Palette{
			Primary:   NewColor("15"),
			Secondary: NewColor("7"),
			Muted:     NewColor("8"),
			Accent:    NewColor("15"),

			Success: NewColor("15"),
			Warning: NewColor("7"),
			Error:   NewColor("15"),
			Info:    NewColor("7"),

			Border:    NewColor("8"),
			Selection: NewColor("8"),
			Cursor:    NewColor("15"),
			Link:      NewColor("7"),

			FooterFile: NewColor("15"),
			FooterPos:  NewColor("7"),
			FooterVim:  NewColor("15"),
			FooterHint: NewColor("8"),
		},
	},
}

// Builtin returns a built-in theme by name, or nil if unknown.
func Builtin(name string) *Theme {
	return builtins[name]
}

// BuiltinNames returns the names of all built-in themes.
func BuiltinNames() []string {
	return []string{"dark", "light", "monochrome"}
}
