// ABOUTME: All custom tea.Msg types for the pad TUI
// ABOUTME: Config reloads, overlay dismissal, save results, and vim toggling

package pad

// --- Config events (sent by the watcher goroutine via Program.Send) ---

// ConfigReloadedMsg signals that settings or keybindings changed on disk.
// The receiver re-reads everything, so the message carries no payload.
type ConfigReloadedMsg struct{}

// --- Palette overlay ---

// PaletteSelectMsg carries the keyword chosen in the command palette.
type PaletteSelectMsg struct{ Keyword string }

// PaletteDismissMsg closes the palette without a selection.
type PaletteDismissMsg struct{}

// --- Preview overlay ---

// PreviewDismissMsg closes the markdown preview.
type PreviewDismissMsg struct{}

// --- Pad actions ---

// ToggleVimMsg drives the same enable/disable path as the vim keywords.
type ToggleVimMsg struct{}

// SaveDoneMsg carries the result of an asynchronous buffer save.
type SaveDoneMsg struct {
	Path string
	Err  error
}
