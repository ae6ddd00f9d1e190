// ABOUTME: Entry point for the Bubble Tea pad TUI
// ABOUTME: Creates the tea.Program, wires the config reload bridge, and blocks until exit

package pad

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/mdpad/internal/config"
	"github.com/mauromedda/mdpad/internal/eventbus"
)

// ProgramSender is the interface for sending messages to Bubble Tea.
// Matches *tea.Program's Send method; padShared implements it with a nil guard.
type ProgramSender interface {
	Send(msg tea.Msg)
}

// RunReloadBridge subscribes to config reload events on the bus and forwards
// them into the program. Returns the unsubscribe function.
func RunReloadBridge(program ProgramSender, bus *eventbus.Bus[ConfigReloadedMsg]) func() {
	return bus.Subscribe(func(msg ConfigReloadedMsg) {
		program.Send(msg)
	})
}

// watchedConfigFiles lists the settings and keybinding files whose changes
// trigger a live reload.
func watchedConfigFiles(projectRoot string) []string {
	return []string{
		config.GlobalSettingsFile(),
		config.ProjectSettingsFile(projectRoot),
		config.GlobalKeybindingsFile(),
		config.ProjectKeybindingsFile(projectRoot),
	}
}

// Run starts the Bubble Tea pad app. Blocks until the user exits.
// The deps struct provides all external dependencies (settings, registry,
// keybindings, history path, etc.).
func Run(deps Deps) error {
	m := NewPadModel(deps)
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	// Inject the program reference into the shared state.
	// This is safe because NewPadModel allocates sh as a pointer,
	// and tea.NewProgram copies the model value but shares the pointer.
	m.SetProgram(p)

	// Config hot-reload: the watcher publishes on the bus from its polling
	// goroutine; the bridge forwards into the program via padShared.Send.
	bus := eventbus.New[ConfigReloadedMsg]()
	unsubscribe := RunReloadBridge(m.sh, bus)
	defer unsubscribe()

	watcher := config.NewWatcher(watchedConfigFiles(deps.ProjectRoot), func() {
		bus.Publish(ConfigReloadedMsg{})
	})
	watcher.Start()
	defer watcher.Stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
