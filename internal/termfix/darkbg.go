// ABOUTME: Forces lipgloss onto a dark background before bubbletea initializes
// ABOUTME: Blank-import from package main ahead of anything that pulls in bubbletea

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// bubbletea's init() probes the terminal background with OSC 10/11
	// escape queries via lipgloss.HasDarkBackground(). The reply arrives
	// async on stdin and would end up as garbage runes in the editor
	// buffer. Setting the background explicitly here makes lipgloss skip
	// the probe entirely.
	//
	// Keep this package free of bubbletea imports (even transitive ones):
	// init order is what guarantees this runs before the probe could fire.
	lipgloss.SetHasDarkBackground(true)
}
