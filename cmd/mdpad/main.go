// ABOUTME: CLI entry point for mdpad
// ABOUTME: Parses flags, loads config, builds the command registry, starts the TUI

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	// termfix must be imported before any package that imports bubbletea.
	// It sets lipgloss.SetHasDarkBackground(true) in its init(), preventing
	// BubbleTea's tea_init.go from sending OSC 10/11 terminal queries whose
	// async responses leak garbage into the editor.
	_ "github.com/mauromedda/mdpad/internal/termfix"

	"github.com/mauromedda/mdpad/internal/commands"
	"github.com/mauromedda/mdpad/internal/config"
	"github.com/mauromedda/mdpad/internal/keybindings"
	mdlog "github.com/mauromedda/mdpad/internal/log"
	"github.com/mauromedda/mdpad/internal/pad"
	"github.com/mauromedda/mdpad/pkg/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("mdpad %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the full initialization sequence and starts the TUI.
func run(args cliArgs) error {
	if args.verbose {
		mdlog.SetLevel(mdlog.LevelDebug)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("mdpad needs an interactive terminal")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyCLIOverrides(cfg, args)

	resolveTheme(cfg, cwd)

	// Optional file argument: load existing content, create on save.
	var filePath, initialText string
	if rest := args.remaining(); len(rest) > 0 {
		filePath = rest[0]
		data, err := os.ReadFile(filePath)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", filePath, err)
		}
		initialText = string(data)
	}

	registry := commands.NewRegistry()
	registry.LoadUserCommands(config.CommandsDirs(cwd)...)

	keys := keybindings.New(
		config.GlobalKeybindingsFile(),
		config.ProjectKeybindingsFile(cwd),
	)

	historyPath := ""
	if !args.noHistory {
		historyPath = config.HistoryFile()
	}

	return pad.Run(pad.Deps{
		Settings:    cfg,
		Registry:    registry,
		Keys:        keys,
		FilePath:    filePath,
		InitialText: initialText,
		HistoryPath: historyPath,
		ProjectRoot: cwd,
		Version:     version,
	})
}

// applyCLIOverrides mutates cfg with flag values; flags win over config files.
func applyCLIOverrides(cfg *config.Settings, args cliArgs) {
	if args.vim {
		cfg.Vim = true
	}
	if args.theme != "" {
		cfg.Theme = args.theme
	}
	if args.noWrap {
		f := false
		cfg.WordWrap = &f
	}
}

// resolveTheme loads the theme from config. It checks:
// 1. Built-in theme names (dark, light, monochrome)
// 2. JSON file in theme directories
// Falls back to the default if not set or not found.
func resolveTheme(cfg *config.Settings, cwd string) {
	name := cfg.Theme
	if name == "" {
		return // already initialized to default
	}

	// Try built-in first
	if th := theme.Builtin(name); th != nil {
		theme.Set(th)
		return
	}

	// Try loading from theme directories
	for _, dir := range config.ThemesDirs(cwd) {
		path := filepath.Join(dir, name+".json")
		if th, err := theme.LoadFile(path); err == nil {
			theme.Set(th)
			return
		}
	}

	// Unknown theme; keep default
	fmt.Fprintf(os.Stderr, "warning: unknown theme %q, using default\n", name)
}
