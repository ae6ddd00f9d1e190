// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --vim, --theme, --no-wrap, --no-history, --verbose, --version

package main

import "flag"

type cliArgs struct {
	vim       bool
	theme     string
	noWrap    bool
	noHistory bool
	verbose   bool
	version   bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.BoolVar(&args.vim, "vim", false, "Start with vim mode enabled")
	flag.StringVar(&args.theme, "theme", "", "Theme name (built-in or JSON file in a themes dir)")
	flag.BoolVar(&args.noWrap, "no-wrap", false, "Disable word wrapping")
	flag.BoolVar(&args.noHistory, "no-history", false, "Disable command history persistence")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
