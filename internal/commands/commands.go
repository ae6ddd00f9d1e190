// ABOUTME: Keyword command table for the pad interpreter
// ABOUTME: Builtins: clear, doc, explain, fix, help, novim (and "no vim"), vim

package commands

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Effect identifies what a matched command does to the pad.
type Effect string

const (
	// EffectInsert inserts the command output below the keyword line.
	EffectInsert Effect = "insert"
	// EffectClear empties the buffer; nothing is inserted afterwards.
	EffectClear Effect = "clear"
	// EffectEnableVim marks the vim-enable keyword. The interpreter toggles
	// mode through its own keyword check; this entry only supplies the
	// confirmation text.
	EffectEnableVim Effect = "enableVim"
	// EffectDisableVim marks the vim-disable keywords.
	EffectDisableVim Effect = "disableVim"
)

// SourceBuiltin marks commands registered at startup. User commands carry
// their defining file path instead.
const SourceBuiltin = "builtin"

// Command is one entry in the keyword table.
type Command struct {
	Keyword     string
	Description string
	Output      string // canned text inserted below the keyword line; empty for clear
	Effect      Effect
	Source      string
}

// Registry maps normalized keywords to commands.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates a registry with all builtin commands registered.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}
	r.registerBuiltins()
	return r
}

// Lookup normalizes the line and returns the matching command.
// The second return value reports whether the table matched.
func (r *Registry) Lookup(line string) (*Command, bool) {
	cmd, ok := r.commands[Normalize(line)]
	return cmd, ok
}

// Get returns a command by its already-normalized keyword.
func (r *Registry) Get(keyword string) (*Command, bool) {
	cmd, ok := r.commands[keyword]
	return cmd, ok
}

// List returns all commands sorted by keyword for deterministic output.
// Alias keys ("no vim") resolve to their primary entry and appear once.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for key, cmd := range r.commands {
		if key != cmd.Keyword {
			continue // alias key
		}
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Keyword < result[j].Keyword
	})
	return result
}

// Register adds a user command. Builtin keywords are reserved; registering
// over one is an error. A zero Effect defaults to EffectInsert. The help
// listing is rebuilt so it always matches the table.
func (r *Registry) Register(cmd *Command) error {
	key := Normalize(cmd.Keyword)
	if key == "" {
		return fmt.Errorf("empty command keyword")
	}
	if existing, ok := r.commands[key]; ok && existing.Source == SourceBuiltin {
		return fmt.Errorf("keyword %q is reserved", key)
	}
	if cmd.Effect == "" {
		cmd.Effect = EffectInsert
	}
	cmd.Keyword = key
	r.commands[key] = cmd
	r.regenHelp()
	return nil
}

// BestMatch returns the lexicographically first keyword with the given
// prefix, or "" when nothing matches. Used for ghost-text completion.
func (r *Registry) BestMatch(prefix string) string {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return ""
	}
	best := ""
	for key := range r.commands {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if best == "" || key < best {
			best = key
		}
	}
	return best
}

// Normalize canonicalizes a pad line for table lookup: NFC form, Unicode
// whitespace folded to single ASCII spaces, surrounding space trimmed,
// lowercased. "  No Vim " and "no vim" normalize identically.
func Normalize(line string) string {
	fields := strings.Fields(norm.NFC.String(line))
	return strings.ToLower(strings.Join(fields, " "))
}

// IsEnableVim reports whether the line is the vim-enable keyword. The mode
// toggle keys off the raw keyword, not the table entry, so a matching line
// both toggles mode and inserts the confirmation text.
func IsEnableVim(line string) bool {
	return Normalize(line) == "vim"
}

// IsDisableVim reports whether the line is a vim-disable keyword.
func IsDisableVim(line string) bool {
	switch Normalize(line) {
	case "novim", "no vim":
		return true
	}
	return false
}

// registerBuiltins adds the builtin commands to the registry.
func (r *Registry) registerBuiltins() {
	builtins := []*Command{
		{Keyword: "clear", Description: "Empty the pad", Effect: EffectClear},
		{Keyword: "doc", Description: "Insert a doc comment stub", Effect: EffectInsert, Output: DocText},
		{Keyword: "explain", Description: "Insert an explanation stub", Effect: EffectInsert, Output: ExplainText},
		{Keyword: "fix", Description: "Insert a fix suggestion stub", Effect: EffectInsert, Output: FixText},
		{Keyword: "help", Description: "List available commands", Effect: EffectInsert},
		{Keyword: "vim", Description: "Enable vim mode", Effect: EffectEnableVim, Output: VimEnabledText},
		{Keyword: "novim", Description: "Disable vim mode", Effect: EffectDisableVim, Output: VimDisabledText},
	}
	for _, cmd := range builtins {
		cmd.Source = SourceBuiltin
		r.commands[cmd.Keyword] = cmd
	}
	// "no vim" resolves to the same entry as "novim".
	r.commands["no vim"] = r.commands["novim"]
	r.regenHelp()
}

// regenHelp rebuilds the help command's output from the current table.
func (r *Registry) regenHelp() {
	if help, ok := r.commands["help"]; ok {
		help.Output = r.helpText()
	}
}

// helpText renders the command listing inserted by the help command.
func (r *Registry) helpText() string {
	cmds := r.List()
	width := 0
	for _, cmd := range cmds {
		if len(cmd.Keyword) > width {
			width = len(cmd.Keyword)
		}
	}

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, cmd.Keyword, cmd.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
