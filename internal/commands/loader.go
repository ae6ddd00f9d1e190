// ABOUTME: User command loading from markdown files with YAML frontmatter
// ABOUTME: Directories load concurrently; later directories win on conflicts

package commands

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/mdpad/internal/config"
	"github.com/mauromedda/mdpad/internal/log"
)

// commandMeta is the frontmatter schema for user command files.
type commandMeta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// LoadUserCommands reads *.md command files from the given directories and
// registers them. Directories are scanned concurrently and applied in
// argument order, so later directories override earlier ones. Invalid files
// and builtin collisions are skipped with a log line, never fatal. Missing
// directories are ignored.
func (r *Registry) LoadUserCommands(dirs ...string) {
	loaded := make([][]*Command, len(dirs))

	var g errgroup.Group
	for i, dir := range dirs {
		g.Go(func() error {
			loaded[i] = loadCommandsDir(dir)
			return nil
		})
	}
	_ = g.Wait() // individual goroutines never return errors

	for _, cmds := range loaded {
		for _, cmd := range cmds {
			if err := r.Register(cmd); err != nil {
				log.Warn("skipping user command %s: %v", cmd.Source, err)
			}
		}
	}
}

// loadCommandsDir reads all .md command files in one directory.
func loadCommandsDir(dir string) []*Command {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var cmds []*Command
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("reading command file %s: %v", path, err)
			continue
		}

		meta, body, err := config.ParseFrontmatter[commandMeta](string(data))
		if err != nil {
			log.Warn("parsing command file %s: %v", path, err)
			continue
		}

		name := meta.Name
		if name == "" {
			name = strings.TrimSuffix(de.Name(), ".md")
		}
		desc := meta.Description
		if desc == "" {
			desc = "User command"
		}

		cmds = append(cmds, &Command{
			Keyword:     name,
			Description: desc,
			Output:      strings.TrimRight(body, "\n"),
			Effect:      EffectInsert,
			Source:      path,
		})
	}
	return cmds
}
