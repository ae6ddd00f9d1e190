// ABOUTME: Root PadModel wiring all sub-models for the Bubble Tea pad TUI
// ABOUTME: Handles message routing, overlay management, the line interpreter, and key dispatch

package pad

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/mdpad/internal/commands"
	"github.com/mauromedda/mdpad/internal/config"
	"github.com/mauromedda/mdpad/internal/history"
	"github.com/mauromedda/mdpad/internal/keybindings"
	"github.com/mauromedda/mdpad/internal/log"
	"github.com/mauromedda/mdpad/pkg/theme"
)

// Deps carries everything the pad model needs from the caller.
type Deps struct {
	Settings    *config.Settings
	Registry    *commands.Registry
	Keys        *keybindings.Manager
	FilePath    string // "" for a scratch pad
	InitialText string
	HistoryPath string // "" disables history persistence
	ProjectRoot string
	Version     string
}

// padShared holds mutable state that must survive PadModel value copies.
// Bubble Tea copies the model on each Update; pointer fields are shared
// across copies. This avoids the need for a mutex: Update is single-threaded,
// and background goroutines only write via Program.Send.
type padShared struct {
	program  *tea.Program
	vim      *VimEngine
	appender *history.Appender
	markdown *MarkdownCache
}

// Send forwards msg to the attached program. Messages arriving before Run
// wires the program are dropped.
func (sh *padShared) Send(msg tea.Msg) {
	if sh == nil || sh.program == nil {
		return
	}
	sh.program.Send(msg)
}

// PadModel is the root Bubble Tea model for the pad TUI.
type PadModel struct {
	sh *padShared // survives value copies

	// State
	width, height int
	vimActive     bool

	// Sub-models (always present)
	editor EditorModel
	footer FooterModel

	// Overlay (nil = no overlay)
	overlay tea.Model

	// Dependencies
	deps     Deps
	registry *commands.Registry
	keys     *keybindings.Manager

	// History recall (oldest first; recallIdx == len(recall) means live line)
	recall     []string
	recallIdx  int
	recallLive string

	// Cached separator string (recomputed only on WindowSizeMsg)
	cachedSep string
}

// NewPadModel creates a PadModel wired with the given dependencies.
func NewPadModel(deps Deps) PadModel {
	cfg := deps.Settings

	registry := deps.Registry
	if registry == nil {
		registry = commands.NewRegistry()
	}
	keys := deps.Keys
	if keys == nil {
		keys = keybindings.NewFromBindings(config.NewKeybindings())
	}

	editor := NewEditorModel(EditorOptions{
		InitialText: deps.InitialText,
		Placeholder: "Type markdown, or \"help\" + enter",
		Height:      cfg.EffectiveHeight(),
		TabWidth:    cfg.EffectiveTabWidth(),
		WordWrap:    cfg.EffectiveWordWrap(),
		LinkDetect:  cfg.EffectiveLinkDetect(),
	})
	editor = editor.SetFocused(true)

	fileName := ""
	if deps.FilePath != "" {
		fileName = filepath.Base(deps.FilePath)
	}

	sh := &padShared{markdown: NewMarkdownCache()}

	var recall []string
	if deps.HistoryPath != "" {
		if a, err := history.NewAppender(deps.HistoryPath); err != nil {
			log.Warn("history disabled: %v", err)
		} else {
			sh.appender = a
		}
		if records, err := history.Load(deps.HistoryPath, cfg.EffectiveHistorySize()); err != nil {
			log.Warn("history load failed: %v", err)
		} else {
			recall = history.Lines(records)
		}
	}

	m := PadModel{
		sh:        sh,
		editor:    editor,
		footer:    NewFooterModel().WithFileName(fileName).WithWordWrap(cfg.EffectiveWordWrap()),
		deps:      deps,
		registry:  registry,
		keys:      keys,
		recall:    recall,
		recallIdx: len(recall),
	}
	m.footer = m.footer.WithHint(m.hintText())

	if cfg != nil && cfg.Vim {
		m = m.enableVim()
	}
	return m.syncFooter()
}

// SetProgram stores the program handle so background goroutines can Send.
func (m PadModel) SetProgram(p *tea.Program) {
	m.sh.program = p
}

// Close releases resources held across updates: the vim engine and the
// history appender.
func (m PadModel) Close() {
	if m.sh == nil {
		return
	}
	if m.sh.vim != nil {
		m.sh.vim.Dispose()
		m.sh.vim = nil
	}
	if m.sh.appender != nil {
		if err := m.sh.appender.Close(); err != nil {
			log.Warn("closing history: %v", err)
		}
		m.sh.appender = nil
	}
}

// VimActive reports whether vim mode is on.
func (m PadModel) VimActive() bool {
	return m.vimActive
}

// Editor returns the current editor sub-model.
func (m PadModel) Editor() EditorModel {
	return m.editor
}

// Footer returns the current footer sub-model.
func (m PadModel) Footer() FooterModel {
	return m.footer
}

// Init returns nil; background work is wired up by Run.
func (m PadModel) Init() tea.Cmd {
	return nil
}

// Update routes messages to the appropriate handler.
func (m PadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// --- Layout ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.cachedSep = strings.Repeat("─", max(msg.Width, 1))
		m = m.propagateSize(msg)
		return m, nil

	// --- Overlay result messages (always handled by root, even when overlay is active) ---
	case PaletteSelectMsg:
		m.overlay = nil
		m.editor = m.editor.SetFocused(true).ReplaceCurrentLine(msg.Keyword).SetGhostText("")
		return m.syncFooter(), nil

	case PaletteDismissMsg:
		m.overlay = nil
		m.editor = m.editor.SetFocused(true)
		return m, nil

	case PreviewDismissMsg:
		m.overlay = nil
		m.editor = m.editor.SetFocused(true)
		return m, nil

	// --- External control ---
	case ToggleVimMsg:
		return m.toggleVim()

	case ConfigReloadedMsg:
		return m.applyConfigReload(), nil

	case SaveDoneMsg:
		if msg.Err != nil {
			log.Warn("save %s failed: %v", msg.Path, msg.Err)
			return m, nil
		}
		m.editor = m.editor.MarkSaved()
		return m.syncFooter(), nil

	default:
		// Route to overlay if active (key presses, scrolling, etc.).
		// Quit and the preview toggle stay global.
		if m.overlay != nil {
			if key, ok := msg.(tea.KeyMsg); ok {
				switch m.keys.ActionForKey(key.String()) {
				case config.ActionQuit:
					return m, tea.Quit
				case config.ActionPreview:
					if _, isPreview := m.overlay.(PreviewModel); isPreview {
						m.overlay = nil
						m.editor = m.editor.SetFocused(true)
						return m, nil
					}
				}
			}
			return m.updateOverlay(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// View renders the full pad layout.
func (m PadModel) View() string {
	if m.width == 0 {
		return ""
	}

	s := Styles()
	sep := s.Border.Render(m.cachedSep)

	// Preview takes over the editor area
	if _, isPreview := m.overlay.(PreviewModel); isPreview {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.overlay.View(),
			sep,
			m.footer.View(),
		)
	}

	sections := []string{m.editor.View()}
	if m.overlay != nil {
		sections = append(sections, sep, m.overlay.View())
	}
	sections = append(sections,
		sep,
		m.footer.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// --- Key handling ---

func (m PadModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.ActionForKey(msg.String()) {
	case config.ActionQuit:
		return m, tea.Quit

	case config.ActionSubmit:
		return m.interpretLine().syncFooter(), nil

	case config.ActionToggleVim:
		return m.toggleVim()

	case config.ActionPalette:
		p := NewPaletteModel(m.registry)
		if line := m.editor.CurrentLine(); line != "" && !strings.Contains(line, " ") {
			p = p.SetFilter(line)
		}
		if m.width > 0 {
			updated, _ := p.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			p = updated.(PaletteModel)
		}
		m.overlay = p
		m.editor = m.editor.SetFocused(false)
		return m, nil

	case config.ActionPreview:
		m.overlay = NewPreviewModel(
			m.editor.Text(),
			max(m.width, 40),
			max(m.height-3, 1),
			m.sh.markdown,
		)
		m.editor = m.editor.SetFocused(false)
		return m, nil

	case config.ActionSave:
		return m, m.saveCmd()

	case config.ActionHistoryPrev:
		return m.recallPrev().syncFooter(), nil

	case config.ActionHistoryNext:
		return m.recallNext().syncFooter(), nil

	case config.ActionUndo:
		m.editor = m.editor.Undo()
		return m.syncFooter(), nil

	case config.ActionKillLine:
		m.editor = m.editor.KillToEnd()
		return m.syncFooter(), nil

	case config.ActionYank:
		m.editor = m.editor.Yank()
		return m.syncFooter(), nil
	}

	// Unbound keys go to the vim engine while it is live
	if m.vimActive && m.sh.vim.HandleKey(msg, &m.editor) {
		m.editor = m.editor.SetGhostText("")
		m.footer = m.footer.WithVimBadge(m.sh.vim.Badge())
		return m.syncFooter(), nil
	}

	// Plain editing
	updated, cmd := m.editor.Update(msg)
	m.editor = updated.(EditorModel)
	m.editor = m.editor.SetGhostText(m.computeGhostText())
	return m.syncFooter(), cmd
}

// --- Line interpretation ---

// interpretLine runs the command interpreter against the cursor line.
// The mode-toggle check and the table lookup are independent: a vim line
// both flips the mode and inserts its confirmation text. Unknown lines get
// a plain newline. An unmounted editor makes the whole thing a no-op.
func (m PadModel) interpretLine() PadModel {
	if !m.editor.Mounted() {
		return m
	}

	line := m.editor.CurrentLine()
	norm := commands.Normalize(line)
	row, _ := m.editor.CursorPos()

	if norm == "clear" {
		m.editor = m.editor.Clear().SetGhostText("")
		m = m.appendHistory(norm, string(commands.EffectClear))
		return m
	}

	if commands.IsEnableVim(norm) {
		m = m.enableVim()
	}
	if commands.IsDisableVim(norm) {
		m = m.disableVim()
	}

	if cmd, ok := m.registry.Get(norm); ok {
		if cmd.Output != "" {
			block := strings.Split(cmd.Output, "\n")
			m.editor = m.editor.InsertLinesBelow(row, block)
			m.editor = m.editor.MoveCursorAfterBlock(row, len(block))
		}
		m.editor = m.editor.SetGhostText("")
		m = m.appendHistory(norm, string(cmd.Effect))
		return m
	}

	m.editor = m.editor.InsertNewline().SetGhostText("")
	return m
}

// appendHistory records an interpreted command line for persistence and
// recall, collapsing consecutive duplicates.
func (m PadModel) appendHistory(line, effect string) PadModel {
	if m.sh.appender != nil {
		if err := m.sh.appender.Append(line, effect); err != nil {
			log.Warn("history append failed: %v", err)
		}
	}

	if trimmed := strings.TrimSpace(line); trimmed != "" {
		if n := len(m.recall); n == 0 || m.recall[n-1] != trimmed {
			m.recall = append(m.recall, trimmed)
		}
	}
	m.recallIdx = len(m.recall)
	m.recallLive = ""
	return m
}

// --- Vim mode ---

// enableVim starts a fresh engine. An already-live engine is disposed first
// so repeated enables never stack state.
func (m PadModel) enableVim() PadModel {
	if m.sh.vim != nil {
		m.sh.vim.Dispose()
	}
	m.sh.vim = NewVimEngine()
	m.vimActive = true
	m.footer = m.footer.WithVimBadge(m.sh.vim.Badge())
	return m
}

// disableVim tears the engine down and clears the badge in the same update.
// A second disable is a no-op.
func (m PadModel) disableVim() PadModel {
	if m.sh.vim != nil {
		m.sh.vim.Dispose()
		m.sh.vim = nil
	}
	m.vimActive = false
	m.footer = m.footer.WithVimBadge("")
	return m
}

// toggleVim flips vim mode through the same enable/disable path the vim and
// novim keywords use.
func (m PadModel) toggleVim() (tea.Model, tea.Cmd) {
	if m.vimActive {
		return m.disableVim(), nil
	}
	return m.enableVim(), nil
}

// --- History recall ---

func (m PadModel) recallPrev() PadModel {
	if len(m.recall) == 0 || m.recallIdx == 0 {
		return m
	}
	if m.recallIdx == len(m.recall) {
		m.recallLive = m.editor.CurrentLine()
	}
	m.recallIdx--
	m.editor = m.editor.ReplaceCurrentLine(m.recall[m.recallIdx]).SetGhostText("")
	return m
}

func (m PadModel) recallNext() PadModel {
	if m.recallIdx >= len(m.recall) {
		return m
	}
	m.recallIdx++
	if m.recallIdx == len(m.recall) {
		m.editor = m.editor.ReplaceCurrentLine(m.recallLive).SetGhostText("")
		return m
	}
	m.editor = m.editor.ReplaceCurrentLine(m.recall[m.recallIdx]).SetGhostText("")
	return m
}

// --- Internal helpers ---

func (m PadModel) propagateSize(msg tea.WindowSizeMsg) PadModel {
	updated, _ := m.editor.Update(msg)
	m.editor = updated.(EditorModel)
	if msg.Height > 2 {
		m.editor = m.editor.SetHeight(msg.Height - 2)
	}

	fUpdated, _ := m.footer.Update(msg)
	m.footer = fUpdated.(FooterModel)

	if m.overlay != nil {
		oUpdated, _ := m.overlay.Update(msg)
		m.overlay = oUpdated
	}
	return m
}

func (m PadModel) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.overlay.Update(msg)
	m.overlay = updated
	return m, cmd
}

// syncFooter refreshes the footer segments that mirror editor state.
func (m PadModel) syncFooter() PadModel {
	row, col := m.editor.CursorPos()
	m.footer = m.footer.
		WithCursor(row+1, col+1).
		WithLineCount(m.editor.LineCount()).
		WithLinkCount(m.editor.LinkCount()).
		WithDirty(m.editor.Dirty())
	return m
}

// saveCmd writes the buffer to its file asynchronously. A scratch pad has
// nowhere to save, so the action is silently dropped.
func (m PadModel) saveCmd() tea.Cmd {
	path := m.deps.FilePath
	if path == "" {
		return nil
	}
	text := m.editor.Text()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	return func() tea.Msg {
		err := os.WriteFile(path, []byte(text), 0o644)
		return SaveDoneMsg{Path: path, Err: err}
	}
}

// computeGhostText returns the completion suffix for the current line.
// Only single-word lines complete, matching how commands are typed.
func (m PadModel) computeGhostText() string {
	line := m.editor.CurrentLine()
	if line == "" || strings.Contains(line, " ") {
		return ""
	}
	match := m.registry.BestMatch(line)
	if match == "" {
		return ""
	}
	return match[len(line):]
}

// applyConfigReload re-reads settings and keybindings after a disk change.
// Vim mode is runtime state and is left alone.
func (m PadModel) applyConfigReload() PadModel {
	cfg, err := config.Load(m.deps.ProjectRoot)
	if err != nil {
		log.Warn("config reload failed: %v", err)
		return m
	}
	m.deps.Settings = cfg

	if t := theme.Builtin(cfg.Theme); t != nil {
		theme.Set(t)
	}
	if m.keys != nil {
		m.keys.Reload(
			config.GlobalKeybindingsFile(),
			config.ProjectKeybindingsFile(m.deps.ProjectRoot),
		)
	}

	m.editor = m.editor.
		SetWordWrap(cfg.EffectiveWordWrap()).
		SetLinkDetect(cfg.EffectiveLinkDetect())
	m.footer = m.footer.
		WithWordWrap(cfg.EffectiveWordWrap()).
		WithHint(m.hintText())
	return m.syncFooter()
}

// hintText builds the footer hint from the live bindings.
func (m PadModel) hintText() string {
	if m.keys == nil {
		return ""
	}

	var parts []string
	for _, h := range []struct {
		action config.KeyAction
		label  string
	}{
		{config.ActionToggleVim, "vim"},
		{config.ActionPalette, "commands"},
		{config.ActionPreview, "preview"},
		{config.ActionSave, "save"},
	} {
		if key := m.keys.KeyFor(h.action); key != "" {
			parts = append(parts, key+" "+h.label)
		}
	}
	return strings.Join(parts, "  ")
}
