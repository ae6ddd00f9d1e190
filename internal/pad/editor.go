// ABOUTME: EditorModel is a Bubble Tea multi-line rune editor with kill ring and undo
// ABOUTME: Owns the pad buffer; wraps lines, windows by height, highlights links

package pad

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/mdpad/internal/linkify"
	"github.com/mauromedda/mdpad/pkg/textwidth"
)

// --- Kill ring ---

const killRingSize = 32

// killRing is a minimal Emacs-style ring buffer for killed (cut) text.
type killRing struct {
	entries []string
	pos     int
	size    int
}

func newKillRing() *killRing {
	return &killRing{
		entries: make([]string, 0, killRingSize),
		size:    killRingSize,
	}
}

func (kr *killRing) push(text string) {
	if len(kr.entries) < kr.size {
		kr.entries = append(kr.entries, text)
	} else {
		kr.entries[kr.pos] = text
	}
	kr.pos = (kr.pos + 1) % kr.size
}

func (kr *killRing) yank() string {
	if len(kr.entries) == 0 {
		return ""
	}
	idx := (kr.pos - 1 + len(kr.entries)) % len(kr.entries)
	return kr.entries[idx]
}

// --- Undo stack ---

// undoStack is a generic undo stack for editor state snapshots.
type undoStack[S any] struct {
	items   []S
	maxSize int
}

func newUndoStack[S any](maxSize int) *undoStack[S] {
	return &undoStack[S]{
		items:   make([]S, 0, maxSize),
		maxSize: maxSize,
	}
}

func (s *undoStack[S]) push(state S) {
	if len(s.items) >= s.maxSize {
		s.items = s.items[1:]
	}
	s.items = append(s.items, state)
}

func (s *undoStack[S]) undo() (S, bool) {
	if len(s.items) == 0 {
		var zero S
		return zero, false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

const editorUndoDepth = 200

const defaultTabWidth = 4

// CursorMarker is the visible block cursor character.
const CursorMarker = "█"

// editorState captures the full editor state for undo.
type editorState struct {
	lines [][]rune
	row   int
	col   int
}

// EditorModel is a multi-line text editor with kill ring, undo stack,
// word-wrap rendering, a height-limited scroll window, and URL highlighting.
// Implements tea.Model. The kill ring and undo stack are pointer types
// shared across value copies, which is the correct Bubble Tea pattern
// (same as bubbles/textarea). Only one copy is in use at a time.
type EditorModel struct {
	lines     [][]rune
	row, col  int
	focused   bool
	ring      *killRing
	undoStack *undoStack[editorState]

	placeholder string
	width       int
	height      int
	scroll      int // first visible display row
	wordWrap    bool
	linkDetect  bool
	tabWidth    int
	ghostText   string // dimmed completion shown after cursor
	dirty       bool
}

// EditorOptions configures a new editor.
type EditorOptions struct {
	InitialText string
	Placeholder string
	Height      int
	TabWidth    int
	WordWrap    bool
	LinkDetect  bool
}

// NewEditorModel creates an editor from opts. The buffer is normalized to
// end with one empty trailing line and the cursor is placed on it.
func NewEditorModel(opts EditorOptions) EditorModel {
	tw := opts.TabWidth
	if tw <= 0 {
		tw = defaultTabWidth
	}
	m := EditorModel{
		lines:       [][]rune{{}},
		ring:        newKillRing(),
		undoStack:   newUndoStack[editorState](editorUndoDepth),
		placeholder: opts.Placeholder,
		height:      opts.Height,
		wordWrap:    opts.WordWrap,
		linkDetect:  opts.LinkDetect,
		tabWidth:    tw,
	}
	if opts.InitialText != "" {
		m = m.SetText(opts.InitialText)
	}
	return m.normalizeTrailing()
}

// Init returns nil; no commands needed at startup.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update handles key and window-size messages.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.dispatchKey(msg)
		m.ensureCursorVisible()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ensureCursorVisible()
	}
	return m, nil
}

// View renders the visible window of the buffer with cursor and links.
func (m EditorModel) View() string {
	if m.width <= 0 || m.lines == nil {
		return ""
	}

	s := Styles()

	// Placeholder: shown when empty, focused, and placeholder is set
	if m.focused && m.isEmpty() && m.placeholder != "" {
		return CursorMarker + s.Dim.Render(m.placeholder)
	}

	var rows []string
	for i, line := range m.lines {
		if m.focused && i == m.row {
			rows = append(rows, m.renderCursorLine(line, s)...)
			continue
		}
		rows = append(rows, m.renderPlainLine(string(line), s)...)
	}

	// Window the display rows by height, keeping scroll in range.
	if m.height > 0 && len(rows) > m.height {
		start := min(m.scroll, len(rows)-m.height)
		if start < 0 {
			start = 0
		}
		rows = rows[start : start+m.height]
	}

	return strings.Join(rows, "\n")
}

// --- Public buffer API ---

// Mounted reports whether the editor has received a size and can render.
func (m EditorModel) Mounted() bool {
	return m.width > 0 && m.lines != nil
}

// Text returns the full buffer as a string with newline separators.
func (m EditorModel) Text() string {
	parts := make([]string, len(m.lines))
	for i, line := range m.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the buffer, places the cursor at the end, and resets the
// dirty flag. Used for loading content, not for edits.
func (m EditorModel) SetText(s string) EditorModel {
	raw := splitLines(s)
	m.lines = make([][]rune, len(raw))
	for i, l := range raw {
		m.lines[i] = []rune(l)
	}
	m.row = len(m.lines) - 1
	m.col = len(m.lines[m.row])
	m.scroll = 0
	m.dirty = false
	m.ensureCursorVisible()
	return m
}

// Line returns line i as a string, or "" when out of range.
func (m EditorModel) Line(i int) string {
	if i < 0 || i >= len(m.lines) {
		return ""
	}
	return string(m.lines[i])
}

// LineCount returns the number of lines in the buffer.
func (m EditorModel) LineCount() int {
	return len(m.lines)
}

// CursorPos returns the cursor position as (row, col).
func (m EditorModel) CursorPos() (int, int) {
	return m.row, m.col
}

// CurrentLine returns the line under the cursor.
func (m EditorModel) CurrentLine() string {
	return m.Line(m.row)
}

// Clear empties the buffer to a single empty line with the cursor on it.
func (m EditorModel) Clear() EditorModel {
	if m.lines == nil {
		return m
	}
	m.saveUndo()
	m.lines = [][]rune{{}}
	m.row, m.col = 0, 0
	m.scroll = 0
	return m
}

// InsertLinesBelow inserts the given lines immediately after row. The cursor
// is left untouched; callers place it with MoveCursorAfterBlock.
func (m EditorModel) InsertLinesBelow(row int, lines []string) EditorModel {
	if m.lines == nil || len(lines) == 0 {
		return m
	}
	if row < 0 {
		row = 0
	}
	if row >= len(m.lines) {
		row = len(m.lines) - 1
	}
	m.saveUndo()

	block := make([][]rune, len(lines))
	for i, l := range lines {
		block[i] = []rune(l)
	}
	newLines := make([][]rune, 0, len(m.lines)+len(block))
	newLines = append(newLines, m.lines[:row+1]...)
	newLines = append(newLines, block...)
	newLines = append(newLines, m.lines[row+1:]...)
	m.lines = newLines
	return m
}

// MoveCursorAfterBlock places the cursor at column 0 on the line following
// an n-line block inserted below row, appending an empty line when the
// block ends the buffer.
func (m EditorModel) MoveCursorAfterBlock(row, n int) EditorModel {
	if m.lines == nil {
		return m
	}
	target := row + n + 1
	if target >= len(m.lines) {
		m.lines = append(m.lines, []rune{})
		target = len(m.lines) - 1
	}
	m.row = target
	m.col = 0
	m.ensureCursorVisible()
	return m
}

// InsertNewline splits the current line at the cursor, the ordinary Enter
// behavior.
func (m EditorModel) InsertNewline() EditorModel {
	if m.lines == nil {
		return m
	}
	m.insertNewline()
	m.ensureCursorVisible()
	return m
}

// ReplaceCurrentLine swaps the cursor line for s, cursor at its end.
func (m EditorModel) ReplaceCurrentLine(s string) EditorModel {
	if m.lines == nil {
		return m
	}
	m.saveUndo()
	m.lines[m.row] = []rune(s)
	m.col = len(m.lines[m.row])
	return m
}

// Undo restores the most recent snapshot.
func (m EditorModel) Undo() EditorModel {
	m.doUndo()
	m.ensureCursorVisible()
	return m
}

// KillToEnd cuts from the cursor to the end of the line into the kill ring.
func (m EditorModel) KillToEnd() EditorModel {
	m.killToEnd()
	return m
}

// Yank inserts the most recently killed text at the cursor.
func (m EditorModel) Yank() EditorModel {
	m.yank()
	m.ensureCursorVisible()
	return m
}

// IsEmpty reports whether the buffer contains no text.
func (m EditorModel) IsEmpty() bool {
	return m.isEmpty()
}

// Dirty reports whether the buffer changed since the last SetText/MarkSaved.
func (m EditorModel) Dirty() bool {
	return m.dirty
}

// MarkSaved clears the dirty flag after a successful save.
func (m EditorModel) MarkSaved() EditorModel {
	m.dirty = false
	return m
}

// SetFocused sets the focus state. Returns a new model.
func (m EditorModel) SetFocused(focused bool) EditorModel {
	m.focused = focused
	return m
}

// Focused returns the focus state.
func (m EditorModel) Focused() bool {
	return m.focused
}

// SetHeight sets the visible row budget. Zero disables windowing.
func (m EditorModel) SetHeight(h int) EditorModel {
	m.height = h
	m.ensureCursorVisible()
	return m
}

// SetGhostText sets dimmed completion text shown after the cursor.
func (m EditorModel) SetGhostText(g string) EditorModel {
	m.ghostText = g
	return m
}

// GhostText returns the current ghost text.
func (m EditorModel) GhostText() string {
	return m.ghostText
}

// LinkCount returns the number of URLs in the buffer. Zero when link
// detection is off.
func (m EditorModel) LinkCount() int {
	if !m.linkDetect {
		return 0
	}
	n := 0
	for _, line := range m.lines {
		n += len(linkify.Scan(string(line)))
	}
	return n
}

// WordWrap reports whether word wrapping is on.
func (m EditorModel) WordWrap() bool {
	return m.wordWrap
}

// SetWordWrap toggles word wrapping and reclamps the scroll window.
func (m EditorModel) SetWordWrap(on bool) EditorModel {
	m.wordWrap = on
	m.scroll = 0
	m.ensureCursorVisible()
	return m
}

// SetLinkDetect toggles URL detection.
func (m EditorModel) SetLinkDetect(on bool) EditorModel {
	m.linkDetect = on
	return m
}

// --- Key dispatch ---

func (m *EditorModel) dispatchKey(msg tea.KeyMsg) {
	if m.lines == nil {
		return
	}
	switch msg.Type {
	case tea.KeyRunes:
		// Pastes arrive as one KeyRunes message with embedded newlines
		for _, r := range msg.Runes {
			switch r {
			case '\r', '\n':
				m.insertNewline()
			default:
				m.insertRune(r)
			}
		}
	case tea.KeySpace:
		m.insertRune(' ')
	case tea.KeyTab:
		if m.ghostText != "" {
			m.acceptGhostText()
		} else {
			m.insertText(strings.Repeat(" ", m.tabWidth))
		}
	case tea.KeyEnter:
		m.insertNewline()
	case tea.KeyBackspace:
		m.backspace()
	case tea.KeyDelete:
		m.delete()
	case tea.KeyLeft:
		m.moveCursorLeft()
	case tea.KeyRight:
		m.moveCursorRight()
	case tea.KeyUp:
		m.moveCursorUp()
	case tea.KeyDown:
		m.moveCursorDown()
	case tea.KeyHome:
		m.moveCursorHome()
	case tea.KeyEnd:
		m.moveCursorEnd()
	case tea.KeyCtrlA:
		m.moveCursorHome()
	case tea.KeyCtrlE:
		m.moveCursorEnd()
	case tea.KeyCtrlK:
		m.killToEnd()
	case tea.KeyCtrlY:
		m.yank()
	case tea.KeyCtrlZ:
		m.doUndo()
	}
}

// acceptGhostText inserts the ghost text at the cursor and clears it.
func (m *EditorModel) acceptGhostText() {
	if m.ghostText == "" {
		return
	}
	m.insertText(m.ghostText)
	m.ghostText = ""
}

// --- Editing operations ---

func (m *EditorModel) insertRune(r rune) {
	m.saveUndo()
	line := m.lines[m.row]
	newLine := make([]rune, len(line)+1)
	copy(newLine, line[:m.col])
	newLine[m.col] = r
	copy(newLine[m.col+1:], line[m.col:])
	m.lines[m.row] = newLine
	m.col++
}

func (m *EditorModel) insertNewline() {
	m.saveUndo()
	line := m.lines[m.row]
	before := make([]rune, m.col)
	copy(before, line[:m.col])
	after := make([]rune, len(line)-m.col)
	copy(after, line[m.col:])

	m.lines[m.row] = before

	newLines := make([][]rune, len(m.lines)+1)
	copy(newLines, m.lines[:m.row+1])
	newLines[m.row+1] = after
	copy(newLines[m.row+2:], m.lines[m.row+1:])
	m.lines = newLines

	m.row++
	m.col = 0
}

func (m *EditorModel) backspace() {
	if m.col > 0 {
		m.saveUndo()
		line := m.lines[m.row]
		m.lines[m.row] = append(line[:m.col-1], line[m.col:]...)
		m.col--
		return
	}
	if m.row == 0 {
		return
	}
	m.saveUndo()
	prevLen := len(m.lines[m.row-1])
	m.lines[m.row-1] = append(m.lines[m.row-1], m.lines[m.row]...)
	m.lines = append(m.lines[:m.row], m.lines[m.row+1:]...)
	m.row--
	m.col = prevLen
}

func (m *EditorModel) delete() {
	line := m.lines[m.row]
	if m.col < len(line) {
		m.saveUndo()
		m.lines[m.row] = append(line[:m.col], line[m.col+1:]...)
		return
	}
	if m.row >= len(m.lines)-1 {
		return
	}
	m.saveUndo()
	m.lines[m.row] = append(m.lines[m.row], m.lines[m.row+1]...)
	m.lines = append(m.lines[:m.row+1], m.lines[m.row+2:]...)
}

func (m *EditorModel) moveCursorLeft() {
	if m.col > 0 {
		m.col--
	} else if m.row > 0 {
		m.row--
		m.col = len(m.lines[m.row])
	}
}

func (m *EditorModel) moveCursorRight() {
	if m.col < len(m.lines[m.row]) {
		m.col++
	} else if m.row < len(m.lines)-1 {
		m.row++
		m.col = 0
	}
}

func (m *EditorModel) moveCursorUp() {
	if m.row > 0 {
		m.row--
		if m.col > len(m.lines[m.row]) {
			m.col = len(m.lines[m.row])
		}
	}
}

func (m *EditorModel) moveCursorDown() {
	if m.row < len(m.lines)-1 {
		m.row++
		if m.col > len(m.lines[m.row]) {
			m.col = len(m.lines[m.row])
		}
	}
}

func (m *EditorModel) moveCursorHome() {
	m.col = 0
}

func (m *EditorModel) moveCursorEnd() {
	m.col = len(m.lines[m.row])
}

func (m *EditorModel) killToEnd() {
	line := m.lines[m.row]
	if m.col >= len(line) {
		return
	}
	m.saveUndo()
	killed := string(line[m.col:])
	m.ring.push(killed)
	m.lines[m.row] = line[:m.col]
}

func (m *EditorModel) yank() {
	yanked := m.ring.yank()
	if yanked == "" {
		return
	}
	m.saveUndo()
	runes := []rune(yanked)
	line := m.lines[m.row]
	newLine := make([]rune, 0, len(line)+len(runes))
	newLine = append(newLine, line[:m.col]...)
	newLine = append(newLine, runes...)
	newLine = append(newLine, line[m.col:]...)
	m.lines[m.row] = newLine
	m.col += len(runes)
}

func (m *EditorModel) doUndo() {
	state, ok := m.undoStack.undo()
	if !ok {
		return
	}
	// Deep copy to prevent mutating the snapshot in the stack
	m.lines = make([][]rune, len(state.lines))
	for i, l := range state.lines {
		m.lines[i] = make([]rune, len(l))
		copy(m.lines[i], l)
	}
	m.row = state.row
	m.col = state.col
	m.dirty = true
}

func (m *EditorModel) insertText(text string) {
	m.saveUndo()
	line := m.lines[m.row]
	runes := []rune(text)
	newLine := make([]rune, len(line)+len(runes))
	copy(newLine, line[:m.col])
	copy(newLine[m.col:], runes)
	copy(newLine[m.col+len(runes):], line[m.col:])
	m.lines[m.row] = newLine
	m.col += len(runes)
}

func (m *EditorModel) saveUndo() {
	lines := make([][]rune, len(m.lines))
	for i, l := range m.lines {
		lines[i] = make([]rune, len(l))
		copy(lines[i], l)
	}
	m.undoStack.push(editorState{
		lines: lines,
		row:   m.row,
		col:   m.col,
	})
	m.dirty = true
}

func (m *EditorModel) isEmpty() bool {
	return len(m.lines) == 1 && len(m.lines[0]) == 0
}

// normalizeTrailing appends an empty line when the last line is non-empty
// and moves the cursor onto the final line.
func (m EditorModel) normalizeTrailing() EditorModel {
	if len(m.lines) == 0 {
		m.lines = [][]rune{{}}
	}
	if len(m.lines[len(m.lines)-1]) > 0 {
		m.lines = append(m.lines, []rune{})
	}
	m.row = len(m.lines) - 1
	m.col = 0
	return m
}

// --- Layout and view helpers ---

// wrapLine returns the display rows for one logical line under the current
// width and wrap settings.
func (m *EditorModel) wrapLine(line string) []string {
	ew := max(m.width, 1)
	if m.wordWrap {
		return textwidth.Wrap(line, ew)
	}
	return []string{line}
}

// cursorWrapRow locates the cursor within the wrapped rows of its line,
// returning the row index and the rune offset inside that row.
func (m *EditorModel) cursorWrapRow(wrapped []string) (int, int) {
	offset := m.col
	row := 0
	for row < len(wrapped)-1 {
		rowLen := len([]rune(wrapped[row]))
		if offset < rowLen {
			break
		}
		offset -= rowLen
		row++
	}
	return row, offset
}

// layoutMetrics returns the total display row count and the display row
// holding the cursor.
func (m *EditorModel) layoutMetrics() (total, cursorRow int) {
	for i, line := range m.lines {
		wrapped := m.wrapLine(string(line))
		if i == m.row {
			wr, _ := m.cursorWrapRow(wrapped)
			cursorRow = total + wr
		}
		total += len(wrapped)
	}
	return total, cursorRow
}

// ensureCursorVisible clamps the scroll offset so the cursor's display row
// stays inside the height window.
func (m *EditorModel) ensureCursorVisible() {
	if m.width <= 0 || m.height <= 0 || m.lines == nil {
		return
	}
	total, cursorRow := m.layoutMetrics()
	if cursorRow < m.scroll {
		m.scroll = cursorRow
	}
	if cursorRow >= m.scroll+m.height {
		m.scroll = cursorRow - m.height + 1
	}
	if m.scroll > total-m.height {
		m.scroll = max(total-m.height, 0)
	}
}

// renderPlainLine renders a non-cursor line, wrapping and styling URLs.
func (m *EditorModel) renderPlainLine(line string, s PadStyles) []string {
	if m.linkDetect {
		line = styleLinks(line, s.Link)
	}
	if m.wordWrap {
		return textwidth.Wrap(line, max(m.width, 1))
	}
	return []string{textwidth.TruncateToWidth(line, max(m.width, 1))}
}

// renderCursorLine renders the cursor line with the block marker and ghost
// text. Link styling is skipped on the line being edited.
func (m *EditorModel) renderCursorLine(line []rune, s PadStyles) []string {
	wrapped := m.wrapLine(string(line))
	cursorRow, offset := m.cursorWrapRow(wrapped)

	rows := make([]string, 0, len(wrapped))
	for wi, wl := range wrapped {
		if wi != cursorRow {
			rows = append(rows, wl)
			continue
		}
		runes := []rune(wl)
		if offset > len(runes) {
			offset = len(runes)
		}
		var b strings.Builder
		b.WriteString(string(runes[:offset]))
		b.WriteString(CursorMarker)
		if offset < len(runes) {
			b.WriteString(string(runes[offset:]))
		}
		// Ghost text renders after the cursor at end of line
		if m.ghostText != "" && offset >= len(runes) {
			b.WriteString(s.Dim.Render(m.ghostText))
		}
		rows = append(rows, b.String())
	}
	return rows
}

// styleLinks renders detected URL spans in the link style.
func styleLinks(line string, link lipgloss.Style) string {
	spans := linkify.Scan(line)
	if len(spans) == 0 {
		return line
	}
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(line[last:sp.Start])
		b.WriteString(link.Render(sp.URL))
		last = sp.End
	}
	b.WriteString(line[last:])
	return b.String()
}

// splitLines splits a string into lines, preserving the invariant that
// an empty string produces a single empty line.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}
