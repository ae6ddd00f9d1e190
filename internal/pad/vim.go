// ABOUTME: Vim-style modal editing engine over the pad editor buffer
// ABOUTME: Normal mode dispatch table is built lazily once via sync.OnceValue

package pad

import (
	"sync"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// VimMode represents the current vim editing mode.
type VimMode int

const (
	VimInsert VimMode = iota // plain text editing
	VimNormal                // navigation + operators
)

// String returns the badge label for the mode.
func (v VimMode) String() string {
	if v == VimNormal {
		return "NORMAL"
	}
	return "INSERT"
}

// VimEngine layers modal key handling over an EditorModel. Exactly one
// engine is live while vim mode is on; the pad disposes it on disable and
// before any re-enable.
type VimEngine struct {
	mode      VimMode
	pendingOp rune // 'd' or 'c', 0 when none
	pendingG  bool // first g of gg seen
	disposed  bool
}

// normalKeymap is the shared normal-mode dispatch table. It is built once,
// on the first enable, and reused by every later engine.
var normalKeymap = sync.OnceValue(buildNormalKeymap)

// NewVimEngine creates an engine in normal mode with clean transient state.
func NewVimEngine() *VimEngine {
	_ = normalKeymap()
	return &VimEngine{mode: VimNormal}
}

// Dispose resets all transient state so a later enable starts clean.
// A disposed engine consumes no keys.
func (v *VimEngine) Dispose() {
	if v == nil {
		return
	}
	v.mode = VimInsert
	v.pendingOp = 0
	v.pendingG = false
	v.disposed = true
}

// Disposed reports whether the engine has been disposed.
func (v *VimEngine) Disposed() bool {
	return v == nil || v.disposed
}

// Mode returns the current mode. A nil or disposed engine reports insert.
func (v *VimEngine) Mode() VimMode {
	if v == nil || v.disposed {
		return VimInsert
	}
	return v.mode
}

// Badge returns the footer badge text, empty when the engine is not live.
func (v *VimEngine) Badge() string {
	if v == nil || v.disposed {
		return ""
	}
	return "VIM " + v.mode.String()
}

// HandleKey processes one key while vim mode is on. It reports whether the
// key was consumed; unconsumed keys fall through to plain editing.
func (v *VimEngine) HandleKey(msg tea.KeyMsg, ed *EditorModel) bool {
	if v == nil || v.disposed || ed == nil || ed.lines == nil {
		return false
	}

	if v.mode == VimInsert {
		if msg.Type == tea.KeyEscape {
			v.mode = VimNormal
			v.pendingOp = 0
			v.pendingG = false
			return true
		}
		return false
	}

	// Normal mode. Arrow keys work alongside hjkl.
	switch msg.Type {
	case tea.KeyEscape:
		v.pendingOp = 0
		v.pendingG = false
		return true
	case tea.KeyLeft:
		ed.moveCursorLeft()
		return true
	case tea.KeyRight:
		ed.moveCursorRight()
		return true
	case tea.KeyUp:
		ed.moveCursorUp()
		return true
	case tea.KeyDown:
		ed.moveCursorDown()
		return true
	case tea.KeyRunes:
		// handled below
	default:
		// Swallow everything else in normal mode
		return true
	}

	if len(msg.Runes) == 0 {
		return true
	}
	r := msg.Runes[0]

	if v.pendingOp != 0 {
		v.handlePendingOp(r, ed)
		return true
	}
	if v.pendingG {
		v.pendingG = false
		if r == 'g' {
			ed.row = 0
			ed.col = min(ed.col, len(ed.lines[0]))
			ed.ensureCursorVisible()
		}
		return true
	}

	if fn, ok := normalKeymap()[r]; ok {
		fn(v, ed)
		ed.ensureCursorVisible()
	}
	return true
}

// handlePendingOp executes a pending operator (d or c) with the motion key.
func (v *VimEngine) handlePendingOp(motion rune, ed *EditorModel) {
	op := v.pendingOp
	v.pendingOp = 0

	switch motion {
	// dd / cc: operate on the whole line
	case op:
		ed.deleteLine()
		if op == 'c' {
			v.mode = VimInsert
		}

	// dw / cw: delete to the next word start
	case 'w':
		ed.deleteWordForward()
		if op == 'c' {
			v.mode = VimInsert
		}

	default:
		// Unknown motion; operator dropped
	}
}

// buildNormalKeymap constructs the normal-mode dispatch table.
func buildNormalKeymap() map[rune]func(*VimEngine, *EditorModel) {
	return map[rune]func(*VimEngine, *EditorModel){
		// Motions
		'h': func(_ *VimEngine, ed *EditorModel) { ed.moveCursorLeft() },
		'l': func(_ *VimEngine, ed *EditorModel) { ed.moveCursorRight() },
		'j': func(_ *VimEngine, ed *EditorModel) { ed.moveCursorDown() },
		'k': func(_ *VimEngine, ed *EditorModel) { ed.moveCursorUp() },
		'0': func(_ *VimEngine, ed *EditorModel) { ed.moveCursorHome() },
		'$': func(_ *VimEngine, ed *EditorModel) { ed.moveCursorEnd() },
		'w': func(_ *VimEngine, ed *EditorModel) { ed.moveWordForward() },
		'b': func(_ *VimEngine, ed *EditorModel) { ed.moveWordBack() },
		'e': func(_ *VimEngine, ed *EditorModel) { ed.moveWordEnd() },
		'G': func(_ *VimEngine, ed *EditorModel) {
			ed.row = len(ed.lines) - 1
			ed.col = min(ed.col, len(ed.lines[ed.row]))
		},

		// Edits
		'x': func(_ *VimEngine, ed *EditorModel) { ed.delete() },
		'u': func(_ *VimEngine, ed *EditorModel) { ed.doUndo() },

		// Insert transitions
		'i': func(v *VimEngine, _ *EditorModel) { v.mode = VimInsert },
		'a': func(v *VimEngine, ed *EditorModel) {
			if ed.col < len(ed.lines[ed.row]) {
				ed.col++
			}
			v.mode = VimInsert
		},
		'A': func(v *VimEngine, ed *EditorModel) {
			ed.moveCursorEnd()
			v.mode = VimInsert
		},
		'I': func(v *VimEngine, ed *EditorModel) {
			ed.moveCursorHome()
			v.mode = VimInsert
		},
		'o': func(v *VimEngine, ed *EditorModel) {
			ed.moveCursorEnd()
			ed.insertNewline()
			v.mode = VimInsert
		},
		'O': func(v *VimEngine, ed *EditorModel) {
			ed.moveCursorHome()
			ed.insertNewline()
			ed.moveCursorUp()
			v.mode = VimInsert
		},

		// Pending state
		'g': func(v *VimEngine, _ *EditorModel) { v.pendingG = true },
		'd': func(v *VimEngine, _ *EditorModel) { v.pendingOp = 'd' },
		'c': func(v *VimEngine, _ *EditorModel) { v.pendingOp = 'c' },
	}
}

// --- Multi-line word motions ---

func (m *EditorModel) moveWordForward() {
	line := m.lines[m.row]
	next := nextWordStart(line, m.col)
	if next >= len(line) && m.row < len(m.lines)-1 {
		m.row++
		m.col = 0
		return
	}
	m.col = next
}

func (m *EditorModel) moveWordBack() {
	if m.col == 0 && m.row > 0 {
		m.row--
		m.col = prevWordStart(m.lines[m.row], len(m.lines[m.row]))
		return
	}
	m.col = prevWordStart(m.lines[m.row], m.col)
}

func (m *EditorModel) moveWordEnd() {
	m.col = endOfWord(m.lines[m.row], m.col)
}

// deleteLine removes the cursor line entirely (vim dd).
func (m *EditorModel) deleteLine() {
	m.saveUndo()
	if len(m.lines) == 1 {
		m.lines[0] = m.lines[0][:0]
		m.col = 0
		return
	}
	m.lines = append(m.lines[:m.row], m.lines[m.row+1:]...)
	if m.row >= len(m.lines) {
		m.row = len(m.lines) - 1
	}
	m.col = min(m.col, len(m.lines[m.row]))
}

// deleteWordForward removes from the cursor to the next word start (vim dw).
func (m *EditorModel) deleteWordForward() {
	line := m.lines[m.row]
	end := nextWordStart(line, m.col)
	if end <= m.col {
		return
	}
	m.saveUndo()
	m.lines[m.row] = append(line[:m.col], line[end:]...)
}

// nextWordStart returns the position of the next word start after pos.
// Words are sequences of non-space characters separated by spaces.
func nextWordStart(text []rune, pos int) int {
	n := len(text)
	if pos >= n {
		return n
	}

	i := pos
	// Skip current word (non-spaces)
	for i < n && !unicode.IsSpace(text[i]) {
		i++
	}
	// Skip spaces
	for i < n && unicode.IsSpace(text[i]) {
		i++
	}
	return i
}

// prevWordStart returns the position of the previous word start before pos.
func prevWordStart(text []rune, pos int) int {
	if pos <= 0 {
		return 0
	}

	i := pos - 1
	// Skip spaces before cursor
	for i > 0 && unicode.IsSpace(text[i]) {
		i--
	}
	// Skip word chars backwards
	for i > 0 && !unicode.IsSpace(text[i-1]) {
		i--
	}
	return i
}

// endOfWord returns the position of the end of the current or next word.
func endOfWord(text []rune, pos int) int {
	n := len(text)
	if pos >= n-1 {
		return max(n-1, 0)
	}

	i := pos + 1
	// If on a space, skip spaces first
	for i < n && unicode.IsSpace(text[i]) {
		i++
	}
	// Move through word chars to end
	for i < n-1 && !unicode.IsSpace(text[i+1]) {
		i++
	}
	return i
}
