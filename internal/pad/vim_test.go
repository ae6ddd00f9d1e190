// ABOUTME: Tests for the vim modal editing engine
// ABOUTME: Covers motions, operators, insert transitions, and dispose semantics

package pad

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func vimEditor(t *testing.T, text string) *EditorModel {
	t.Helper()
	ed := NewEditorModel(EditorOptions{InitialText: text, Height: 5})
	return &ed
}

func pressRunes(v *VimEngine, ed *EditorModel, keys string) {
	for _, r := range keys {
		v.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, ed)
	}
}

func pressEsc(v *VimEngine, ed *EditorModel) {
	v.HandleKey(tea.KeyMsg{Type: tea.KeyEscape}, ed)
}

func TestVimModeString(t *testing.T) {
	t.Parallel()

	if got := VimNormal.String(); got != "NORMAL" {
		t.Errorf("VimNormal.String() = %q, want NORMAL", got)
	}
	if got := VimInsert.String(); got != "INSERT" {
		t.Errorf("VimInsert.String() = %q, want INSERT", got)
	}
}

func TestNewVimEngine_StartsInNormalMode(t *testing.T) {
	t.Parallel()

	v := NewVimEngine()
	if v.Mode() != VimNormal {
		t.Errorf("Mode() = %v, want VimNormal", v.Mode())
	}
	if got := v.Badge(); got != "VIM NORMAL" {
		t.Errorf("Badge() = %q, want VIM NORMAL", got)
	}
}

func TestVimEngine_Motions(t *testing.T) {
	t.Parallel()

	// Buffer normalizes to ["alpha beta", "gamma delta", ""].
	tests := []struct {
		name             string
		startRow, startCol int
		keys             string
		wantRow, wantCol int
	}{
		{"l moves right", 0, 0, "l", 0, 1},
		{"h moves left", 0, 3, "h", 0, 2},
		{"h at line start stays", 0, 0, "h", 0, 0},
		{"j moves down", 0, 4, "j", 1, 4},
		{"k moves up", 1, 2, "k", 0, 2},
		{"0 jumps to line start", 0, 7, "0", 0, 0},
		{"dollar jumps to line end", 0, 2, "$", 0, 10},
		{"w to next word", 0, 0, "w", 0, 6},
		{"w at last word wraps to next line", 0, 6, "w", 1, 0},
		{"b to word start", 0, 8, "b", 0, 6},
		{"b at line start wraps to previous line", 1, 0, "b", 0, 6},
		{"e to word end", 0, 0, "e", 0, 4},
		{"G jumps to last line", 0, 5, "G", 2, 0},
		{"gg jumps to first line", 2, 0, "gg", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ed := vimEditor(t, "alpha beta\ngamma delta")
			ed.row, ed.col = tt.startRow, tt.startCol
			v := NewVimEngine()
			pressRunes(v, ed, tt.keys)

			if ed.row != tt.wantRow || ed.col != tt.wantCol {
				t.Errorf("cursor = (%d,%d), want (%d,%d)", ed.row, ed.col, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestVimEngine_ArrowKeysInNormalMode(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "alpha\nbeta")
	ed.row, ed.col = 0, 0
	v := NewVimEngine()

	if !v.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ed) {
		t.Fatal("down arrow not consumed in normal mode")
	}
	if ed.row != 1 {
		t.Errorf("row = %d after down arrow, want 1", ed.row)
	}
	v.HandleKey(tea.KeyMsg{Type: tea.KeyRight}, ed)
	if ed.col != 1 {
		t.Errorf("col = %d after right arrow, want 1", ed.col)
	}
}

func TestVimEngine_XDeletesCharacter(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "abc")
	ed.row, ed.col = 0, 0
	v := NewVimEngine()
	pressRunes(v, ed, "x")

	if got := ed.Line(0); got != "bc" {
		t.Errorf("line = %q after x, want bc", got)
	}
}

func TestVimEngine_UUndoesEdit(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "abc")
	ed.row, ed.col = 0, 0
	v := NewVimEngine()
	pressRunes(v, ed, "xu")

	if got := ed.Line(0); got != "abc" {
		t.Errorf("line = %q after x then u, want abc", got)
	}
}

func TestVimEngine_DDDeletesLine(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "one\ntwo\nthree")
	ed.row, ed.col = 1, 0
	v := NewVimEngine()
	pressRunes(v, ed, "dd")

	if got := ed.Text(); got != "one\nthree\n" {
		t.Errorf("text = %q after dd, want one\\nthree\\n", got)
	}
	if ed.row != 1 {
		t.Errorf("row = %d after dd, want 1", ed.row)
	}
}

func TestVimEngine_DDOnOnlyLineClearsIt(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "lonely")
	ed.lines = ed.lines[:1]
	ed.row, ed.col = 0, 3
	v := NewVimEngine()
	pressRunes(v, ed, "dd")

	if got := ed.Line(0); got != "" {
		t.Errorf("line = %q after dd on only line, want empty", got)
	}
	if ed.LineCount() != 1 {
		t.Errorf("line count = %d, want 1", ed.LineCount())
	}
}

func TestVimEngine_DWDeletesWord(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "alpha beta")
	ed.row, ed.col = 0, 0
	v := NewVimEngine()
	pressRunes(v, ed, "dw")

	if got := ed.Line(0); got != "beta" {
		t.Errorf("line = %q after dw, want beta", got)
	}
	if v.Mode() != VimNormal {
		t.Errorf("mode = %v after dw, want VimNormal", v.Mode())
	}
}

func TestVimEngine_CWEntersInsertMode(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "alpha beta")
	ed.row, ed.col = 0, 0
	v := NewVimEngine()
	pressRunes(v, ed, "cw")

	if got := ed.Line(0); got != "beta" {
		t.Errorf("line = %q after cw, want beta", got)
	}
	if v.Mode() != VimInsert {
		t.Errorf("mode = %v after cw, want VimInsert", v.Mode())
	}
}

func TestVimEngine_InsertTransitions(t *testing.T) {
	t.Parallel()

	// Buffer normalizes to ["word", ""].
	tests := []struct {
		name             string
		keys             string
		wantRow, wantCol int
	}{
		{"i stays in place", "i", 0, 1},
		{"a advances one column", "a", 0, 2},
		{"A jumps to line end", "A", 0, 4},
		{"I jumps to line start", "I", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ed := vimEditor(t, "word")
			ed.row, ed.col = 0, 1
			v := NewVimEngine()
			pressRunes(v, ed, tt.keys)

			if v.Mode() != VimInsert {
				t.Fatalf("mode = %v, want VimInsert", v.Mode())
			}
			if ed.row != tt.wantRow || ed.col != tt.wantCol {
				t.Errorf("cursor = (%d,%d), want (%d,%d)", ed.row, ed.col, tt.wantRow, tt.wantCol)
			}
			if got := v.Badge(); got != "VIM INSERT" {
				t.Errorf("Badge() = %q, want VIM INSERT", got)
			}
		})
	}
}

func TestVimEngine_OOpensLineBelow(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "alpha")
	ed.row, ed.col = 0, 2
	v := NewVimEngine()
	pressRunes(v, ed, "o")

	if got := ed.Text(); got != "alpha\n\n" {
		t.Errorf("text = %q after o, want alpha\\n\\n", got)
	}
	if ed.row != 1 || ed.col != 0 {
		t.Errorf("cursor = (%d,%d) after o, want (1,0)", ed.row, ed.col)
	}
	if v.Mode() != VimInsert {
		t.Errorf("mode = %v after o, want VimInsert", v.Mode())
	}
}

func TestVimEngine_OOpensLineAbove(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "alpha")
	ed.row, ed.col = 0, 2
	v := NewVimEngine()
	pressRunes(v, ed, "O")

	if got := ed.Line(0); got != "" {
		t.Errorf("line 0 = %q after O, want empty", got)
	}
	if got := ed.Line(1); got != "alpha" {
		t.Errorf("line 1 = %q after O, want alpha", got)
	}
	if ed.row != 0 || ed.col != 0 {
		t.Errorf("cursor = (%d,%d) after O, want (0,0)", ed.row, ed.col)
	}
	if v.Mode() != VimInsert {
		t.Errorf("mode = %v after O, want VimInsert", v.Mode())
	}
}

func TestVimEngine_EscapeCancelsPendingOperator(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "alpha beta")
	ed.row, ed.col = 0, 0
	v := NewVimEngine()

	pressRunes(v, ed, "d")
	pressEsc(v, ed)
	pressRunes(v, ed, "w")

	if got := ed.Line(0); got != "alpha beta" {
		t.Errorf("line = %q, want unchanged alpha beta", got)
	}
	if ed.col != 6 {
		t.Errorf("col = %d, want 6 (w ran as plain motion)", ed.col)
	}
}

func TestVimEngine_InsertModePassesKeysThrough(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "word")
	ed.row, ed.col = 0, 0
	v := NewVimEngine()
	pressRunes(v, ed, "i")

	consumed := v.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, ed)
	if consumed {
		t.Error("rune key consumed in insert mode, want pass-through")
	}
	if got := ed.Line(0); got != "word" {
		t.Errorf("line = %q, engine must not edit in insert mode", got)
	}

	pressEsc(v, ed)
	if v.Mode() != VimNormal {
		t.Errorf("mode = %v after escape, want VimNormal", v.Mode())
	}
}

func TestVimEngine_Dispose(t *testing.T) {
	t.Parallel()

	ed := vimEditor(t, "word")
	ed.row, ed.col = 0, 0
	v := NewVimEngine()
	v.Dispose()

	if !v.Disposed() {
		t.Error("Disposed() = false after Dispose")
	}
	if got := v.Badge(); got != "" {
		t.Errorf("Badge() = %q after dispose, want empty", got)
	}
	if v.Mode() != VimInsert {
		t.Errorf("Mode() = %v after dispose, want VimInsert", v.Mode())
	}
	if v.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, ed) {
		t.Error("disposed engine consumed a key")
	}
	if got := ed.Line(0); got != "word" {
		t.Errorf("line = %q, disposed engine must not edit", got)
	}
}

func TestVimEngine_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var v *VimEngine
	ed := vimEditor(t, "word")

	v.Dispose()
	if v.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, ed) {
		t.Error("nil engine consumed a key")
	}
	if got := v.Badge(); got != "" {
		t.Errorf("nil Badge() = %q, want empty", got)
	}
	if v.Mode() != VimInsert {
		t.Errorf("nil Mode() = %v, want VimInsert", v.Mode())
	}
}

func TestVimEngine_UnmountedEditorIgnored(t *testing.T) {
	t.Parallel()

	var ed EditorModel
	v := NewVimEngine()

	if v.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, &ed) {
		t.Error("key consumed against an unmounted editor")
	}
}

func TestNextWordStart(t *testing.T) {
	t.Parallel()

	line := []rune("foo  bar baz")
	tests := []struct {
		pos, want int
	}{
		{0, 5},
		{5, 9},
		{9, 12},
		{12, 12},
	}
	for _, tt := range tests {
		if got := nextWordStart(line, tt.pos); got != tt.want {
			t.Errorf("nextWordStart(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestPrevWordStart(t *testing.T) {
	t.Parallel()

	line := []rune("foo  bar baz")
	tests := []struct {
		pos, want int
	}{
		{12, 9},
		{9, 5},
		{5, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := prevWordStart(line, tt.pos); got != tt.want {
			t.Errorf("prevWordStart(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}
