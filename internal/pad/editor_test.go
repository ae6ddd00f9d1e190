// ABOUTME: Tests for the EditorModel buffer, cursor, undo, and rendering
// ABOUTME: White-box tests in the btea value-semantics style

package pad

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/mdpad/pkg/textwidth"
)

var _ tea.Model = EditorModel{}

func mountedEditor(t *testing.T, text string, opts EditorOptions) EditorModel {
	t.Helper()
	opts.InitialText = text
	m := NewEditorModel(opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(EditorModel)
}

func typeRunes(t *testing.T, m EditorModel, text string) EditorModel {
	t.Helper()
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(EditorModel)
	}
	return m
}

func TestEditor_NewNormalizesTrailingLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		initial           string
		wantText          string
		wantRow, wantCol  int
		wantLineCount     int
	}{
		{"empty buffer", "", "", 0, 0, 1},
		{"single line", "hello", "hello\n", 1, 0, 2},
		{"trailing newline kept", "hello\n", "hello\n", 1, 0, 2},
		{"multi line", "a\nb", "a\nb\n", 2, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewEditorModel(EditorOptions{InitialText: tt.initial})
			if got := m.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
			row, col := m.CursorPos()
			if row != tt.wantRow || col != tt.wantCol {
				t.Errorf("cursor = (%d,%d), want (%d,%d)", row, col, tt.wantRow, tt.wantCol)
			}
			if got := m.LineCount(); got != tt.wantLineCount {
				t.Errorf("LineCount() = %d, want %d", got, tt.wantLineCount)
			}
		})
	}
}

func TestEditor_MountedRequiresSize(t *testing.T) {
	t.Parallel()

	m := NewEditorModel(EditorOptions{})
	if m.Mounted() {
		t.Error("Mounted() = true before WindowSizeMsg")
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(EditorModel)
	if !m.Mounted() {
		t.Error("Mounted() = false after WindowSizeMsg")
	}
}

func TestEditor_TypingBuildsLine(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	m = typeRunes(t, m, "hello")

	if got := m.CurrentLine(); got != "hello" {
		t.Errorf("CurrentLine() = %q, want hello", got)
	}
	row, col := m.CursorPos()
	if row != 0 || col != 5 {
		t.Errorf("cursor = (%d,%d), want (0,5)", row, col)
	}
	if !m.Dirty() {
		t.Error("Dirty() = false after typing")
	}
}

func TestEditor_PasteWithNewlines(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("one\ntwo")})
	m = updated.(EditorModel)

	if got := m.Text(); got != "one\ntwo" {
		t.Errorf("Text() = %q after paste, want one\\ntwo", got)
	}
	if got := m.LineCount(); got != 2 {
		t.Errorf("LineCount() = %d, want 2", got)
	}
}

func TestEditor_EnterSplitsLine(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	m = typeRunes(t, m, "headtail")
	for i := 0; i < 4; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		m = updated.(EditorModel)
	}
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(EditorModel)

	if got := m.Text(); got != "head\ntail" {
		t.Errorf("Text() = %q, want head\\ntail", got)
	}
	row, col := m.CursorPos()
	if row != 1 || col != 0 {
		t.Errorf("cursor = (%d,%d), want (1,0)", row, col)
	}
}

func TestEditor_BackspaceJoinsLines(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "ab\ncd", EditorOptions{})
	// Cursor is on the trailing empty line; move to start of "cd"
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(EditorModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m = updated.(EditorModel)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(EditorModel)

	if got := m.Text(); got != "abcd\n" {
		t.Errorf("Text() = %q, want abcd\\n", got)
	}
	row, col := m.CursorPos()
	if row != 0 || col != 2 {
		t.Errorf("cursor = (%d,%d), want (0,2)", row, col)
	}
}

func TestEditor_TabInsertsSpaces(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{TabWidth: 2})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(EditorModel)

	if got := m.CurrentLine(); got != "  " {
		t.Errorf("CurrentLine() = %q, want two spaces", got)
	}
}

func TestEditor_TabAcceptsGhostText(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	m = typeRunes(t, m, "he")
	m = m.SetGhostText("lp")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(EditorModel)

	if got := m.CurrentLine(); got != "help" {
		t.Errorf("CurrentLine() = %q after tab, want help", got)
	}
	if got := m.GhostText(); got != "" {
		t.Errorf("GhostText() = %q after accept, want empty", got)
	}
}

func TestEditor_InsertLinesBelowMidBuffer(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "top\nbottom", EditorOptions{})
	m = m.InsertLinesBelow(0, []string{"one", "two"})

	if got := m.Text(); got != "top\none\ntwo\nbottom\n" {
		t.Errorf("Text() = %q, want block spliced after top", got)
	}
}

func TestEditor_MoveCursorAfterBlock(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "top\nbottom", EditorOptions{})
	m = m.InsertLinesBelow(0, []string{"one", "two"})
	m = m.MoveCursorAfterBlock(0, 2)

	row, col := m.CursorPos()
	if row != 3 || col != 0 {
		t.Errorf("cursor = (%d,%d), want (3,0) on bottom", row, col)
	}
	if got := m.CurrentLine(); got != "bottom" {
		t.Errorf("CurrentLine() = %q, want bottom", got)
	}
}

func TestEditor_MoveCursorAfterBlockAppendsAtEnd(t *testing.T) {
	t.Parallel()

	m := NewEditorModel(EditorOptions{})
	m.lines = [][]rune{[]rune("cmd")}
	m.row, m.col = 0, 3

	m = m.InsertLinesBelow(0, []string{"output"})
	m = m.MoveCursorAfterBlock(0, 1)

	if got := m.Text(); got != "cmd\noutput\n" {
		t.Errorf("Text() = %q, want appended empty line", got)
	}
	row, col := m.CursorPos()
	if row != 2 || col != 0 {
		t.Errorf("cursor = (%d,%d), want (2,0)", row, col)
	}
}

func TestEditor_ClearResetsToSingleLine(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "a\nb\nc", EditorOptions{})
	m = m.Clear()

	if !m.IsEmpty() {
		t.Errorf("IsEmpty() = false after Clear, text = %q", m.Text())
	}
	if got := m.LineCount(); got != 1 {
		t.Errorf("LineCount() = %d, want 1", got)
	}
	row, col := m.CursorPos()
	if row != 0 || col != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", row, col)
	}
}

func TestEditor_ClearIsUndoable(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "keep me", EditorOptions{})
	m = m.Clear()
	m = m.Undo()

	if got := m.Text(); got != "keep me\n" {
		t.Errorf("Text() = %q after undo, want keep me\\n", got)
	}
}

func TestEditor_ReplaceCurrentLine(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	m = typeRunes(t, m, "hel")
	m = m.ReplaceCurrentLine("help")

	if got := m.CurrentLine(); got != "help" {
		t.Errorf("CurrentLine() = %q, want help", got)
	}
	_, col := m.CursorPos()
	if col != 4 {
		t.Errorf("col = %d, want 4 (end of line)", col)
	}
}

func TestEditor_UndoRestoresTypedChars(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	m = typeRunes(t, m, "abc")
	m = m.Undo()

	if got := m.CurrentLine(); got != "ab" {
		t.Errorf("CurrentLine() = %q after one undo, want ab", got)
	}
	m = m.Undo()
	m = m.Undo()
	if got := m.CurrentLine(); got != "" {
		t.Errorf("CurrentLine() = %q after full undo, want empty", got)
	}
	// Undo on an empty stack is a no-op
	m = m.Undo()
	if got := m.CurrentLine(); got != "" {
		t.Errorf("CurrentLine() = %q after extra undo, want empty", got)
	}
}

func TestEditor_KillYankRoundTrip(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	m = typeRunes(t, m, "hello world")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m = updated.(EditorModel)

	m = m.KillToEnd()
	if got := m.CurrentLine(); got != "" {
		t.Fatalf("CurrentLine() = %q after kill, want empty", got)
	}

	m = m.Yank()
	if got := m.CurrentLine(); got != "hello world" {
		t.Errorf("CurrentLine() = %q after yank, want hello world", got)
	}
}

func TestEditor_DirtyLifecycle(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "initial", EditorOptions{})
	if m.Dirty() {
		t.Error("Dirty() = true on load")
	}

	m = typeRunes(t, m, "x")
	if !m.Dirty() {
		t.Error("Dirty() = false after edit")
	}

	m = m.MarkSaved()
	if m.Dirty() {
		t.Error("Dirty() = true after MarkSaved")
	}
}

func TestEditor_ViewUnmountedIsEmpty(t *testing.T) {
	t.Parallel()

	m := NewEditorModel(EditorOptions{InitialText: "text"})
	if got := m.View(); got != "" {
		t.Errorf("View() = %q before size, want empty", got)
	}
}

func TestEditor_ViewShowsPlaceholderWhenEmpty(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{Placeholder: "start typing"})
	m = m.SetFocused(true)

	view := textwidth.StripANSI(m.View())
	if !strings.Contains(view, "start typing") {
		t.Errorf("View() = %q, missing placeholder", view)
	}
	if !strings.Contains(view, CursorMarker) {
		t.Errorf("View() = %q, missing cursor marker", view)
	}
}

func TestEditor_ViewShowsCursorMarkerInLine(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	m = m.SetFocused(true)
	m = typeRunes(t, m, "abc")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(EditorModel)

	view := textwidth.StripANSI(m.View())
	if !strings.Contains(view, "ab"+CursorMarker+"c") {
		t.Errorf("View() = %q, want marker between b and c", view)
	}
}

func TestEditor_ViewWindowsByHeight(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, strings.Repeat("x", i+1))
	}
	m := mountedEditor(t, strings.Join(lines, "\n"), EditorOptions{Height: 3})

	view := m.View()
	rows := strings.Split(view, "\n")
	if len(rows) != 3 {
		t.Errorf("View() has %d rows, want 3", len(rows))
	}
	// Cursor is on the trailing empty line, so the window shows the bottom
	if !strings.Contains(view, strings.Repeat("x", 10)) {
		t.Errorf("View() = %q, want last content line visible", view)
	}
}

func TestEditor_ViewWrapsLongLines(t *testing.T) {
	t.Parallel()

	m := NewEditorModel(EditorOptions{WordWrap: true, Height: 10})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 24})
	m = updated.(EditorModel)
	m = m.SetText("abcdefghijklmno")
	m = m.normalizeTrailing()

	view := textwidth.StripANSI(m.View())
	rows := strings.Split(view, "\n")
	if len(rows) < 2 {
		t.Fatalf("View() = %q, want the long line wrapped", view)
	}
	if w := textwidth.VisibleWidth(rows[0]); w > 10 {
		t.Errorf("row 0 width = %d, want <= 10", w)
	}
}

func TestEditor_LinkCountRespectsToggle(t *testing.T) {
	t.Parallel()

	text := "see https://example.com and https://go.dev"
	withLinks := NewEditorModel(EditorOptions{InitialText: text, LinkDetect: true})
	if got := withLinks.LinkCount(); got != 2 {
		t.Errorf("LinkCount() = %d with detection on, want 2", got)
	}

	noLinks := NewEditorModel(EditorOptions{InitialText: text, LinkDetect: false})
	if got := noLinks.LinkCount(); got != 0 {
		t.Errorf("LinkCount() = %d with detection off, want 0", got)
	}
}

func TestEditor_SetTextResetsDirtyAndScroll(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	m = typeRunes(t, m, "dirty edit")
	m = m.SetText("fresh content")

	if m.Dirty() {
		t.Error("Dirty() = true after SetText")
	}
	if got := m.Text(); got != "fresh content" {
		t.Errorf("Text() = %q, want fresh content", got)
	}
}

func TestEditor_GhostTextRendersAtLineEnd(t *testing.T) {
	t.Parallel()

	m := mountedEditor(t, "", EditorOptions{})
	m = m.SetFocused(true)
	m = typeRunes(t, m, "he")
	m = m.SetGhostText("lp")

	view := textwidth.StripANSI(m.View())
	if !strings.Contains(view, "he"+CursorMarker+"lp") {
		t.Errorf("View() = %q, want ghost text after the marker", view)
	}
}
