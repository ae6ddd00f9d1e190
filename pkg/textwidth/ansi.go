// ABOUTME: ANSI escape sequence stripping and SGR state tracking
// ABOUTME: Handles CSI sequences, OSC sequences, and basic ESC sequences

package textwidth

import "strings"

// StripANSI removes all ANSI escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			i = skipSequence(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// skipSequence advances past an ANSI escape sequence starting at s[i].
// Returns the index of the first byte after the sequence.
func skipSequence(s string, i int) int {
	if i >= len(s) || s[i] != '\x1b' {
		return i
	}
	i++ // skip ESC
	if i >= len(s) {
		return i
	}

	switch s[i] {
	case '[':
		// CSI: ESC [ ... <final byte 0x40-0x7E>
		i++
		for i < len(s) {
			if s[i] >= 0x40 && s[i] <= 0x7E {
				return i + 1
			}
			i++
		}
		return i
	case ']':
		// OSC: ESC ] ... (BEL or ST)
		i++
		for i < len(s) {
			if s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
			i++
		}
		return i
	case '(':
		// Designate character set: ESC ( <char>
		if i+1 < len(s) {
			return i + 2
		}
		return i + 1
	case '_', 'P', '^':
		// APC, DCS, PM: terminated by ST
		i++
		for i < len(s) {
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
			i++
		}
		return i
	default:
		// Simple two-byte ESC sequence
		return i + 1
	}
}

// ActiveSGR tracks the in-effect SGR (Select Graphic Rendition) sequences so
// styling can be restored after a forced line break.
type ActiveSGR struct {
	codes []string
}

// Reset clears all tracked state.
func (a *ActiveSGR) Reset() {
	a.codes = a.codes[:0]
}

// Apply records an SGR sequence. A reset sequence clears the state.
func (a *ActiveSGR) Apply(seq string) {
	if seq == "\x1b[0m" || seq == "\x1b[m" {
		a.Reset()
		return
	}
	a.codes = append(a.codes, seq)
}

// String returns the concatenated sequences that restore the current state.
func (a *ActiveSGR) String() string {
	if len(a.codes) == 0 {
		return ""
	}
	return strings.Join(a.codes, "")
}
