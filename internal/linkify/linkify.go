// ABOUTME: URL detection for pad lines using the xurls strict matcher
// ABOUTME: The regexp is expensive to build, so it is compiled lazily once

package linkify

import (
	"regexp"
	"sync"

	"mvdan.cc/xurls/v2"
)

// Span marks a URL occurrence within a line. Start and End are byte offsets,
// End exclusive.
type Span struct {
	Start int
	End   int
	URL   string
}

// matcher builds the strict URL regexp on first use. xurls compiles a large
// scheme table, so pads that never render a link never pay for it.
var matcher = sync.OnceValue(func() *regexp.Regexp {
	return xurls.Strict()
})

// Scan returns the URL spans in a single line, in order of appearance.
// Lines without URLs return nil.
func Scan(line string) []Span {
	if line == "" {
		return nil
	}

	idx := matcher().FindAllStringIndex(line, -1)
	if len(idx) == 0 {
		return nil
	}

	spans := make([]Span, 0, len(idx))
	for _, pair := range idx {
		spans = append(spans, Span{
			Start: pair[0],
			End:   pair[1],
			URL:   line[pair[0]:pair[1]],
		})
	}
	return spans
}

// Count reports how many URLs appear in the given lines.
func Count(lines []string) int {
	n := 0
	for _, line := range lines {
		n += len(Scan(line))
	}
	return n
}
