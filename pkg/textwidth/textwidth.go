// ABOUTME: VisibleWidth computes display width of strings with grapheme-aware segmentation
// ABOUTME: Includes LRU cache for non-ASCII strings; fast path for pure ASCII

package textwidth

import (
	"container/list"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const lruSize = 512

// lruEntry holds a cached width measurement.
type lruEntry struct {
	key   string
	width int
}

// widthLRU is an O(1) LRU cache for non-ASCII string widths.
type widthLRU struct {
	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
	size  int
}

func newWidthLRU(size int) *widthLRU {
	return &widthLRU{
		items: make(map[string]*list.Element, size),
		order: list.New(),
		size:  size,
	}
}

func (c *widthLRU) get(key string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return 0, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(lruEntry).width, true
}

func (c *widthLRU) put(key string, width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; ok {
		return
	}
	if c.order.Len() >= c.size {
		back := c.order.Back()
		if back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(lruEntry).key)
		}
	}
	c.items[key] = c.order.PushFront(lruEntry{key: key, width: width})
}

var cache = newWidthLRU(lruSize)

// VisibleWidth returns the display width of s, accounting for ANSI escape
// sequences (which contribute zero width) and grapheme clusters (which may
// be wider than one cell for East Asian characters and emoji).
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	// Fast path: pure printable ASCII, one byte per cell
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := cache.get(s); ok {
		return w
	}
	w := measure(s)
	cache.put(s, w)
	return w
}

// isPlainASCII reports whether s contains only printable ASCII (0x20-0x7E)
// with no escape sequences.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

// measure walks grapheme clusters of the ANSI-stripped string.
func measure(s string) int {
	stripped := StripANSI(s)
	w := 0
	state := -1
	for len(stripped) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(stripped, state)
		w += clusterWidth(cluster)
		stripped = rest
		state = newState
	}
	return w
}

// clusterWidth returns the display width of a single grapheme cluster.
func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
