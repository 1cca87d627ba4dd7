package occupancy

import "strings"

// DefaultContextWindow is used when a model has no table entry.
const DefaultContextWindow = 200_000

// WindowTable maps model names to context window sizes in tokens.
type WindowTable map[string]int

// defaultWindows carries the documented window sizes. Dated model names
// resolve via prefix match against their family entry.
var defaultWindows = WindowTable{
	"claude-sonnet-4-5": 200_000,
	"claude-opus-4-5":   200_000,
	"claude-opus-4-1":   200_000,
	"claude-haiku-4-5":  200_000,
	"claude-3-5-sonnet": 200_000,
	"claude-3-5-haiku":  200_000,
	"gpt-4o":            128_000,
	"gpt-4o-mini":       128_000,
	"gpt-4":             8_192,
	"gemini-2.5-pro":    1_048_576,
	"gemini-2.5-flash":  1_048_576,
}

// DefaultWindows returns a copy of the built-in window table.
func DefaultWindows() WindowTable {
	t := make(WindowTable, len(defaultWindows))
	for name, size := range defaultWindows {
		t[name] = size
	}
	return t
}

// Merge applies overrides on top of t.
func (t WindowTable) Merge(overrides WindowTable) {
	for name, size := range overrides {
		t[name] = size
	}
}

// Lookup resolves the window size for a model: exact match, then longest
// prefix match, then DefaultContextWindow.
func (t WindowTable) Lookup(model string) int {
	if size, ok := t[model]; ok {
		return size
	}
	bestPrefix := ""
	bestSize := 0
	for prefix, size := range t {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(bestPrefix) {
			bestPrefix = prefix
			bestSize = size
		}
	}
	if bestPrefix != "" {
		return bestSize
	}
	return DefaultContextWindow
}
