// Package ledger folds a raw multi-engine session event history into a
// deterministic ledger of billable events.
//
// DESIGN: Raw records are opaque JSON probed with gjson. Every fallback
// path is an ordered list of named paths, so the engine-naming variance is
// enumerable and testable rather than discovered by reflection. The whole
// fold is a pure function of the supplied history: nothing is persisted,
// nothing is mutated across calls.
package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/aipanel/usage-ledger/internal/engine"
)

// TokenUsage is the standardized per-call token tuple. Zero values are
// valid counts, distinct from "no usage reported at all".
type TokenUsage struct {
	InputTokens         int `json:"input_tokens"`
	OutputTokens        int `json:"output_tokens"`
	CacheCreationTokens int `json:"cache_creation_tokens"`
	CacheReadTokens     int `json:"cache_read_tokens"`
}

// Total returns the sum of all four token counts.
func (u TokenUsage) Total() int {
	return u.InputTokens + u.OutputTokens + u.CacheCreationTokens + u.CacheReadTokens
}

// ContextTokens returns the tokens that occupy the context window going
// forward: input plus cache traffic, excluding generated output.
func (u TokenUsage) ContextTokens() int {
	return u.InputTokens + u.CacheCreationTokens + u.CacheReadTokens
}

// Billable reports whether the tuple carries a billable usage signal.
// Records with only output tokens are echo/ack deltas, not API calls.
func (u TokenUsage) Billable() bool {
	return u.InputTokens > 0 || u.CacheCreationTokens > 0 || u.CacheReadTokens > 0
}

// Field aliases across engine payload shapes, in resolution order.
var (
	cacheCreationPaths = []string{"cache_creation_input_tokens", "cache_creation_tokens", "cache_write_tokens"}
	cacheReadPaths     = []string{"cache_read_input_tokens", "cache_read_tokens"}
)

// ExtractUsage normalizes one raw record into a TokenUsage. The nested
// message.usage object is inspected first, then a top-level usage field.
// The second return is true only when a billable usage signal is present.
func ExtractUsage(raw []byte) (TokenUsage, bool) {
	root := gjson.ParseBytes(raw)
	obj := root.Get("message.usage")
	if !obj.IsObject() {
		obj = root.Get("usage")
	}
	if !obj.IsObject() {
		return TokenUsage{}, false
	}
	u := TokenUsage{
		InputTokens:         tokenCount(obj, "input_tokens"),
		OutputTokens:        tokenCount(obj, "output_tokens"),
		CacheCreationTokens: firstTokenCount(obj, cacheCreationPaths),
		CacheReadTokens:     firstTokenCount(obj, cacheReadPaths),
	}
	return u, u.Billable()
}

// tokenCount reads a single count, clamping negatives to zero.
func tokenCount(obj gjson.Result, path string) int {
	n := obj.Get(path).Int()
	if n < 0 {
		return 0
	}
	return int(n)
}

// firstTokenCount resolves the first alias that exists, even when its
// value is zero — absence and zero are different things.
func firstTokenCount(obj gjson.Result, paths []string) int {
	for _, p := range paths {
		if v := obj.Get(p); v.Exists() {
			if n := v.Int(); n > 0 {
				return int(n)
			}
			return 0
		}
	}
	return 0
}

// eventRole classifies the record's role. Engines disagree on where it
// lives: nested message.role, a top-level role, or a top-level type tag.
func eventRole(root gjson.Result) string {
	for _, p := range []string{"message.role", "role", "type"} {
		if v := root.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// ModelOf finds the model identifier for a raw record: top-level model,
// nested message.model, then the engine's metadata field, then the caller
// hint, then the engine's documented default.
func ModelOf(raw []byte, rules engine.Rules, hint string) string {
	return resolveModel(gjson.ParseBytes(raw), rules, hint)
}

func resolveModel(root gjson.Result, rules engine.Rules, hint string) string {
	paths := []string{"model", "message.model"}
	if rules.ModelMetadataPath != "" {
		paths = append(paths, rules.ModelMetadataPath)
	}
	for _, p := range paths {
		if v := root.Get(p); v.Exists() && strings.TrimSpace(v.String()) != "" {
			return v.String()
		}
	}
	if hint != "" {
		return hint
	}
	return rules.DefaultModel
}

// msPerSecondCutoff separates epoch-second values from epoch-millisecond
// values in numeric timestamps.
const msPerSecondCutoff = 1_000_000_000_000

// eventTimestamp extracts a millisecond timestamp from a record.
// Accepts RFC 3339 strings or numeric epoch values under `timestamp` or
// `receivedAt`. Unparseable timestamps are treated as absent, never as an
// error — the record then orders by sequence index.
func eventTimestamp(root gjson.Result) (int64, bool) {
	for _, p := range []string{"timestamp", "receivedAt"} {
		v := root.Get(p)
		if !v.Exists() {
			continue
		}
		switch v.Type {
		case gjson.Number:
			if ms, ok := epochMillis(v.Int()); ok {
				return ms, true
			}
		case gjson.String:
			s := strings.TrimSpace(v.String())
			if s == "" {
				continue
			}
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return t.UnixMilli(), true
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				if ms, ok := epochMillis(n); ok {
					return ms, true
				}
			}
		}
	}
	return 0, false
}

func epochMillis(n int64) (int64, bool) {
	if n <= 0 {
		return 0, false
	}
	if n < msPerSecondCutoff {
		return n * 1000, true
	}
	return n, true
}
