// Package engine defines the supported backend engines and the per-engine
// rule table that the rest of the module keys off.
//
// DESIGN: Each engine reports usage through a differently shaped payload.
// Instead of sniffing metadata fields at every call site, every
// engine-dependent decision (billable roles, model metadata location,
// default model, auto-compaction buffer) lives in one rule table here.
// Adding an engine means adding one Rules entry, not touching callers.
package engine

// Engine identifies a backend model provider integration.
type Engine string

const (
	Claude Engine = "claude"
	Codex  Engine = "codex"
	Gemini Engine = "gemini"
)

// DefaultAutoCompactBuffer is the token margin Claude reserves below the
// hard context limit before triggering automatic history compaction.
const DefaultAutoCompactBuffer = 45000

// Rules describes how one engine reports usage and what its documented
// defaults are.
type Rules struct {
	// DefaultModel is used for pricing and window lookups when a record
	// carries no model identifier.
	DefaultModel string

	// ModelMetadataPath is an engine-specific gjson path tried after the
	// standard `model` / `message.model` locations. Empty if the engine
	// has no extra metadata field.
	ModelMetadataPath string

	// SystemUsageBillable marks engines that emit billable usage on
	// system-role records (in addition to assistant-role records, which
	// are billable for every engine).
	SystemUsageBillable bool

	// AutoCompactBuffer is the reserved margin below the context window
	// at which the host triggers auto-compaction. Zero means the engine
	// has no known compaction behavior and no projection is computed.
	AutoCompactBuffer int
}

var ruleTable = map[Engine]Rules{
	Claude: {
		DefaultModel:      "claude-sonnet-4-5",
		AutoCompactBuffer: DefaultAutoCompactBuffer,
	},
	Codex: {
		DefaultModel:        "gpt-4o",
		ModelMetadataPath:   "payload.model",
		SystemUsageBillable: true,
	},
	Gemini: {
		DefaultModel:        "gemini-2.5-pro",
		ModelMetadataPath:   "modelVersion",
		SystemUsageBillable: true,
	},
}

// RulesFor returns the rule set for an engine. Unknown engines get a zero
// rule set: assistant-only billing, no metadata path, no compaction
// projection. Aggregation still works; pricing falls back to the
// conservative default entry.
func RulesFor(e Engine) Rules {
	if r, ok := ruleTable[e]; ok {
		return r
	}
	return Rules{}
}

// Known reports whether e is one of the supported engines.
func Known(e Engine) bool {
	_, ok := ruleTable[e]
	return ok
}
