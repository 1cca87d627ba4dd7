// Package occupancy derives the live context-window occupancy metric from
// a session history.
//
// DESIGN: The snapshot reflects the single most recent usage-bearing
// record, not an aggregate — the context window is whatever the last API
// call actually attended to. Output tokens are excluded: they do not
// occupy the window going forward. The usage-level breakpoints and the
// auto-compact buffer are configuration with stated defaults, not code.
package occupancy

import (
	"github.com/aipanel/usage-ledger/internal/engine"
	"github.com/aipanel/usage-ledger/internal/ledger"
)

// Level classifies window occupancy for display.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Breakpoints are the percentage thresholds for level classification.
type Breakpoints struct {
	Medium   float64 `yaml:"medium" json:"medium"`
	High     float64 `yaml:"high" json:"high"`
	Critical float64 `yaml:"critical" json:"critical"`
}

// DefaultBreakpoints are the stock thresholds; overridable via Options.
var DefaultBreakpoints = Breakpoints{Medium: 50, High: 80, Critical: 95}

// nearCompactRatio marks the "approaching compaction" warning point as a
// fraction of the auto-compact threshold.
const nearCompactRatio = 0.9

// Snapshot is the occupancy reading derived from the most recent
// usage-bearing record. HasData is false when the history carries no
// usage signal at all.
type Snapshot struct {
	HasData       bool              `json:"has_data"`
	Engine        engine.Engine     `json:"engine"`
	Model         string            `json:"model"`
	CurrentTokens int               `json:"current_tokens"`
	WindowSize    int               `json:"window_size"`
	Percentage    float64           `json:"percentage"`
	Breakdown     ledger.TokenUsage `json:"breakdown"`
	Level         Level             `json:"level"`

	// Auto-compact projection, only populated for engines with a known
	// compaction buffer (HasCompactProjection true).
	HasCompactProjection bool `json:"has_compact_projection"`
	AutoCompactThreshold int  `json:"auto_compact_threshold,omitempty"`
	TokensUntilCompact   int  `json:"tokens_until_compact,omitempty"`
	WillTriggerCompact   bool `json:"will_trigger_compact,omitempty"`
	NearCompact          bool `json:"near_compact,omitempty"`
}

// Options configures estimation. The zero value uses built-in windows,
// default breakpoints, and the engine rule table's compaction buffer.
type Options struct {
	// ModelHint is used for the window lookup when the winning record
	// carries no model identifier.
	ModelHint string

	// Windows overrides the built-in window-size table.
	Windows WindowTable

	// Breakpoints overrides the level thresholds.
	Breakpoints *Breakpoints

	// CompactBuffer overrides the engine's auto-compact buffer. Ignored
	// for engines without compaction behavior.
	CompactBuffer int
}

// Estimate scans the history newest-first and returns the occupancy
// snapshot from the first usage-bearing record. An empty or usage-free
// history returns a zero snapshot with HasData false, never an error.
func Estimate(eng engine.Engine, history [][]byte, opts Options) Snapshot {
	rules := engine.RulesFor(eng)
	for i := len(history) - 1; i >= 0; i-- {
		usage, ok := ledger.ExtractUsage(history[i])
		if !ok {
			continue
		}
		model := ledger.ModelOf(history[i], rules, opts.ModelHint)
		return snapshotFrom(eng, rules, model, usage, opts)
	}
	return Snapshot{Engine: eng}
}

func snapshotFrom(eng engine.Engine, rules engine.Rules, model string, usage ledger.TokenUsage, opts Options) Snapshot {
	windows := opts.Windows
	if windows == nil {
		windows = DefaultWindows()
	}
	window := windows.Lookup(model)

	current := usage.ContextTokens()
	pct := float64(current) / float64(window) * 100
	if pct > 100 {
		pct = 100
	}

	bp := DefaultBreakpoints
	if opts.Breakpoints != nil {
		bp = *opts.Breakpoints
	}

	s := Snapshot{
		HasData:       true,
		Engine:        eng,
		Model:         model,
		CurrentTokens: current,
		WindowSize:    window,
		Percentage:    pct,
		Breakdown:     usage,
		Level:         Classify(pct, bp),
	}

	buffer := rules.AutoCompactBuffer
	if buffer > 0 && opts.CompactBuffer > 0 {
		buffer = opts.CompactBuffer
	}
	if buffer > 0 && buffer < window {
		threshold := window - buffer
		s.HasCompactProjection = true
		s.AutoCompactThreshold = threshold
		s.WillTriggerCompact = current >= threshold
		s.NearCompact = float64(current) >= nearCompactRatio*float64(threshold)
		if remaining := threshold - current; remaining > 0 {
			s.TokensUntilCompact = remaining
		}
	}
	return s
}

// Classify maps an occupancy percentage to a display level.
func Classify(pct float64, bp Breakpoints) Level {
	switch {
	case pct >= bp.Critical:
		return LevelCritical
	case pct >= bp.High:
		return LevelHigh
	case pct >= bp.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}
