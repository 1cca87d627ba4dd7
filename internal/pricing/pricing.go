// Package pricing maps (engine, model, token counts) to USD cost.
//
// DESIGN: Rates are an injected table, not call-site constants. Lookup is
// exact match, then longest-prefix family match (dated model names share a
// prefix with their family), then the engine's documented default model,
// then a conservative global default. Unknown models never error — cost
// reporting must degrade, not interrupt the caller.
package pricing

import (
	"strings"

	"github.com/aipanel/usage-ledger/internal/engine"
)

// ModelRates holds per-million-token pricing for one model.
type ModelRates struct {
	InputPerMTok      float64 `yaml:"input" json:"input"`
	OutputPerMTok     float64 `yaml:"output" json:"output"`
	CacheWritePerMTok float64 `yaml:"cache_write" json:"cache_write"`
	CacheReadPerMTok  float64 `yaml:"cache_read" json:"cache_read"`
}

// Table maps engine → model name → rates.
type Table map[engine.Engine]map[string]ModelRates

// defaultRates is used when neither the model nor the engine's default
// model resolves (conservative to prevent silent under-reporting).
var defaultRates = ModelRates{InputPerMTok: 15, OutputPerMTok: 75, CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.5}

// defaultTable carries the documented rates per engine. Cache write is
// 1.25x input and cache read 0.1x input for Anthropic models.
var defaultTable = Table{
	engine.Claude: {
		"claude-sonnet-4-5": {InputPerMTok: 3, OutputPerMTok: 15, CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.3},
		"claude-opus-4-5":   {InputPerMTok: 5, OutputPerMTok: 25, CacheWritePerMTok: 6.25, CacheReadPerMTok: 0.5},
		"claude-opus-4-1":   {InputPerMTok: 15, OutputPerMTok: 75, CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.5},
		"claude-haiku-4-5":  {InputPerMTok: 1, OutputPerMTok: 5, CacheWritePerMTok: 1.25, CacheReadPerMTok: 0.1},
		"claude-3-5-sonnet": {InputPerMTok: 3, OutputPerMTok: 15, CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.3},
		"claude-3-5-haiku":  {InputPerMTok: 1, OutputPerMTok: 5, CacheWritePerMTok: 1.25, CacheReadPerMTok: 0.1},
	},
	engine.Codex: {
		"gpt-4o":      {InputPerMTok: 2.5, OutputPerMTok: 10, CacheReadPerMTok: 1.25},
		"gpt-4o-mini": {InputPerMTok: 0.15, OutputPerMTok: 0.60, CacheReadPerMTok: 0.075},
		"gpt-4":       {InputPerMTok: 10, OutputPerMTok: 30},
	},
	engine.Gemini: {
		"gemini-2.5-pro":   {InputPerMTok: 1.25, OutputPerMTok: 10, CacheWritePerMTok: 1.625, CacheReadPerMTok: 0.31},
		"gemini-2.5-flash": {InputPerMTok: 0.30, OutputPerMTok: 2.5, CacheWritePerMTok: 0.375, CacheReadPerMTok: 0.075},
	},
}

// Default returns a copy of the built-in rate table. Callers may mutate the
// copy (e.g. apply config overrides) without affecting other callers.
func Default() Table {
	t := make(Table, len(defaultTable))
	for eng, models := range defaultTable {
		m := make(map[string]ModelRates, len(models))
		for name, r := range models {
			m[name] = r
		}
		t[eng] = m
	}
	return t
}

// Merge applies overrides on top of t. Engine maps are created as needed.
func (t Table) Merge(overrides Table) {
	for eng, models := range overrides {
		if t[eng] == nil {
			t[eng] = make(map[string]ModelRates, len(models))
		}
		for name, r := range models {
			t[eng][name] = r
		}
	}
}

// Lookup resolves rates for a model under an engine.
// Exact match, then longest-prefix match within the engine's table, then
// the engine's default model, then the global default.
func (t Table) Lookup(eng engine.Engine, model string) ModelRates {
	models := t[eng]
	if models != nil && model != "" {
		if r, ok := models[model]; ok {
			return r
		}
		bestPrefix := ""
		var bestRates ModelRates
		for prefix, r := range models {
			if strings.HasPrefix(model, prefix) && len(prefix) > len(bestPrefix) {
				bestPrefix = prefix
				bestRates = r
			}
		}
		if bestPrefix != "" {
			return bestRates
		}
	}
	if models != nil {
		if r, ok := models[engine.RulesFor(eng).DefaultModel]; ok {
			return r
		}
	}
	return defaultRates
}

// Cost computes USD cost from token counts. Cache creation and cache read
// tokens are billed at their own rates, separate from fresh input.
func Cost(inputTokens, outputTokens, cacheCreationTokens, cacheReadTokens int, r ModelRates) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * r.InputPerMTok
	outputCost := float64(outputTokens) / 1_000_000 * r.OutputPerMTok
	cacheWriteCost := float64(cacheCreationTokens) / 1_000_000 * r.CacheWritePerMTok
	cacheReadCost := float64(cacheReadTokens) / 1_000_000 * r.CacheReadPerMTok
	return inputCost + outputCost + cacheWriteCost + cacheReadCost
}
