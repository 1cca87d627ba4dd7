package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aipanel/usage-ledger/internal/engine"
)

func TestLookup_ExactMatch(t *testing.T) {
	table := Default()
	r := table.Lookup(engine.Claude, "claude-haiku-4-5")
	assert.Equal(t, 1.0, r.InputPerMTok)
	assert.Equal(t, 5.0, r.OutputPerMTok)
}

func TestLookup_LongestPrefixWins(t *testing.T) {
	table := Default()
	// A dated model name resolves through its family prefix.
	r := table.Lookup(engine.Claude, "claude-sonnet-4-5-20260101")
	assert.Equal(t, 3.0, r.InputPerMTok)
	assert.Equal(t, 15.0, r.OutputPerMTok)

	r = table.Lookup(engine.Codex, "gpt-4o-mini-2026-07-18")
	assert.Equal(t, 0.15, r.InputPerMTok, "gpt-4o-mini must not match the shorter gpt-4o prefix")
}

func TestLookup_UnknownModelUsesEngineDefault(t *testing.T) {
	table := Default()
	r := table.Lookup(engine.Claude, "some-unknown-model-xyz")
	want := table.Lookup(engine.Claude, engine.RulesFor(engine.Claude).DefaultModel)
	assert.Equal(t, want, r)
	assert.NotZero(t, r.InputPerMTok, "fallback must not be zero-rated")
}

func TestLookup_UnknownEngineUsesGlobalDefault(t *testing.T) {
	table := Default()
	r := table.Lookup(engine.Engine("mystery"), "whatever")
	assert.Equal(t, defaultRates, r)
}

func TestMerge_OverridesAndAdds(t *testing.T) {
	table := Default()
	table.Merge(Table{
		engine.Claude:           {"claude-sonnet-4-5": {InputPerMTok: 9}},
		engine.Engine("custom"): {"my-model": {InputPerMTok: 1, OutputPerMTok: 2}},
	})
	assert.Equal(t, 9.0, table.Lookup(engine.Claude, "claude-sonnet-4-5").InputPerMTok)
	assert.Equal(t, 2.0, table.Lookup(engine.Engine("custom"), "my-model").OutputPerMTok)
}

func TestDefault_ReturnsIndependentCopy(t *testing.T) {
	a := Default()
	a[engine.Claude]["claude-sonnet-4-5"] = ModelRates{InputPerMTok: 999}
	b := Default()
	assert.Equal(t, 3.0, b.Lookup(engine.Claude, "claude-sonnet-4-5").InputPerMTok)
}

func TestCost(t *testing.T) {
	r := ModelRates{InputPerMTok: 3, OutputPerMTok: 15, CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.3}

	cost := Cost(2000, 500, 2000, 5000, r)
	want := 2000.0/1_000_000*3 + 500.0/1_000_000*15 + 2000.0/1_000_000*3.75 + 5000.0/1_000_000*0.3
	assert.InDelta(t, want, cost, 1e-12)
}

func TestCost_Zero(t *testing.T) {
	assert.Equal(t, 0.0, Cost(0, 0, 0, 0, ModelRates{InputPerMTok: 3, OutputPerMTok: 15}))
}
