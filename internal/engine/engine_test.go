package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulesFor_KnownEngines(t *testing.T) {
	claude := RulesFor(Claude)
	assert.Equal(t, "claude-sonnet-4-5", claude.DefaultModel)
	assert.Equal(t, DefaultAutoCompactBuffer, claude.AutoCompactBuffer)
	assert.False(t, claude.SystemUsageBillable)

	codex := RulesFor(Codex)
	assert.True(t, codex.SystemUsageBillable)
	assert.Zero(t, codex.AutoCompactBuffer, "only claude has a compaction buffer")

	gemini := RulesFor(Gemini)
	assert.Equal(t, "modelVersion", gemini.ModelMetadataPath)
}

func TestRulesFor_UnknownEngine(t *testing.T) {
	r := RulesFor(Engine("mystery"))
	assert.Equal(t, Rules{}, r)
	assert.False(t, Known(Engine("mystery")))
	assert.True(t, Known(Claude))
}
