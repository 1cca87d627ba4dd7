package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipanel/usage-ledger/internal/engine"
)

func TestReplaces_LargerTotalWins(t *testing.T) {
	stored := candidate{usage: TokenUsage{InputTokens: 100, OutputTokens: 20}}
	incoming := candidate{usage: TokenUsage{InputTokens: 300, OutputTokens: 40}}
	assert.True(t, replaces(incoming, stored))
	assert.False(t, replaces(stored, incoming))
}

func TestReplaces_EqualTotalPrefersRecency(t *testing.T) {
	earlier := candidate{usage: TokenUsage{InputTokens: 100}, timestampMS: 1000, hasTimestamp: true}
	later := candidate{usage: TokenUsage{InputTokens: 100}, timestampMS: 2000, hasTimestamp: true}
	assert.True(t, replaces(later, earlier))
	assert.False(t, replaces(earlier, later))
}

func TestReplaces_EqualTotalEqualTimestamp(t *testing.T) {
	a := candidate{usage: TokenUsage{InputTokens: 100}, timestampMS: 1000, hasTimestamp: true}
	b := candidate{usage: TokenUsage{InputTokens: 100}, timestampMS: 1000, hasTimestamp: true}
	assert.True(t, replaces(b, a), "ties at equal timestamps go to the later emission")
}

func TestReplaces_EqualTotalRequiresBothTimestamps(t *testing.T) {
	withTS := candidate{usage: TokenUsage{InputTokens: 100}, timestampMS: 1000, hasTimestamp: true}
	withoutTS := candidate{usage: TokenUsage{InputTokens: 100}}
	assert.False(t, replaces(withoutTS, withTS))
	assert.False(t, replaces(withTS, withoutTS))
}

func TestReconcile_StreamedEmissionsCollapse(t *testing.T) {
	// Partial snapshot (total 120) then final snapshot (total 340) of the
	// same logical call.
	partial := mustSet(t, baseClaudeEvent, "message.usage.output_tokens", 20)
	final := mustSet(t, baseClaudeEvent, "message.usage.input_tokens", 300)
	final = mustSet(t, final, "message.usage.output_tokens", 40)

	byKey := reconcile(engine.RulesFor(engine.Claude), [][]byte{[]byte(partial), []byte(final)}, "")
	require.Len(t, byKey, 1)
	c := byKey["msg_01"]
	assert.Equal(t, 340, c.usage.Total())
	assert.Equal(t, 1, c.seq, "winning record keeps its own sequence index")
}

func TestReconcile_FinalEmittedFirstStillWins(t *testing.T) {
	final := mustSet(t, baseClaudeEvent, "message.usage.input_tokens", 300)
	partial := mustSet(t, baseClaudeEvent, "message.usage.input_tokens", 50)

	byKey := reconcile(engine.RulesFor(engine.Claude), [][]byte{[]byte(final), []byte(partial)}, "")
	require.Len(t, byKey, 1)
	assert.Equal(t, 300, byKey["msg_01"].usage.InputTokens)
}

func TestReconcile_SystemRolePerEngine(t *testing.T) {
	sys := `{"type":"system","timestamp":"2026-01-10T10:00:00Z","usage":{"input_tokens":80,"output_tokens":4}}`

	claude := reconcile(engine.RulesFor(engine.Claude), [][]byte{[]byte(sys)}, "")
	assert.Empty(t, claude, "claude does not bill system records")

	codex := reconcile(engine.RulesFor(engine.Codex), [][]byte{[]byte(sys)}, "")
	assert.Len(t, codex, 1, "codex reports usage on system events")
}

func TestReconcile_SkipsNonBillableAndMalformed(t *testing.T) {
	history := [][]byte{
		[]byte(`{"type":"user","message":{"usage":{"input_tokens":999}}}`), // user role never billable
		[]byte(`not json at all`),
		[]byte(`{"type":"assistant"}`), // no usage
		[]byte(baseClaudeEvent),
	}
	byKey := reconcile(engine.RulesFor(engine.Claude), history, "")
	require.Len(t, byKey, 1)
	assert.Contains(t, byKey, "msg_01")
}
