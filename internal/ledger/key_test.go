package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBillingKey(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"nested message id first", `{"message":{"id":"msg_01"},"id":"outer","uuid":"u1"}`, "msg_01"},
		{"top-level id", `{"id":"outer","uuid":"u1"}`, "outer"},
		{"uuid", `{"uuid":"u1","timestamp":"2026-01-10T10:00:00Z"}`, "u1"},
		{"timestamp", `{"timestamp":"2026-01-10T10:00:00Z","receivedAt":"later"}`, "2026-01-10T10:00:00Z"},
		{"receivedAt", `{"receivedAt":"2026-01-10T10:00:01Z"}`, "2026-01-10T10:00:01Z"},
		{"empty fields skipped", `{"message":{"id":""},"id":"  ","uuid":"u2"}`, "u2"},
		{"index fallback", `{"text":"no identity"}`, "seq-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBillingKey([]byte(tt.doc), 7))
		})
	}
}

func TestResolveBillingKey_StableAcrossEmissions(t *testing.T) {
	partial := `{"message":{"id":"msg_42","usage":{"input_tokens":10}}}`
	final := `{"message":{"id":"msg_42","usage":{"input_tokens":120}}}`
	assert.Equal(t, ResolveBillingKey([]byte(partial), 0), ResolveBillingKey([]byte(final), 5))
}
