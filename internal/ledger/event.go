package ledger

import "github.com/aipanel/usage-ledger/internal/engine"

// BillingEvent is one reconciled billable API call.
type BillingEvent struct {
	Key           string        `json:"key"`
	Engine        engine.Engine `json:"engine"`
	Model         string        `json:"model"`
	Usage         TokenUsage    `json:"usage"`
	Cost          float64       `json:"cost"`
	TimestampMS   int64         `json:"timestamp_ms,omitempty"`
	HasTimestamp  bool          `json:"-"`
	SequenceIndex int           `json:"sequence_index"`
}

// Totals is the element-wise sum over the ordered events. It is produced
// by one linear pass in Aggregate and never cached across calls.
type Totals struct {
	InputTokens         int     `json:"input_tokens"`
	OutputTokens        int     `json:"output_tokens"`
	CacheCreationTokens int     `json:"cache_creation_tokens"`
	CacheReadTokens     int     `json:"cache_read_tokens"`
	TotalTokens         int     `json:"total_tokens"`
	TotalCost           float64 `json:"total_cost"`
}

// ModelTotals breaks the totals down per model.
type ModelTotals struct {
	Usage       TokenUsage `json:"usage"`
	TotalTokens int        `json:"total_tokens"`
	Cost        float64    `json:"cost"`
	Events      int        `json:"events"`
}

// Aggregation is the full recomputed projection over one session history.
type Aggregation struct {
	Totals           Totals                 `json:"totals"`
	Events           []BillingEvent         `json:"events"`
	EventCount       int                    `json:"event_count"`
	FirstTimestampMS int64                  `json:"first_timestamp_ms,omitempty"`
	LastTimestampMS  int64                  `json:"last_timestamp_ms,omitempty"`
	ByModel          map[string]ModelTotals `json:"by_model,omitempty"`
	Models           []string               `json:"models,omitempty"`
}
