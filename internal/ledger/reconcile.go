package ledger

import (
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/aipanel/usage-ledger/internal/engine"
)

// candidate is one billable raw record, normalized, before reconciliation.
type candidate struct {
	key          string
	usage        TokenUsage
	model        string
	timestampMS  int64
	hasTimestamp bool
	seq          int
}

// replaces decides whether an incoming emission of the same logical call
// supersedes the stored one. Streaming emissions grow monotonically in
// reported token count, so the most complete snapshot wins; equal counts
// prefer recency over arrival order, but only when both sides carry a
// timestamp to compare.
func replaces(incoming, stored candidate) bool {
	in, st := incoming.usage.Total(), stored.usage.Total()
	if in > st {
		return true
	}
	if in == st && incoming.hasTimestamp && stored.hasTimestamp && incoming.timestampMS >= stored.timestampMS {
		return true
	}
	return false
}

// reconcile folds the ordered raw history into one candidate per billing
// key. Malformed or non-billable records are skipped in isolation; they
// never abort processing of the rest of the history.
func reconcile(rules engine.Rules, history [][]byte, modelHint string) map[string]candidate {
	byKey := make(map[string]candidate)
	for i, raw := range history {
		if !gjson.ValidBytes(raw) {
			log.Debug().Int("index", i).Msg("skipping record with invalid JSON")
			continue
		}
		root := gjson.ParseBytes(raw)

		role := eventRole(root)
		billableRole := role == "assistant" || (role == "system" && rules.SystemUsageBillable)
		if !billableRole {
			continue
		}

		usage, ok := ExtractUsage(raw)
		if !ok {
			continue
		}

		ts, hasTS := eventTimestamp(root)
		c := candidate{
			key:          ResolveBillingKey(raw, i),
			usage:        usage,
			model:        resolveModel(root, rules, modelHint),
			timestampMS:  ts,
			hasTimestamp: hasTS,
			seq:          i,
		}
		if stored, exists := byKey[c.key]; !exists || replaces(c, stored) {
			byKey[c.key] = c
		}
	}
	return byKey
}
