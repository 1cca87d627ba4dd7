package ledger

import (
	"sort"

	"github.com/aipanel/usage-ledger/internal/engine"
	"github.com/aipanel/usage-ledger/internal/pricing"
)

// Options configures one aggregation pass. The zero value uses the
// built-in pricing table and no model hint.
type Options struct {
	// ModelHint is tried after the record's own model fields and before
	// the engine's default model.
	ModelHint string

	// Pricing overrides the built-in rate table. Read-only during the
	// pass; safe to share across concurrent callers.
	Pricing pricing.Table
}

// Aggregate recomputes the full billing projection over a raw session
// history. It is a pure, synchronous transformation: aggregating the same
// history twice yields an identical result, and independent callers may
// run it concurrently.
func Aggregate(eng engine.Engine, history [][]byte, opts Options) Aggregation {
	rules := engine.RulesFor(eng)
	table := opts.Pricing
	if table == nil {
		table = pricing.Default()
	}

	byKey := reconcile(rules, history, opts.ModelHint)

	events := make([]BillingEvent, 0, len(byKey))
	for _, c := range byKey {
		rates := table.Lookup(eng, c.model)
		events = append(events, BillingEvent{
			Key:           c.key,
			Engine:        eng,
			Model:         c.model,
			Usage:         c.usage,
			Cost:          pricing.Cost(c.usage.InputTokens, c.usage.OutputTokens, c.usage.CacheCreationTokens, c.usage.CacheReadTokens, rates),
			TimestampMS:   c.timestampMS,
			HasTimestamp:  c.hasTimestamp,
			SequenceIndex: c.seq,
		})
	}
	orderEvents(events)

	agg := Aggregation{
		Events:     events,
		EventCount: len(events),
	}
	for _, ev := range events {
		agg.Totals.InputTokens += ev.Usage.InputTokens
		agg.Totals.OutputTokens += ev.Usage.OutputTokens
		agg.Totals.CacheCreationTokens += ev.Usage.CacheCreationTokens
		agg.Totals.CacheReadTokens += ev.Usage.CacheReadTokens
		agg.Totals.TotalTokens += ev.Usage.Total()
		agg.Totals.TotalCost += ev.Cost

		if ev.HasTimestamp {
			if agg.FirstTimestampMS == 0 || ev.TimestampMS < agg.FirstTimestampMS {
				agg.FirstTimestampMS = ev.TimestampMS
			}
			if ev.TimestampMS > agg.LastTimestampMS {
				agg.LastTimestampMS = ev.TimestampMS
			}
		}

		if agg.ByModel == nil {
			agg.ByModel = make(map[string]ModelTotals)
		}
		mt := agg.ByModel[ev.Model]
		mt.Usage.InputTokens += ev.Usage.InputTokens
		mt.Usage.OutputTokens += ev.Usage.OutputTokens
		mt.Usage.CacheCreationTokens += ev.Usage.CacheCreationTokens
		mt.Usage.CacheReadTokens += ev.Usage.CacheReadTokens
		mt.TotalTokens += ev.Usage.Total()
		mt.Cost += ev.Cost
		mt.Events++
		agg.ByModel[ev.Model] = mt
	}

	if len(agg.ByModel) > 0 {
		agg.Models = make([]string, 0, len(agg.ByModel))
		for m := range agg.ByModel {
			agg.Models = append(agg.Models, m)
		}
		sort.Strings(agg.Models)
	}
	return agg
}

// orderEvents sorts reconciled events into their final temporal order:
// ascending by timestamp, events without a timestamp after events with
// one, and the original sequence index as the last tie-breaker. The
// comparison is a total order, so the result is deterministic regardless
// of map iteration order.
func orderEvents(events []BillingEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch {
		case a.HasTimestamp && b.HasTimestamp:
			if a.TimestampMS != b.TimestampMS {
				return a.TimestampMS < b.TimestampMS
			}
			return a.SequenceIndex < b.SequenceIndex
		case a.HasTimestamp:
			return true
		case b.HasTimestamp:
			return false
		default:
			return a.SequenceIndex < b.SequenceIndex
		}
	})
}
