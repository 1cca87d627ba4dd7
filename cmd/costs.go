package main

import (
	"github.com/rs/zerolog/log"

	"github.com/aipanel/usage-ledger/internal/config"
	"github.com/aipanel/usage-ledger/internal/engine"
	"github.com/aipanel/usage-ledger/internal/ledger"
)

func runCostsCommand(args []string) {
	f, positional, err := parseCommonFlags(args)
	if err != nil {
		fatalf("%v", err)
	}
	setupLogging(f.debug)
	if len(positional) != 1 {
		fatalf("costs requires exactly one session file (or - for stdin)")
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fatalf("%v", err)
	}
	history, err := readHistory(positional[0])
	if err != nil {
		fatalf("%v", err)
	}

	eng := engine.Engine(f.engine)
	if !engine.Known(eng) {
		log.Warn().Str("engine", f.engine).Msg("unknown engine, aggregating with default rules")
	}

	agg := ledger.Aggregate(eng, history, ledger.Options{
		ModelHint: f.model,
		Pricing:   cfg.PricingTable(),
	})
	log.Debug().
		Int("records", len(history)).
		Int("events", agg.EventCount).
		Float64("total_cost", agg.Totals.TotalCost).
		Msg("aggregated session")

	if f.json || !stdoutIsTTY() {
		writeJSON(agg)
		return
	}
	renderCostsTable(agg)
}
