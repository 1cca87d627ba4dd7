package main

import (
	"github.com/aipanel/usage-ledger/internal/config"
	"github.com/aipanel/usage-ledger/internal/engine"
	"github.com/aipanel/usage-ledger/internal/occupancy"
)

func runContextCommand(args []string) {
	f, positional, err := parseCommonFlags(args)
	if err != nil {
		fatalf("%v", err)
	}
	setupLogging(f.debug)
	if len(positional) != 1 {
		fatalf("context requires exactly one session file (or - for stdin)")
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fatalf("%v", err)
	}
	history, err := readHistory(positional[0])
	if err != nil {
		fatalf("%v", err)
	}

	snapshot := occupancy.Estimate(engine.Engine(f.engine), history, occupancy.Options{
		ModelHint:     f.model,
		Windows:       cfg.WindowTable(),
		Breakpoints:   cfg.Breakpoints,
		CompactBuffer: cfg.AutoCompactBuffer,
	})

	if f.json || !stdoutIsTTY() {
		writeJSON(snapshot)
		return
	}
	renderSnapshot(snapshot)
}
