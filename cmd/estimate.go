package main

import (
	"io"
	"os"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"

	"github.com/aipanel/usage-ledger/internal/config"
	"github.com/aipanel/usage-ledger/internal/engine"
	"github.com/aipanel/usage-ledger/internal/occupancy"
)

// estimateReport is the JSON shape for the estimate subcommand.
type estimateReport struct {
	Model      string          `json:"model"`
	Tokens     int             `json:"tokens"`
	Exact      bool            `json:"exact"`
	WindowSize int             `json:"window_size"`
	Percentage float64         `json:"percentage"`
	Level      occupancy.Level `json:"level"`
}

func runEstimateCommand(args []string) {
	f, positional, err := parseCommonFlags(args)
	if err != nil {
		fatalf("%v", err)
	}
	setupLogging(f.debug)
	if len(positional) != 1 {
		fatalf("estimate requires exactly one prompt file (or - for stdin)")
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fatalf("%v", err)
	}
	text, err := readPrompt(positional[0])
	if err != nil {
		fatalf("%v", err)
	}

	model := f.model
	if model == "" {
		model = engine.RulesFor(engine.Engine(f.engine)).DefaultModel
	}
	tokens, exact := countTokens(text, model)

	window := cfg.WindowTable().Lookup(model)
	pct := float64(tokens) / float64(window) * 100
	if pct > 100 {
		pct = 100
	}
	bp := occupancy.DefaultBreakpoints
	if cfg.Breakpoints != nil {
		bp = *cfg.Breakpoints
	}

	report := estimateReport{
		Model:      model,
		Tokens:     tokens,
		Exact:      exact,
		WindowSize: window,
		Percentage: pct,
		Level:      occupancy.Classify(pct, bp),
	}
	if f.json || !stdoutIsTTY() {
		writeJSON(report)
		return
	}
	renderEstimate(report)
}

func readPrompt(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// countTokens counts tokens with tiktoken, falling back to a character
// ratio estimate when the encoding is unavailable (e.g. offline and no
// cached vocabulary). The second return reports whether the count is
// exact.
func countTokens(text, model string) (int, bool) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
	}
	if err != nil {
		log.Debug().Err(err).Str("model", model).Msg("tokenizer unavailable, using character estimate")
		return len(text) / config.TokenEstimateRatio, false
	}
	return len(enc.Encode(text, nil, nil)), true
}
