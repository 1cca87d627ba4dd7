// Command usage-ledger inspects agent session JSONL files: reconciled
// billing ledgers, context-window occupancy, and prompt size estimates.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aipanel/usage-ledger/internal/config"
)

func main() {
	loadEnvFiles()

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	switch args[0] {
	case "costs":
		runCostsCommand(args[1:])
	case "context":
		runContextCommand(args[1:])
	case "estimate":
		runEstimateCommand(args[1:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Print(`usage-ledger - session usage and billing inspector

Usage:
  usage-ledger costs [flags] <session.jsonl>     reconciled billing ledger
  usage-ledger context [flags] <session.jsonl>   context window occupancy
  usage-ledger estimate [flags] <prompt-file>    token estimate for a prompt

Flags:
  -e, --engine <name>   backend engine: claude, codex, gemini (default claude)
  -m, --model <name>    model hint when records carry no model field
  -c, --config <path>   YAML config overriding pricing/windows/breakpoints
      --json            force JSON output (default when not a terminal)
  -d, --debug           verbose logging

A file argument of "-" reads from stdin.
`)
}

// loadEnvFiles picks up an optional .env next to the working directory so
// USAGE_LEDGER_CONFIG / USAGE_LEDGER_LOG_LEVEL can live in a project file.
func loadEnvFiles() {
	_ = godotenv.Load()
}

func setupLogging(debug bool) {
	level := zerolog.WarnLevel
	if v := os.Getenv(config.DefaultLogLevelEnvVar); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Str("run_id", uuid.NewString()).Logger()
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}
