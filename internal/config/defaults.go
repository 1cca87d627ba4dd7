// Package config - defaults.go centralizes default values for knobs that
// a config file may override.
package config

// DefaultConfigEnvVar names the environment variable pointing at an
// optional YAML config file.
const DefaultConfigEnvVar = "USAGE_LEDGER_CONFIG"

// DefaultLogLevelEnvVar names the environment variable selecting the log
// level when --debug is not passed.
const DefaultLogLevelEnvVar = "USAGE_LEDGER_LOG_LEVEL"

// TokenEstimateRatio is the approximate number of characters per token,
// used only when an exact tokenizer is unavailable.
const TokenEstimateRatio = 4

// MaxRecordBytes bounds a single session JSONL line. Agent session files
// can carry multi-megabyte tool results on one line.
const MaxRecordBytes = 8 * 1024 * 1024
