package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aipanel/usage-ledger/internal/config"
)

// readHistory loads one session JSONL file (or stdin for "-") into raw
// records, preserving file order. Blank lines are skipped; everything
// else is passed through untouched — the ledger isolates malformed
// records itself.
func readHistory(path string) ([][]byte, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening session file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), config.MaxRecordBytes)

	var history [][]byte
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		record := make([]byte, len(line))
		copy(record, line)
		history = append(history, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	return history, nil
}
