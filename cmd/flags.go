package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aipanel/usage-ledger/internal/config"
)

// commonFlags are shared by every subcommand.
type commonFlags struct {
	engine     string
	model      string
	configPath string
	json       bool
	debug      bool
}

// parseCommonFlags walks the argument list the same way for each
// subcommand: flags anywhere, everything else positional.
func parseCommonFlags(args []string) (commonFlags, []string, error) {
	f := commonFlags{
		engine:     "claude",
		configPath: os.Getenv(config.DefaultConfigEnvVar),
	}
	var positional []string

	i := 0
	for i < len(args) {
		switch args[i] {
		case "-e", "--engine":
			v, n, err := flagValue(args, i)
			if err != nil {
				return f, nil, err
			}
			f.engine = v
			i = n
		case "-m", "--model":
			v, n, err := flagValue(args, i)
			if err != nil {
				return f, nil, err
			}
			f.model = v
			i = n
		case "-c", "--config":
			v, n, err := flagValue(args, i)
			if err != nil {
				return f, nil, err
			}
			f.configPath = v
			i = n
		case "--json":
			f.json = true
			i++
		case "-d", "--debug":
			f.debug = true
			i++
		default:
			if strings.HasPrefix(args[i], "-") && args[i] != "-" {
				return f, nil, fmt.Errorf("unknown option: %s", args[i])
			}
			positional = append(positional, args[i])
			i++
		}
	}
	return f, positional, nil
}

func flagValue(args []string, i int) (string, int, error) {
	if i+1 >= len(args) {
		return "", 0, fmt.Errorf("%s requires a value", args[i])
	}
	return args[i+1], i + 2, nil
}
