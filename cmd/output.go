package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/aipanel/usage-ledger/internal/ledger"
	"github.com/aipanel/usage-ledger/internal/occupancy"
	"github.com/aipanel/usage-ledger/internal/utils"
)

func stdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func writeJSON(v any) {
	out, err := utils.MarshalIndentNoEscape(v)
	if err != nil {
		fatalf("encoding output: %v", err)
	}
	fmt.Println(string(out))
}

// formatUSD rounds for display only; the library keeps full precision.
func formatUSD(v float64) string {
	return fmt.Sprintf("$%.4f", v)
}

func formatTimestamp(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}

func renderCostsTable(agg ledger.Aggregation) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tMODEL\tINPUT\tOUTPUT\tCACHE W\tCACHE R\tCOST")
	for _, ev := range agg.Events {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			formatTimestamp(ev.TimestampMS), ev.Model,
			ev.Usage.InputTokens, ev.Usage.OutputTokens,
			ev.Usage.CacheCreationTokens, ev.Usage.CacheReadTokens,
			formatUSD(ev.Cost))
	}
	fmt.Fprintf(w, "TOTAL\t%d events\t%d\t%d\t%d\t%d\t%s\n",
		agg.EventCount,
		agg.Totals.InputTokens, agg.Totals.OutputTokens,
		agg.Totals.CacheCreationTokens, agg.Totals.CacheReadTokens,
		formatUSD(agg.Totals.TotalCost))
	_ = w.Flush()

	if len(agg.Models) > 1 {
		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL\tEVENTS\tTOKENS\tCOST")
		for _, m := range agg.Models {
			mt := agg.ByModel[m]
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", m, mt.Events, mt.TotalTokens, formatUSD(mt.Cost))
		}
		_ = w.Flush()
	}
}

func renderSnapshot(s occupancy.Snapshot) {
	if !s.HasData {
		fmt.Println("no usage data in session")
		return
	}
	fmt.Printf("model:    %s\n", s.Model)
	fmt.Printf("window:   %d tokens\n", s.WindowSize)
	fmt.Printf("occupied: %d tokens (%.1f%%, %s)\n", s.CurrentTokens, s.Percentage, s.Level)
	fmt.Printf("          input=%d cache_write=%d cache_read=%d\n",
		s.Breakdown.InputTokens, s.Breakdown.CacheCreationTokens, s.Breakdown.CacheReadTokens)
	if s.HasCompactProjection {
		switch {
		case s.WillTriggerCompact:
			fmt.Printf("compact:  threshold %d reached, auto-compaction will trigger\n", s.AutoCompactThreshold)
		case s.NearCompact:
			fmt.Printf("compact:  approaching threshold %d (%d tokens left)\n", s.AutoCompactThreshold, s.TokensUntilCompact)
		default:
			fmt.Printf("compact:  %d tokens until threshold %d\n", s.TokensUntilCompact, s.AutoCompactThreshold)
		}
	}
}

func renderEstimate(r estimateReport) {
	kind := "exact"
	if !r.Exact {
		kind = "approximate"
	}
	fmt.Printf("tokens:   %d (%s)\n", r.Tokens, kind)
	fmt.Printf("model:    %s (window %d)\n", r.Model, r.WindowSize)
	fmt.Printf("occupies: %.1f%% (%s)\n", r.Percentage, r.Level)
}
