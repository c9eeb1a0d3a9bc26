package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"marcpd/internal/candidatecache"
	"marcpd/internal/run"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var scoreEverything bool
	var bruteForce bool

	cmd := &cobra.Command{
		Use:   "match <input.jsonl>",
		Short: "Match input records against the cached candidate datasets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Processing.Workers = workers
			}
			if scoreEverything {
				cfg.Matching.ScoreEverything = true
			}
			if bruteForce {
				cfg.Matching.BruteForceMissingYear = true
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := candidatecache.Open(cfg)
			if err != nil {
				return fmt.Errorf("open candidate cache: %w", err)
			}
			defer store.Close()

			// SIGINT releases staging and keeps whatever results finished.
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := run.NewRunner(cfg, store, logger).Match(runCtx, args[0])
			if summary != nil {
				printSummary(cmd, summary)
			}
			return err
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count (0 uses all CPUs)")
	cmd.Flags().BoolVar(&scoreEverything, "score-everything", false, "Keep the best candidate per record regardless of thresholds")
	cmd.Flags().BoolVar(&bruteForce, "brute-force-missing-year", false, "Score records without a year against all candidates")
	return cmd
}

func printSummary(cmd *cobra.Command, summary *run.Summary) {
	rows := [][]string{
		{"Run", summary.RunID},
		{"Strategy", summary.Strategy},
		{"Batches", strconv.Itoa(summary.Batches)},
		{"Failed batches", strconv.Itoa(summary.FailedBatches)},
		{"Records processed", strconv.Itoa(summary.Totals.Processed)},
		{"Country breakdown", fmt.Sprintf("%d US, %d non-US, %d unknown",
			summary.Totals.USRecords, summary.Totals.NonUSRecords, summary.Totals.UnknownCountryRecords)},
		{"Skipped (no year)", strconv.Itoa(summary.Totals.SkippedNoYear)},
		{"Registration matches", strconv.Itoa(summary.Totals.RegistrationMatches)},
		{"Renewal matches", strconv.Itoa(summary.Totals.RenewalMatches)},
		{"LCCN matches", strconv.Itoa(summary.Totals.LCCNMatches)},
		{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
		{"Results", summary.ResultDir},
	}

	out := cmd.OutOrStdout()
	if isTerminal() {
		fmt.Fprintln(out, renderTable([]string{"Run summary", ""}, rows, []columnAlignment{alignLeft, alignLeft}))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s: %s\n", row[0], row[1])
	}
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
