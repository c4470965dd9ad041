package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"radar/internal/pipeline"
	"radar/internal/state"
)

func newMonitorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Fetch all sources and write the ranked raw digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			lock, err := state.AcquireRunLock(cfg)
			if err != nil {
				return err
			}
			defer lock.Release()

			store, err := state.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := pipeline.Run(runCtx, cfg, logger, store, pipeline.Connectors(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sourceTable(summary.Sources))

			fmt.Fprintf(out, "\n%d fetched, %d exact dups, %d cross-source dups\n",
				summary.Fetched, summary.ExactDups, summary.FuzzyDups)
			if summary.Written == 0 {
				fmt.Fprintln(out, "No new candidates in the window.")
				return nil
			}
			fmt.Fprintf(out, "%d entries written to %s\n", summary.Written, summary.DigestPath)
			fmt.Fprintln(out, "Next: run `radar review` to triage the digest.")
			return nil
		},
	}
}
