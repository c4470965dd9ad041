package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"radar/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Triage the raw digest interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(cfg.RawDigestPath())
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return errors.New("no raw digest found, run `radar monitor` first")
				}
				return fmt.Errorf("read raw digest: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			session := review.NewSession()
			stats, err := session.Run(runCtx, string(raw), cfg.ImportDigestPath())
			if err != nil {
				if errors.Is(err, review.ErrCanceled) {
					fmt.Fprintln(cmd.OutOrStdout(), "Review canceled, nothing written.")
					return nil
				}
				return err
			}

			out := cmd.OutOrStdout()
			if stats.Accepted > 0 {
				fmt.Fprintf(out, "Reviewed digest ready at %s\n", cfg.ImportDigestPath())
				fmt.Fprintln(out, "Next: run `radar import` to push it to the tracking database.")
			}
			return nil
		},
	}
}
