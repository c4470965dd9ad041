package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"radar/internal/digest"
	"radar/internal/state"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pipeline state: digests, seen set, and suppression logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := state.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}

			seen, err := store.LoadSeen(runCtx)
			if err != nil {
				return err
			}
			daily, err := store.LoadLog(runCtx, state.DailyKey(time.Now()))
			if err != nil {
				return err
			}
			global, err := store.LoadLog(runCtx, state.GlobalKey)
			if err != nil {
				return err
			}

			rows := [][2]string{
				{"Raw digest", digestSummary(cfg.RawDigestPath())},
				{"Import digest", digestSummary(cfg.ImportDigestPath())},
				{"Seen URLs", strconv.Itoa(seen.Len())},
				{"Today's import log", strconv.Itoa(daily.Len())},
				{"Global import log", strconv.Itoa(global.Len())},
				{"State database", store.Path()},
			}
			fmt.Fprintln(cmd.OutOrStdout(), kvTable(rows))
			return nil
		},
	}
}

func digestSummary(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "missing"
	}
	count := digest.Count(string(data))
	if count == 0 {
		return "empty"
	}
	return fmt.Sprintf("%d entries", count)
}
