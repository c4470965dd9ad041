package main

import (
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"radar/internal/importer"
	"radar/internal/notion"
	"radar/internal/state"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Push the reviewed digest to the Notion tracking database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireNotion(); err != nil {
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

			client, err := notion.New(cfg.Notion.Token, cfg.Notion.DatabaseID, cfg.Notion.BaseURL,
				notion.WithLogger(logger),
				notion.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Notion.RequestTimeout) * time.Second}))
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			outcome, err := importer.Run(runCtx, cfg, logger, store, client)
			if err != nil {
				if errors.Is(err, importer.ErrEmptyDigest) {
					return errors.New("import digest is empty, run `radar review` first")
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d created, %d duplicates skipped, %d failed\n",
				outcome.Created, outcome.Skipped, outcome.Failed)
			for _, title := range outcome.FailedTitles {
				fmt.Fprintf(out, "  failed: %s\n", title)
			}
			fmt.Fprintf(out, "Digest archived to %s\n", outcome.ArchivePath)
			return nil
		},
	}
}
