package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/stressgen/internal/manifest"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or show one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Manifest == "" {
				return errors.New("no manifest configured (use --manifest)")
			}

			store, err := manifest.Open(cfg.Manifest)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				run, err := store.Get(args[0])
				if err != nil {
					return err
				}
				printRun(out, run)
				return nil
			}

			runs, err := store.List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs recorded")
				return nil
			}
			for _, run := range runs {
				var total int64
				for _, o := range run.Outputs {
					total += o.Bytes
				}
				fmt.Fprintf(out, "%s  %s  seed=%d  %s\n",
					run.ID, run.StartedAt.Format(time.RFC3339), run.Seed, humanize.Bytes(uint64(total)))
			}
			return nil
		},
	}
}

func printRun(w io.Writer, run *manifest.Run) {
	fmt.Fprintf(w, "run      %s\n", run.ID)
	fmt.Fprintf(w, "seed     %d\n", run.Seed)
	fmt.Fprintf(w, "started  %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "took     %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	for _, o := range run.Outputs {
		fmt.Fprintf(w, "%-8s %s  %s  depth=%d budget=%g  sha256=%s\n",
			o.Name, o.Path, humanize.Bytes(uint64(o.Bytes)), o.MaxDepth, o.Budget, o.SHA256)
	}
}
