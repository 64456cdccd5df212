package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/stressgen/internal/bench"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the generated files are properly nested",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			reports, err := bench.Verify(cfg)
			out := cmd.OutOrStdout()
			for _, rep := range reports {
				if rep.Err != nil {
					fmt.Fprintf(out, "FAIL %-8s %s: %v\n", rep.Name, rep.Path, rep.Err)
					continue
				}
				fmt.Fprintf(out, "ok   %-8s %s (%s)\n", rep.Name, rep.Path, humanize.Bytes(uint64(rep.Bytes)))
			}
			return err
		},
	}
}
