package main

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/stressgen/internal/bench"
	"pkg.jsn.cam/stressgen/internal/config"
	"pkg.jsn.cam/stressgen/internal/logging"
	"pkg.jsn.cam/stressgen/internal/manifest"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stressgen",
		Short: "Generate nested bracket and tag stress inputs",
		Long: `stressgen writes two randomized benchmark inputs:
a balanced ()/[] sequence (benches/stress.txt) and a nested
pseudo-tag document (benches/stress_html.txt).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.String("dir", "", "output directory (default benches)")
	pf.String("manifest", "", "bbolt file recording generation runs")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	f := cmd.Flags()
	f.Uint64("seed", 0, "seed to replay a previous run; any value, 0 included, pins it (unset picks a random seed)")
	f.Bool("mkdir", false, "create the output directory if missing")
	f.Bool("progress", false, "show a progress bar while writing")

	cmd.AddCommand(newVerifyCmd(), newHistoryCmd())
	return cmd
}

// loadConfig reads --config and applies any flag the user set on top of it
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.OutputDir, _ = flags.GetString("dir")
	}
	if flags.Changed("manifest") {
		cfg.Manifest, _ = flags.GetString("manifest")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		cfg.Seed = &seed
	}
	if flags.Changed("mkdir") {
		cfg.CreateDirs, _ = flags.GetBool("mkdir")
	}
	if flags.Changed("progress") {
		cfg.Progress, _ = flags.GetBool("progress")
	}

	return cfg, cfg.Validate()
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	level := slog.LevelInfo
	if cfg.LogLevel != "" {
		var err error
		if level, err = logging.ParseLevel(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
		}
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	var opts []bench.Option
	if cfg.Manifest != "" {
		store, err := manifest.Open(cfg.Manifest)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, bench.WithManifest(store))
	}
	if cfg.Progress {
		opts = append(opts, bench.WithProgress(cmd.ErrOrStderr()))
	}

	run, err := bench.NewRunner(logger, opts...).Run(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, o := range run.Outputs {
		fmt.Fprintf(out, "%-8s %s (%s)\n", o.Name, o.Path, humanize.Bytes(uint64(o.Bytes)))
	}
	fmt.Fprintf(out, "seed %d\n", run.Seed)
	return nil
}
