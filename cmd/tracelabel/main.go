// Command tracelabel rewrites logging labels (trace:, log:, warn: and
// configured aliases) in Go sources into emission calls, stripping them
// per policy.
package main

import (
	"errors"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/sirkon/tracelabel"
	"github.com/sirkon/tracelabel/internal/rewrite"
)

const defaultConfigPath = ".tracelabel.yaml"

type options struct {
	configPath string
	env        string
	outDir     string
	write      bool
	watch      bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "tracelabel [flags] paths...",
		Short: "Rewrite logging labels into emission calls",
		Long: `tracelabel transforms Go sources where labeled statements carry logging
payloads (trace:, log:, warn: or configured aliases) into calls to an
emission function, deleting them entirely when the strip policy applies.

Without --write or --out the transformed sources go to stdout.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := hclog.New(&hclog.LoggerOptions{
				Name:  "tracelabel",
				Level: logLevel(opts.verbose),
			})

			if err := run(logger, &opts, args); err != nil {
				logger.Error("failed", "error", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "configuration file (default "+defaultConfigPath+" when present)")
	f.StringVarP(&opts.env, "env", "e", "", "environment name (overrides config and "+tracelabel.EnvVar+")")
	f.StringVarP(&opts.outDir, "out", "o", "", "write transformed files under this directory")
	f.BoolVarP(&opts.write, "write", "w", false, "rewrite files in place")
	f.BoolVar(&opts.watch, "watch", false, "keep running, re-transforming changed files (requires --out)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log every label decision")

	return cmd
}

func logLevel(verbose bool) hclog.Level {
	if verbose {
		return hclog.Debug
	}
	return hclog.Info
}

func run(logger hclog.Logger, opts *options, args []string) error {
	if opts.watch && opts.outDir == "" {
		return errors.New("--watch requires --out, otherwise rewrites would retrigger themselves")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.env != "" {
		cfg.Env = opts.env
	}

	// Surface configuration shape errors before touching any file.
	if _, err := cfg.Table(); err != nil {
		return err
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("no Go files found", "paths", args)
	}

	decisions := &rewrite.DecisionLog{}
	if err := transformAll(logger, cfg, files, opts, decisions); err != nil {
		return err
	}
	report(logger, decisions)

	if opts.watch {
		return watch(logger, cfg, args, opts, decisions)
	}

	return nil
}

func loadConfig(opts *options) (*tracelabel.Config, error) {
	path := opts.configPath
	if path == "" {
		path = defaultConfigPath
		if _, err := os.Stat(path); err != nil {
			return &tracelabel.Config{}, nil
		}
	}

	return tracelabel.LoadConfig(path)
}

func report(logger hclog.Logger, decisions *rewrite.DecisionLog) {
	var rewritten, stripped int
	for _, d := range decisions.Decisions() {
		switch d.Action {
		case rewrite.ActionRewritten:
			rewritten++
		case rewrite.ActionStripped:
			stripped++
		}

		logger.Debug("label",
			"action", d.Action.String(),
			"label", d.Label,
			"context", d.Context,
			"pos", d.Pos.String(),
		)
	}

	logger.Info("done", "rewritten", rewritten, "stripped", stripped)
}
