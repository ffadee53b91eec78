package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCacheCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "cache",
		Short: "Inspect and clean up dictionary cache files",
	}
	var sourceType SourceType
	rootCommand.PersistentFlags().Var(&sourceType, "source",
		fmt.Sprintf("Content source to use. Possible values are %v. Defaults to content.source", allSourceTypes))

	rootCommand.AddCommand(
		&cobra.Command{
			Use:   "fingerprint",
			Short: "Show the fingerprint of the current content and its cache file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}

				ctx := cmd.Context()
				engine, closeEngine, err := newEngine(ctx, cfg, sourceType)
				if err != nil {
					return err
				}
				defer func() {
					_ = closeEngine()
				}()

				fingerprint, err := engine.Cache().Fingerprint(ctx)
				if err != nil {
					return fmt.Errorf("cache.Fingerprint > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fingerprint: %s\nfile: %s\n",
					fingerprint, engine.Cache().FilePath(fingerprint))
				return nil
			},
		},
		&cobra.Command{
			Use:   "prune",
			Short: "Remove cache files of outdated fingerprints",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}

				ctx := cmd.Context()
				engine, closeEngine, err := newEngine(ctx, cfg, sourceType)
				if err != nil {
					return err
				}
				defer func() {
					_ = closeEngine()
				}()

				removed, err := engine.Cache().Prune(ctx)
				w := cmd.OutOrStdout()
				for _, path := range removed {
					_, _ = fmt.Fprintf(w, "removed %s\n", path)
				}
				if err != nil {
					return fmt.Errorf("cache.Prune > %w", err)
				}
				_, _ = color.New(color.FgGreen).Fprintf(w, "%d cache file(s) removed\n", len(removed))
				return nil
			},
		},
	)
	return &rootCommand
}
