package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/keytip/internal/operator"
)

func newAnnotateCommand() *cobra.Command {
	var caseSensitive bool
	var sourceType SourceType

	command := &cobra.Command{
		Use:   "annotate [file]",
		Short: "Annotate dictionary words in an HTML file, or stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			input, err := readInput(cmd, args)
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

			params := map[string]any{}
			if cmd.Flags().Changed("case-sensitive") {
				params[operator.ParamCaseSensitive] = caseSensitive
			}
			output, err := engine.Modify(ctx, input, params)
			if err != nil {
				return fmt.Errorf("engine.Modify > %w", err)
			}

			if _, err := fmt.Fprint(cmd.OutOrStdout(), output); err != nil {
				return fmt.Errorf("fmt.Fprint > %w", err)
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.BoolVar(&caseSensitive, "case-sensitive", false, "Match keywords case sensitively. Defaults to dictionary.case_sensitive")
	flags.Var(&sourceType, "source", fmt.Sprintf("Content source to use. Possible values are %v. Defaults to content.source", allSourceTypes))

	return command
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		contents, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("io.ReadAll(stdin) > %w", err)
		}
		return string(contents), nil
	}

	contents, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
	}
	return string(contents), nil
}
