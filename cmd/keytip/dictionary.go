package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/keytip/internal/dictionary"
	"github.com/at-ishikawa/keytip/internal/operator"
)

func newDictionaryCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "dictionary",
		Short: "Inspect the dictionary built from the content tree",
	}
	var sourceType SourceType
	rootCommand.PersistentFlags().Var(&sourceType, "source",
		fmt.Sprintf("Content source to use. Possible values are %v. Defaults to content.source", allSourceTypes))

	rootCommand.AddCommand(
		newDictionaryListCommand(&sourceType),
		newDictionaryLookupCommand(&sourceType),
	)
	return &rootCommand
}

func newDictionaryListCommand(sourceType *SourceType) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every keyword with its description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			recorder := &dictionary.DiagnosticRecorder{}
			diagnostics := dictionary.MultiDiagnostics{recorder, dictionary.NewLogDiagnostics(slog.Default())}
			engine, closeEngine, err := newEngine(ctx, cfg, *sourceType, operator.WithDiagnostics(diagnostics))
			if err != nil {
				return err
			}
			defer func() {
				_ = closeEngine()
			}()

			mapping, err := engine.Dictionary(ctx)
			if err != nil {
				return fmt.Errorf("engine.Dictionary > %w", err)
			}
			showDictionary(cmd.OutOrStdout(), mapping, recorder.Diagnostics())
			return nil
		},
	}
}

func newDictionaryLookupCommand(sourceType *SourceType) *cobra.Command {
	var caseSensitive bool
	command := &cobra.Command{
		Use:   "lookup <keyword>",
		Short: "Show the description of a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("case-sensitive") {
				caseSensitive = cfg.Dictionary.CaseSensitive
			}

			ctx := cmd.Context()
			engine, closeEngine, err := newEngine(ctx, cfg, *sourceType)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeEngine()
			}()

			mapping, err := engine.Dictionary(ctx)
			if err != nil {
				return fmt.Errorf("engine.Dictionary > %w", err)
			}
			description, ok := mapping.Lookup(args[0], caseSensitive)
			if !ok {
				return dictionary.NewError(dictionary.KindLookup, "keyword %q is not in the dictionary", args[0])
			}
			_, _ = color.New(color.Bold).Fprintf(cmd.OutOrStdout(), "%s", args[0])
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), ": %s\n", description)
			return nil
		},
	}
	command.Flags().BoolVar(&caseSensitive, "case-sensitive", false,
		"Match the keyword case sensitively. Defaults to dictionary.case_sensitive")
	return command
}

// showDictionary writes the entries and the diagnostics of the build.
// Diagnostics are empty when the dictionary came from the cache.
func showDictionary(w io.Writer, mapping *dictionary.Mapping, diagnostics []dictionary.Diagnostic) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	for _, entry := range mapping.Entries() {
		_, _ = bold.Fprintf(w, "%s", entry.Keyword)
		_, _ = fmt.Fprintf(w, ": %s\n", entry.Description)
	}
	_, _ = fmt.Fprintf(w, "\n%d keyword(s)\n", mapping.Len())

	for _, d := range diagnostics {
		printer := yellow
		if d.Severity == dictionary.SeverityError {
			printer = red
		}
		if d.NodeID != 0 {
			_, _ = printer.Fprintf(w, "%s: node %d: %s\n", d.Severity, d.NodeID, d.Err.Message)
		} else {
			_, _ = printer.Fprintf(w, "%s: %s\n", d.Severity, d.Err.Message)
		}
	}
}
