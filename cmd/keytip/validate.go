package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/keytip/internal/dictionary"
	"github.com/at-ishikawa/keytip/internal/operator"
)

type validationResult struct {
	InvalidClasses []string
	Diagnostics    []dictionary.Diagnostic
	Keywords       int
}

func (r validationResult) errorCount() int {
	count := len(r.InvalidClasses)
	for _, d := range r.Diagnostics {
		if d.Severity == dictionary.SeverityError {
			count++
		}
	}
	return count
}

func newValidateCommand() *cobra.Command {
	var sourceType SourceType

	command := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and check every word node against the dictionary classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			recorder := &dictionary.DiagnosticRecorder{}
			engine, closeEngine, err := newEngine(ctx, cfg, sourceType, operator.WithDiagnostics(recorder))
			if err != nil {
				return err
			}
			defer func() {
				_ = closeEngine()
			}()

			// Build without the cache so every node is checked.
			nodes, err := engine.Nodes(ctx)
			if err != nil {
				return fmt.Errorf("engine.Nodes > %w", err)
			}
			mapping, err := engine.Builder().Build(nodes)
			if err != nil {
				return fmt.Errorf("builder.Build > %w", err)
			}

			result := validationResult{
				InvalidClasses: dictionary.ParseClassSpecs(cfg.Dictionary.Classes).Invalid(),
				Diagnostics:    recorder.Diagnostics(),
				Keywords:       mapping.Len(),
			}
			displayValidationResults(cmd.OutOrStdout(), result)

			if errorCount := result.errorCount(); errorCount > 0 {
				return fmt.Errorf("validation failed with %d error(s)", errorCount)
			}
			return nil
		},
	}
	command.Flags().Var(&sourceType, "source",
		fmt.Sprintf("Content source to use. Possible values are %v. Defaults to content.source", allSourceTypes))

	return command
}

func displayValidationResults(w io.Writer, result validationResult) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)

	_, _ = fmt.Fprintln(w, "=== Validation Results ===")

	if len(result.InvalidClasses) > 0 {
		_, _ = red.Fprintf(w, "✗ Misconfigured classes (%d):\n", len(result.InvalidClasses))
		for _, class := range result.InvalidClasses {
			_, _ = fmt.Fprintf(w, "  - %s: a description attribute is required\n", class)
		}
		_, _ = fmt.Fprintln(w)
	}

	var failures, notices []dictionary.Diagnostic
	for _, d := range result.Diagnostics {
		if d.Severity == dictionary.SeverityError {
			failures = append(failures, d)
		} else {
			notices = append(notices, d)
		}
	}

	if len(failures) > 0 {
		_, _ = red.Fprintf(w, "✗ Skipped nodes (%d):\n", len(failures))
		for _, d := range failures {
			_, _ = fmt.Fprintf(w, "  - node %d (%s): %s\n", d.NodeID, d.Class, d.Err.Message)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(notices) > 0 {
		_, _ = yellow.Fprintf(w, "⚠ Notices (%d):\n", len(notices))
		for _, d := range notices {
			_, _ = fmt.Fprintf(w, "  - %s\n", d.Err.Message)
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, "=== Summary ===")
	_, _ = fmt.Fprintf(w, "%d keyword(s)\n", result.Keywords)
	if errorCount := result.errorCount(); errorCount > 0 {
		_, _ = red.Fprintf(w, "✗ Total errors: %d\n", errorCount)
	} else {
		_, _ = green.Fprintln(w, "✓ All validations passed!")
	}
}
