package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/occfilter/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // suite filter (glob pattern on the file name)
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <suite-or-dir>...",
		Short: "Run conformance suites",
		Long: `Run YAML conformance suites against the predicate codec.

Each case decodes a predicate or download request and checks the
outcome: the expected error code, the canonical encoding, round-trip
stability and structural assertions. Directories are searched for
.yaml and .yml files.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed or a suite could not be loaded
  2 - Command error (missing path, bad filter, etc.)

Examples:
  occfilter test ./suites
  occfilter test ./suites --filter "core*"
  occfilter test ./suites/limits.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter suites by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, paths []string, cmd *cobra.Command) error {
	if err := opts.checkFormat(); err != nil {
		return err
	}
	f := opts.formatter(cmd)

	files, err := harness.FindSuites(paths)
	var notFound *harness.SuiteNotFoundError
	if errors.As(err, &notFound) {
		_ = f.Error(ErrCodeNotFound, notFound.Error(), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeNotFound, notFound.Error()))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find suites", err)
	}

	files, err = filterSuites(files, opts.Filter)
	if err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid filter", err)
	}

	if len(files) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, &harness.Summary{})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No suites found.")
		return nil
	}

	for _, file := range files {
		f.VerboseLog("Running %s", file)
	}
	summary, err := harness.RunAll(files)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run suites", err)
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, summary)
	}
	return outputTestText(cmd, summary)
}

// filterSuites keeps the files whose base name, without extension,
// matches pattern.
func filterSuites(files []string, pattern string) ([]string, error) {
	if pattern == "" {
		return files, nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid filter pattern: %w", err)
	}
	var out []string
	for _, file := range files {
		base := filepath.Base(file)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if matched, _ := filepath.Match(pattern, name); matched {
			out = append(out, file)
		}
	}
	return out, nil
}

// outputTestJSON outputs the test summary as JSON.
func outputTestJSON(cmd *cobra.Command, summary *harness.Summary) error {
	status := "ok"
	if !summary.OK() {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   summary,
	}

	if !summary.OK() {
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d failure(s)", len(summary.Failures)),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !summary.OK() {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d failure(s)", len(summary.Failures)))
	}
	return nil
}

// outputTestText outputs the test summary as text.
func outputTestText(cmd *cobra.Command, summary *harness.Summary) error {
	w := cmd.OutOrStdout()

	for _, fail := range summary.Failures {
		if fail.Case == "" {
			fmt.Fprintf(w, "✗ %s\n  %s\n", fail.SuitePath, fail.Error)
			continue
		}
		fmt.Fprintf(w, "✗ %s: %s\n  %s\n", fail.SuitePath, fail.Case, fail.Error)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total (%d suites)\n",
		summary.Passed, summary.Failed, summary.TotalCases, summary.TotalSuites)

	if !summary.OK() {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d failure(s)", len(summary.Failures)))
	}

	fmt.Fprintln(w, "✓ All cases passed")
	return nil
}
