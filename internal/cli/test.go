package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suryaravikumar-space/loopkit/internal/harness"
)

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Demo   string   `json:"demo"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run scenario conformance checks",
		Long: `Load every *.yaml scenario in the directory, run each demo on a fresh
virtual-clock loop, and evaluate its assertions.

Exit codes:
  0 - all scenarios passed
  1 - one or more scenarios failed
  2 - command error (invalid path, malformed scenario)

Examples:
  loopkit test ./scenarios
  loopkit test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runScenarios(opts *RootOptions, dir string, cmd *cobra.Command) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}

	scenarios, err := harness.LoadScenarioDir(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading scenarios", err)
	}

	result := TestResult{Total: len(scenarios)}
	for _, s := range scenarios {
		sr := ScenarioResult{Name: s.Name, Demo: s.Demo}
		run, err := harness.Run(cmd.Context(), s)
		if err != nil {
			sr.Errors = append(sr.Errors, err.Error())
		} else {
			sr.Pass = run.Passed()
			for _, failure := range run.Failures() {
				sr.Errors = append(sr.Errors, failure.Error())
			}
		}
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
		if err := f.JSON(result); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		for _, sr := range result.Scenarios {
			status := "PASS"
			if !sr.Pass {
				status = "FAIL"
			}
			fmt.Fprintf(out, "%s  %s (%s)\n", status, sr.Name, sr.Demo)
			if opts.Verbose || !sr.Pass {
				for _, e := range sr.Errors {
					fmt.Fprintf(out, "      %s\n", e)
				}
			}
		}
		fmt.Fprintf(out, "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}
