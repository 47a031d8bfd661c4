package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/suryaravikumar-space/loopkit/internal/demos"
	"github.com/suryaravikumar-space/loopkit/internal/harness"
	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	RealTime bool // run on the wall clock instead of the virtual clock
}

// RunOutput is the JSON shape of a demo execution.
type RunOutput struct {
	Demo     string   `json:"demo"`
	RunToken string   `json:"run_token"`
	Lines    []string `json:"lines"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <demo>",
		Short: "Run one demo and print its transcript",
		Long: `Run one demo from the catalog on a fresh event loop and print the
transcript it produces.

By default the loop uses a virtual clock, so timer-heavy demos finish
instantly and deterministically. --real-time switches to the wall clock
and actually waits out the delays.

Examples:
  loopkit run debounce
  loopkit run timers --real-time
  loopkit run combinators --format json -v`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.RealTime, "real-time", false, "use the wall clock instead of the virtual clock")

	return cmd
}

func runDemo(opts *RunOptions, name string, cmd *cobra.Command) error {
	demo, ok := demos.Find(name)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown demo %q (try 'loopkit list')", name))
	}

	var loopOpts []loop.Option
	if opts.RealTime {
		loopOpts = append(loopOpts, loop.WithClock(loop.NewWallClock()))
	}

	token := harness.NewUUIDGenerator().Generate()
	slog.Debug("running demo", "demo", demo.Name, "run_token", token, "real_time", opts.RealTime)

	transcript, err := demos.Execute(cmd.Context(), demo, loop.New(loopOpts...))
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("demo %s failed", demo.Name), err)
	}
	slog.Debug("demo finished", "demo", demo.Name, "run_token", token, "lines", len(transcript.Lines()))

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
		return f.JSON(RunOutput{Demo: demo.Name, RunToken: token, Lines: transcript.Lines()})
	}

	fmt.Fprint(cmd.OutOrStdout(), transcript.String())
	return nil
}
