package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suryaravikumar-space/loopkit/internal/demos"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <demo>",
		Short: "Describe one demo",
		Long: `Print the topic and summary of one demo from the catalog.

Examples:
  loopkit describe throttle
  loopkit describe mini-store --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			demo, ok := demos.Find(args[0])
			if !ok {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown demo %q (try 'loopkit list')", args[0]))
			}

			if rootOpts.Format == "json" {
				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}
				return f.JSON(DemoInfo{Name: demo.Name, Topic: demo.Topic, Summary: demo.Summary})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:    %s\n", demo.Name)
			fmt.Fprintf(out, "Topic:   %s\n", demo.Topic)
			fmt.Fprintf(out, "Summary: %s\n", demo.Summary)
			return nil
		},
	}
}
