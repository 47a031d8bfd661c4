package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/suryaravikumar-space/loopkit/internal/demos"
)

// DemoInfo is the JSON shape of one catalog entry.
type DemoInfo struct {
	Name    string `json:"name"`
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the demo catalog",
		Long: `List every demo in the catalog with its topic and summary.

Examples:
  loopkit list
  loopkit list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := demos.All()

			if rootOpts.Format == "json" {
				infos := make([]DemoInfo, 0, len(catalog))
				for _, d := range catalog {
					infos = append(infos, DemoInfo{Name: d.Name, Topic: d.Topic, Summary: d.Summary})
				}
				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}
				return f.JSON(infos)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTOPIC\tSUMMARY")
			for _, d := range catalog {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Topic, d.Summary)
			}
			return w.Flush()
		},
	}
}
