package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sarchlab/irqhal/irq"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "List the controllers of the machine and their capabilities.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, sync := newLogger()
		defer sync()

		r, err := bringUp(logger)
		if err != nil {
			return err
		}

		return describe(cmd.OutOrStdout(), r)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func describe(out io.Writer, r *irq.Registry) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "CONTROLLER\tNAME\tIDS\tPRIORITY\tTHRESHOLD\tVECTOR\tCOMMANDS")

	for _, h := range r.Handles() {
		caps := h.Capabilities()

		commands := make([]string, 0, len(caps.Commands))
		for _, c := range caps.Commands {
			commands = append(commands, c.String())
		}

		fmt.Fprintf(w, "%s/%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.Kind(), h.Index(), h.Name(),
			caps.IDs, caps.Priority, caps.Threshold, caps.VectorModes,
			strings.Join(commands, ","))
	}

	return w.Flush()
}
