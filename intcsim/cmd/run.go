package cmd

import (
	"fmt"
	"io"

	"github.com/sarchlab/irqhal/datarecording"
	"github.com/sarchlab/irqhal/irq"
	"github.com/sarchlab/irqhal/platform"
	"github.com/sarchlab/irqhal/scenario"
	"github.com/spf13/cobra"
)

var recordPath string

var runCmd = &cobra.Command{
	Use:   "run scenario.yaml",
	Short: "Run a scenario against the machine.",
	Long: "`run scenario.yaml` executes the steps of the scenario in order " +
		"and stops at the first unmet expectation. With --record, every " +
		"operation and delivery is stored in an SQLite database.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, sync := newLogger()
		defer sync()

		script, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		var opts []platform.Option

		if path := envOr(recordPath, envRecord); path != "" {
			rec := datarecording.NewRecorder(datarecording.New(path))
			defer rec.Close()

			opts = append(opts, platform.WithHook(rec))
		}

		r, err := bringUp(logger, opts...)
		if err != nil {
			return err
		}

		report, err := scenario.NewRunner().
			WithLogger(logger.WithName("scenario")).
			Run(r, script)
		printReport(cmd.OutOrStdout(), report)

		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&recordPath, "record", "",
		"record to this database name (default $"+envRecord+")")
}

func printReport(out io.Writer, report scenario.Report) {
	fmt.Fprintf(out, "run %s: %s\n", report.RunID, report.Script)

	for _, res := range report.Results {
		fmt.Fprintf(out, "%4d  %-15s %-12s value=%d",
			res.Step, res.Op, irq.ErrorCode(res.Err), res.Value)

		for _, d := range res.Deliveries {
			fmt.Fprintf(out, "  -> %s#%d", d.Controller, d.ID)
			if d.Vectored {
				fmt.Fprint(out, " (vectored)")
			}
		}

		for _, d := range res.Spurious {
			fmt.Fprintf(out, "  -> %s#%d (spurious)", d.Controller, d.ID)
		}

		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%d steps, %d returned errors\n",
		len(report.Results), report.Failed())
}
