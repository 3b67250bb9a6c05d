package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/sarchlab/irqhal/datarecording"
	"github.com/spf13/cobra"
)

var (
	historyController string
	historyLimit      int
)

var historyCmd = &cobra.Command{
	Use:   "history recording.sqlite3",
	Short: "Print the operations stored by run --record.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		datarecording.NewRecordReader(reader)

		params := datarecording.QueryParams{
			OrderBy: "Seq",
			Limit:   historyLimit,
		}

		if historyController != "" {
			params.Where = "Controller = ?"
			params.Args = []any{historyController}
		}

		ops, total, err := reader.Query(context.Background(),
			datarecording.OpTable, params)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SEQ\tCONTROLLER\tOP\tID\tVALUE\tRESULT\tERROR")

		for _, o := range ops {
			e := o.(*datarecording.OpEntry)
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
				e.Seq, e.Controller, e.Op, e.ID, e.Value, e.Result, e.Error)
		}

		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d operations\n", len(ops), total)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyController, "controller", "",
		"only show operations on this controller name")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0,
		"show at most this many operations")
}
