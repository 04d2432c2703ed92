// Package summary handles the dashboard summary command
package summary

import (
	"io"

	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/internal/report"

	"github.com/spf13/cobra"
)

// Options are the summary command flags.
type Options struct {
	Recent bool
}

var opts Options

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the dashboard: totals lent and borrowed, net balance and open transactions",
	Long: `Show the headline figures of the ledger in the display currency.
With --recent the newest activities across all transactions are listed
instead. JSON output always carries the complete dashboard, including the
pending-interest list and the contact rankings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := root.CurrentEnv()
		if err != nil {
			return err
		}
		return Run(env, cmd.OutOrStdout(), opts)
	},
}

func init() {
	Cmd.Flags().BoolVar(&opts.Recent, "recent", false, "List the most recent activities")
}

// Run writes the dashboard view selected by o.
func Run(env *root.Env, w io.Writer, o Options) error {
	d, err := env.Ledger.Dashboard(env.Now)
	if err != nil {
		return err
	}
	if o.Recent {
		return env.Render(w, report.ActivityRows(d.Recent), d)
	}
	return env.Render(w, report.SummaryRows(d.Summary, env.Config.Ledger.DisplayCurrency), d)
}
