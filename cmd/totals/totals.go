// Package totals handles the per-obligation totals command
package totals

import (
	"io"

	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/models"
	"fjacquet/lendtrack/internal/report"

	"github.com/spf13/cobra"
)

// Options are the totals command filter flags.
type Options struct {
	Type     string
	Status   string
	Contacts []string
	Start    string
	End      string
}

var opts Options

// Cmd represents the totals command
var Cmd = &cobra.Command{
	Use:   "totals [transaction-id...]",
	Short: "Show principal, interest, payments and pending interest per transaction",
	Long: `Show the totals of each transaction: principal, accrued interest,
amount paid, remaining balance, and the months and interest still pending.
Without arguments every transaction is listed. The flags narrow the list
by type, status, contact (id or name, repeatable) and start date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := root.CurrentEnv()
		if err != nil {
			return err
		}
		return Run(env, cmd.OutOrStdout(), args, opts)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "Only lending or borrowing transactions")
	Cmd.Flags().StringVar(&opts.Status, "status", "", "Only transactions in this status: pending, active, completed or overdue")
	Cmd.Flags().StringSliceVarP(&opts.Contacts, "contact", "c", nil, "Only transactions with these contacts, by id or name")
	Cmd.Flags().StringVarP(&opts.Start, "start", "s", "", "Only transactions started on or after this date")
	Cmd.Flags().StringVarP(&opts.End, "end", "e", "", "Only transactions started on or before this date")
}

// Run writes the totals of the given transactions, or all of them, that
// match the filter flags.
func Run(env *root.Env, w io.Writer, ids []string, o Options) error {
	filter, err := models.NewObligationFilter(o.Type, o.Status, o.Contacts, o.Start, o.End)
	if err != nil {
		return err
	}

	totals, err := env.Ledger.Totals(ids, filter, env.Now)
	if err != nil {
		return err
	}
	env.Logger.Debug("Computed totals", logging.F(logging.FieldCount, len(totals)))
	return env.Render(w, report.TotalsRows(totals), totals)
}
