// Package contacts handles the contact listing and performance commands
package contacts

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/internal/dashboard"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/performance"
	"fjacquet/lendtrack/internal/report"

	"github.com/spf13/cobra"
)

// Options are the contacts command flags.
type Options struct {
	Performance bool
	Ranking     string
}

// performanceReport is the JSON body of the performance view.
type performanceReport struct {
	Contacts []performance.Performance `json:"contacts"`
	dashboard.Ranking
}

var opts Options

// Cmd represents the contacts command
var Cmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contacts and how punctually they repay",
	Long: `List the contacts that can take part in new transactions.
With --performance every contact is scored on the payments made against
what was lent to them; --ranking shows only the most timely or the most
delayed payers.`,
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
	Cmd.Flags().BoolVarP(&opts.Performance, "performance", "p", false, "Score every contact's repayment punctuality")
	Cmd.Flags().StringVarP(&opts.Ranking, "ranking", "r", "", "Show a ranking instead: timely or delayed")
}

// Run writes the contact view selected by o.
func Run(env *root.Env, w io.Writer, o Options) error {
	if o.Ranking != "" {
		return runRanking(env, w, o.Ranking)
	}
	if o.Performance {
		scores, ranking, err := env.Ledger.Performance()
		if err != nil {
			return err
		}
		env.Logger.Debug("Scored contacts", logging.F(logging.FieldCount, len(scores)))
		return env.Render(w, report.PerformanceRows(scores), performanceReport{Contacts: scores, Ranking: ranking})
	}

	contacts, err := env.Ledger.EligibleContacts()
	if err != nil {
		return err
	}
	return env.Render(w, report.ContactRows(contacts), contacts)
}

func runRanking(env *root.Env, w io.Writer, which string) error {
	_, ranking, err := env.Ledger.Performance()
	if err != nil {
		return err
	}

	var ranked []performance.Performance
	switch strings.ToLower(which) {
	case "timely":
		ranked = ranking.Timely
	case "delayed":
		ranked = ranking.Delayed
	default:
		return fmt.Errorf("unknown ranking %q (must be 'timely' or 'delayed')", which)
	}
	return env.Render(w, report.PerformanceRows(ranked), ranked)
}
