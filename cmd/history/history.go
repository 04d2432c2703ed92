// Package history handles the activity history command
package history

import (
	"io"

	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/models"
	"fjacquet/lendtrack/internal/report"

	"github.com/spf13/cobra"
)

// Options are the history command filter flags.
type Options struct {
	Contacts []string
	Start    string
	End      string
}

var opts Options

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List payments and comments across all transactions, newest first",
	Long: `List every activity recorded against any transaction, newest first.
Narrow the list to some contacts (id or name, repeatable) or to activities
created within a date range. A bare end date includes that whole day.`,
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
	Cmd.Flags().StringSliceVarP(&opts.Contacts, "contact", "c", nil, "Only activities with these contacts, by id or name")
	Cmd.Flags().StringVarP(&opts.Start, "start", "s", "", "Only activities on or after this date")
	Cmd.Flags().StringVarP(&opts.End, "end", "e", "", "Only activities on or before this date")
}

// Run writes the activities matching o.
func Run(env *root.Env, w io.Writer, o Options) error {
	filter, err := models.NewActivityFilter(o.Contacts, o.Start, o.End)
	if err != nil {
		return err
	}

	feed, err := env.Ledger.History(filter)
	if err != nil {
		return err
	}
	env.Logger.Debug("Listed history", logging.F(logging.FieldCount, len(feed)))
	return env.Render(w, report.ActivityRows(feed), feed)
}
