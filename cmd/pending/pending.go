// Package pending handles the long-pending interest command
package pending

import (
	"io"

	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the pending command
var Cmd = &cobra.Command{
	Use:   "pending",
	Short: "List open transactions whose interest has been pending the longest",
	Long: `List open transactions with at least dashboard.pending_min_months months of
unpaid interest, longest pending first, limited to dashboard.pending_limit rows.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := root.CurrentEnv()
		if err != nil {
			return err
		}
		return Run(env, cmd.OutOrStdout())
	},
}

// Run writes the pending-interest list.
func Run(env *root.Env, w io.Writer) error {
	items, err := env.Ledger.Pending(env.Now)
	if err != nil {
		return err
	}
	env.Logger.Debug("Listed pending interest", logging.F(logging.FieldCount, len(items)))
	return env.Render(w, report.PendingRows(items), items)
}
