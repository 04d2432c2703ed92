// Package convention handles showing and switching the interest convention
package convention

import (
	"fmt"
	"io"

	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the convention command
var Cmd = &cobra.Command{
	Use:   "convention",
	Short: "Show or switch the interest convention",
	Long: `Interest is computed either as an annual percentage ("percentage") or as
currency units per 100 of principal per month ("per100"). Switching converts
the rate of every transaction (24% per year becomes 2 per 100 per month).
The amounts owed are only approximately preserved: converted rates are
rounded to two decimals, and percentage interest accrues by the day while
per100 interest counts whole months.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the interest convention in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := root.CurrentEnv()
		if err != nil {
			return err
		}
		return Show(env, cmd.OutOrStdout())
	},
}

var setCmd = &cobra.Command{
	Use:       "set <convention>",
	Short:     "Switch the interest convention and convert every rate",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(models.ConventionPercentage), string(models.ConventionPerHundred)},
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := root.CurrentEnv()
		if err != nil {
			return err
		}
		return Set(env, cmd.OutOrStdout(), args[0])
	},
}

func init() {
	Cmd.AddCommand(showCmd, setCmd)
}

// Show prints the convention in effect.
func Show(env *root.Env, w io.Writer) error {
	conv, err := env.Ledger.Convention()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, conv.String())
	return err
}

// Set switches to the named convention and persists the converted rates.
func Set(env *root.Env, w io.Writer, name string) error {
	to, err := models.ParseConvention(name)
	if err != nil {
		return err
	}
	from, err := env.Ledger.SetConvention(to)
	if err != nil {
		return err
	}
	if from == to {
		_, err = fmt.Fprintf(w, "Interest convention is already %s\n", to)
		return err
	}
	_, err = fmt.Fprintf(w, "Switched interest convention from %s to %s\n", from, to)
	return err
}
