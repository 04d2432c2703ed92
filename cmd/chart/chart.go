// Package chart handles the time-series chart command
package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/report"
	"fjacquet/lendtrack/internal/timeseries"

	"github.com/spf13/cobra"
)

// Options are the chart command flags.
type Options struct {
	Granularity string
	Start       string
	End         string
	Preset      string
}

var opts Options

// Cmd represents the chart command
var Cmd = &cobra.Command{
	Use:   "chart",
	Short: "Aggregate principal and payments into time buckets",
	Long: `Aggregate lent and borrowed principal and the payments against them into
day, week, month or year buckets, with the running net balance.
The range is given either with --start and --end or with --preset.`,
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
	Cmd.Flags().StringVarP(&opts.Granularity, "granularity", "g", string(timeseries.Month), "Bucket size: "+granularityNames())
	Cmd.Flags().StringVarP(&opts.Start, "start", "s", "", "First day of the range")
	Cmd.Flags().StringVarP(&opts.End, "end", "e", "", "Last day of the range (inclusive)")
	Cmd.Flags().StringVarP(&opts.Preset, "preset", "p", "", "Named range: "+presetNames())
}

// Run aggregates the ledger over the range described by o.
func Run(env *root.Env, w io.Writer, o Options) error {
	frame, err := Frame(env, o)
	if err != nil {
		return err
	}

	buckets, err := env.Ledger.Chart(frame)
	if err != nil {
		return err
	}
	env.Logger.Debug("Charted ledger",
		logging.F(logging.FieldGranularity, string(frame.Granularity)),
		logging.F(logging.FieldCount, len(buckets)))
	return env.Render(w, report.BucketRows(buckets, frame.Granularity), buckets)
}

// Frame resolves the flags to an aggregation frame.
func Frame(env *root.Env, o Options) (timeseries.Frame, error) {
	g, err := timeseries.ParseGranularity(o.Granularity)
	if err != nil {
		return timeseries.Frame{}, err
	}

	if o.Preset != "" {
		if o.Start != "" || o.End != "" {
			return timeseries.Frame{}, fmt.Errorf("--preset cannot be combined with --start or --end")
		}
		p, err := timeseries.ParsePreset(o.Preset)
		if err != nil {
			return timeseries.Frame{}, err
		}
		return env.Ledger.ResolvePreset(p, g, env.Now)
	}

	if o.Start == "" || o.End == "" {
		return timeseries.Frame{}, fmt.Errorf("both --start and --end are required unless --preset is given")
	}
	start, err := dateutils.ParseDate(o.Start, time.UTC)
	if err != nil {
		return timeseries.Frame{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := dateutils.ParseRangeEnd(o.End, time.UTC)
	if err != nil {
		return timeseries.Frame{}, fmt.Errorf("invalid --end: %w", err)
	}
	if start.After(end) {
		return timeseries.Frame{}, fmt.Errorf("--start %s is after --end %s", o.Start, o.End)
	}
	return timeseries.Frame{Start: start, End: end, Granularity: g}, nil
}

func granularityNames() string {
	names := make([]string, 0, len(timeseries.Granularities))
	for _, g := range timeseries.Granularities {
		names = append(names, string(g))
	}
	return strings.Join(names, ", ")
}

func presetNames() string {
	names := make([]string, 0, len(timeseries.Presets))
	for _, p := range timeseries.Presets {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
