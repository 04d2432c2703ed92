// Package root contains the root command for the application
package root

import (
	"fmt"
	"io"
	"time"

	"fjacquet/lendtrack/internal/config"
	"fjacquet/lendtrack/internal/container"
	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/report"
	"fjacquet/lendtrack/internal/service"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	DataFile string
	AsOf     string
	Format   string
}

// Env is what a subcommand needs to run: the ledger, a renderer and the
// instant every computation of the invocation is made against.
type Env struct {
	Config    *config.Config
	Ledger    *service.LedgerService
	Generator *report.Generator
	Logger    logging.Logger
	Format    report.Format
	Now       time.Time
}

// Render writes rows in the selected format. JSON output uses payload.
func (e *Env) Render(w io.Writer, rows, payload interface{}) error {
	return e.Generator.Write(w, e.Format, rows, payload)
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "lendtrack",
		Short: "A CLI tool to track money lent to and borrowed from contacts.",
		Long: `lendtrack keeps a ledger of lending and borrowing obligations.
It computes accrued and pending interest, charts the balance over time,
and scores how punctually each contact repays.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to lendtrack!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(time.Now())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if err := app.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	app     *container.Container
	current *Env
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataFile, "data", "d", "", "Snapshot file (overrides data.file)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.AsOf, "as-of", "", "Compute as of this date (YYYY-MM-DD or RFC3339, default now)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", string(report.FormatTable), "Output format: table, csv, json or markdown")
}

func setup(wallClock time.Time) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	if SharedFlags.DataFile != "" {
		cfg.Data.File = SharedFlags.DataFile
	}

	format, err := report.ParseFormat(SharedFlags.Format)
	if err != nil {
		return err
	}
	now, err := ResolveNow(SharedFlags.AsOf, wallClock)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	app = c
	Log = c.GetLogger()

	SetEnv(NewEnv(c, format, now))
	return nil
}

// NewEnv builds a command environment from a wired container.
func NewEnv(c *container.Container, format report.Format, now time.Time) *Env {
	return &Env{
		Config:    c.GetConfig(),
		Ledger:    c.GetLedger(),
		Generator: c.GetReportGenerator(),
		Logger:    c.GetLogger(),
		Format:    format,
		Now:       now,
	}
}

// ResolveNow parses the --as-of value. An empty value means wallClock.
func ResolveNow(asOf string, wallClock time.Time) (time.Time, error) {
	if asOf == "" {
		return wallClock, nil
	}
	t, err := dateutils.ParseDate(asOf, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of: %w", err)
	}
	return t, nil
}

// SetEnv replaces the environment subcommands run against.
func SetEnv(e *Env) {
	current = e
}

// CurrentEnv returns the environment built before the running command.
func CurrentEnv() (*Env, error) {
	if current == nil {
		return nil, fmt.Errorf("command environment not initialized")
	}
	return current, nil
}
