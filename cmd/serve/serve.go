// Package serve handles the HTTP API command
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/internal/api"

	"github.com/spf13/cobra"
)

var port int

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger as a read-only JSON API",
	Long: `Start an HTTP server exposing transaction totals, charts, contact
performance and the dashboard summary as JSON. The server stops gracefully
on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := root.CurrentEnv()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return Run(ctx, env)
	},
}

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides server.port)")
}

// NewServer builds the API server from the environment. Requests without
// an explicit as_of use the --as-of instant when one was given, the wall
// clock otherwise.
func NewServer(env *root.Env) *api.Server {
	cfg := env.Config
	if port > 0 {
		cfg.Server.Port = port
	}

	clock := time.Now
	if root.SharedFlags.AsOf != "" {
		fixed := env.Now
		clock = func() time.Time { return fixed }
	}

	h := api.NewHandler(env.Ledger, env.Logger, clock)
	return api.NewServer(cfg.Address(), h, cfg.ReadTimeout(), cfg.WriteTimeout(), env.Logger)
}

// Run serves until ctx is cancelled.
func Run(ctx context.Context, env *root.Env) error {
	return NewServer(env).Run(ctx)
}
