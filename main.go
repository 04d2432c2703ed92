package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/lendtrack/cmd/chart"
	"fjacquet/lendtrack/cmd/contacts"
	"fjacquet/lendtrack/cmd/convention"
	"fjacquet/lendtrack/cmd/history"
	"fjacquet/lendtrack/cmd/pending"
	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/cmd/serve"
	"fjacquet/lendtrack/cmd/summary"
	"fjacquet/lendtrack/cmd/totals"
	"fjacquet/lendtrack/internal/config"
	"fjacquet/lendtrack/internal/logging"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	_, _ = config.LoadEnv()

	// 2. Log with the requested level until the configuration is read
	root.Log = logging.NewLogrusAdapter(bootstrapLogLevel(), "text", logging.WithOutput(os.Stderr))

	// 3. Now that logging is configured, initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(totals.Cmd)
	root.Cmd.AddCommand(pending.Cmd)
	root.Cmd.AddCommand(chart.Cmd)
	root.Cmd.AddCommand(contacts.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(history.Cmd)
	root.Cmd.AddCommand(convention.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// bootstrapLogLevel reads LENDTRACK_LOG_LEVEL, falling back to info when it
// is unset or unparsable.
func bootstrapLogLevel() string {
	level := strings.ToLower(config.GetEnv("LENDTRACK_LOG_LEVEL", "info"))
	if _, err := logrus.ParseLevel(level); err != nil {
		return "info"
	}
	return level
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
