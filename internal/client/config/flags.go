package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/tripcal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only -a, -d, -l and -r are looked at; everything else in args is filtered
// out with flagx.FilterArgs so other components can own their flags.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-l", "-r"})

	fs := flag.NewFlagSet("tripcal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.Language, "l", cfg.Language, "language for emails")
	fs.StringVar(&cfg.RefreshSchedule, "r", cfg.RefreshSchedule, "event refresh schedule (cron)")

	return fs.Parse(args)
}
