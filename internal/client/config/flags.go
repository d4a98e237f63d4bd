package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Subcommands and their arguments are left alone by flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the to-do server")
	fs.StringVar(&cfg.DBFile, "f", cfg.DBFile, "local database file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
