// Package main is the entry point for the phpfmt CLI.
package main

import (
	"os"

	"github.com/yaklabco/phpfmt/internal/cli"
	"github.com/yaklabco/phpfmt/internal/logging"
)

// Set at build time through -ldflags (see stavefile.go).
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Exit-code signals need no log line.
		if !cli.IsSilent(err) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		code := cli.ExitCode(err)
		if code == cli.ExitSuccess {
			code = cli.ExitInternalError
		}
		return code
	}

	return 0
}
