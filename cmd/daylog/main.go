// Package main provides the entry point for the daylog CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/daylog/cmd/daylog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
