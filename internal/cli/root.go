// Package cli implements the compdb curation commands.
package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compdb",
	Short: "Capture and curate compile_commands.json",
	Long: `Compdb turns invocation logs captured by the compdb-cc/compdb-cxx
compiler shims into compile_commands.json, and filters an existing
database by path patterns.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.StampMilli,
	})

	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(generateCmd)
}
