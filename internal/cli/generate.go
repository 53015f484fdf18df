package cli

import (
	"os"

	"github.com/spf13/cobra"

	"compdb/internal/compdb"
	"compdb/internal/config"
	"compdb/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate [log-file]",
	Short: "Generate compile_commands.json from an invocation log",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logFile := os.Getenv(config.EnvLogFile)
	if len(args) > 0 {
		logFile = args[0]
	}
	if logFile == "" {
		return config.ErrMissingLogPath
	}
	return generate.Run(logFile, compdb.DefaultPath)
}
