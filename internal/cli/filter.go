package cli

import (
	"github.com/spf13/cobra"

	"compdb/internal/filter"
	"compdb/internal/rules"
)

var (
	excludePatterns []string
	includePatterns []string
	rulesFile       string
)

var filterCmd = &cobra.Command{
	Use:   "filter [database]",
	Short: "Remove database entries matching exclude patterns",
	Long: `Filter removes entries whose file matches any exclude pattern.
An entry matching an include pattern is kept even when excluded. The
previous database content is copied to a fresh .bak[.N] file first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringArrayVarP(&excludePatterns, "exclude", "e", nil, "exclude files matching this regex (repeatable)")
	filterCmd.Flags().StringArrayVarP(&includePatterns, "include", "i", nil, "keep files matching this regex even if excluded (repeatable)")
	filterCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML file with exclude/include pattern lists")
}

func runFilter(cmd *cobra.Command, args []string) error {
	path := "./compile_commands.json"
	if len(args) > 0 {
		path = args[0]
	}
	excludes := excludePatterns
	includes := includePatterns
	if rulesFile != "" {
		f, err := rules.Load(rulesFile)
		if err != nil {
			return err
		}
		excludes = append(f.Exclude, excludes...)
		includes = append(f.Include, includes...)
	}
	return filter.Run(path, excludes, includes)
}
