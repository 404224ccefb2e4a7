package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rico-chet/languagetool/internal/config"
	"github.com/rico-chet/languagetool/internal/report"
)

// NewRootCmd creates the root command for ruleoverview.
// Run without a subcommand, it generates the rule overview.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ruleoverview",
		Short: "Generate the LanguageTool rule overview",
		Long: `ruleoverview counts the rules of every language in a LanguageTool source tree
and writes the overview table published on the website.

For each language it reports:
- Pattern rules defined in <rules-dir>/<lang>/grammar.xml
- Java rules in <java-rules-dir>/<lang>
- False friend pairs in <rules-dir>/false-friends.xml
- Whether the language identifier detects the language, and its maintainers

Examples:
  # Write the HTML overview for the tree in the current directory
  ruleoverview > rules.html

  # Read another tree and write Markdown to a file
  ruleoverview --root ~/src/languagetool --format markdown -o rules.md

  # Keep the counts for later comparison
  ruleoverview --save
  ruleoverview compare`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.Flags().StringP("root", "r", config.DefaultRootDir,
		"Root directory of the LanguageTool source tree")
	cmd.Flags().String("catalog", "",
		"Language catalog file (default: built-in catalog)")
	cmd.Flags().StringP("format", "F", config.DefaultFormat,
		"Report format: "+strings.Join(report.Formats(), ", "))
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"Also print the report to stdout when --output is set")
	cmd.Flags().String("log-format", config.LogFormatText,
		"Log format on stderr: text or json")
	cmd.Flags().String("product-version", "",
		"Version shown in the report banner (default: catalog version)")
	cmd.Flags().BoolP("save", "s", false,
		"Save the overview to the run history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the run history database")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .ruleoverview in current or home directory)")

	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
