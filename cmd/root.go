package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCmdRoot creates a new root command
func NewCmdRoot(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skylark",
		Short: "Skylark, a browser UI test automation framework",
		Long: "Skylark drives browser UI tests against named environments.\n" +
			"Configuration is merged from CLI flags, environment variables, the\n" +
			"environment record and compiled-in defaults, in that order.",
		Version: version,
	}
	return rootCmd
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdResolve())
	cmd.AddCommand(NewCmdEnvs())
	cmd.AddCommand(NewCmdGenDocs(cmd))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
