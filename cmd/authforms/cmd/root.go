package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the authforms command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "authforms",
		Short: "Login and registration forms with live validation",
		Long: `authforms serves the login and registration forms and exposes the
validation rules on the command line.

Available commands:
  serve     Run the HTTP server
  check     Validate credentials the way the forms do
  topics    List the submission event topics
  version   Print the version

Use "authforms [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newCheckCmd(), newTopicsCmd(), newVersionCmd())
	return root
}

// Execute executes the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
