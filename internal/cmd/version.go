package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version will be set by build flags from cmd/pepcheck/main.go
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pepcheck version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version string (called from main.go)
func SetVersion(v string) {
	version = v
}
