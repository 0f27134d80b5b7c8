package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// overridden at release time via -ldflags "-X .../internal/cli.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the anuvad version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("anuvad %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
