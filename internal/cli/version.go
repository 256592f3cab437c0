package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pulse version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pulse %s\n", version)
	},
}
