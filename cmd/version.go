package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the forcetree build version",
	Long: `Prints the version stamped into the binary at build time, for example
go build -ldflags "-X github.com/ziadkadry99/forcetree/cmd.Version=v0.3.0".
Unstamped builds report "dev".`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "forcetree %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
