package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/forcetree/internal/config"
)

var (
	cfgFile  string
	dataPath string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "forcetree",
	Short: "Interactive force-directed tree diagrams",
	Long: `forcetree renders a hierarchical JSON dataset as a force-directed
node-link diagram. Branches expand and collapse on click, collapsed branch
roots drill down into their own view, and node size and color follow the
mean of the leaf values beneath them.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset path (overrides data_path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
