package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/forcetree/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize forcetree configuration with an interactive wizard",
	Long: `Runs an interactive wizard and writes the answers to the config file (.forcetree.yml unless --config is given).
If the configured dataset does not exist yet, a small starter tree is written there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		wrote, err := writeStarterDataset(cfg.DataPath)
		if err != nil {
			return fmt.Errorf("writing starter dataset: %w", err)
		}
		if wrote {
			fmt.Fprintf(os.Stderr, "Wrote starter dataset to %s\n", cfg.DataPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
