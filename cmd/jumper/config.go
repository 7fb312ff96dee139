package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Load the configuration (built-in defaults, ~/.jumper/configs/jumper.yaml,
or --config), validate it, and print the result as YAML. Redirect the
output to start a custom file.

Examples:
  jumper config > my.yaml
  jumper config --defaults
  jumper config --config my.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults, ignoring any file")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		return err
	}

	cfg, err := config.LoadJumper(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	fmt.Printf("# Highest reachable platform gap: %.2f cells\n", cfg.MaxReachableGap())
	_, err = os.Stdout.Write(out)
	return err
}
