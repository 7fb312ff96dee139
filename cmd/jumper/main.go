// jumper is a Doodle-Jump-style vertical platformer for the terminal.
//
// Usage:
//
//	jumper play [game]       - Play directly (jumper or jumper_classic)
//	jumper menu              - Pick a mode and browse session scores
//	jumper serve             - Start SSH server for remote play
//	jumper sim               - Run the autopilot headless over many seeds
//	jumper config            - Print the effective configuration
//	jumper list              - List available modes
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--config <path>   - Use a custom jumper.yaml
//	--hold-ms <ms>    - How long a key counts as held before auto-repeat starts
//	--log-file <path> - Write logs here (default: discarded)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagConfig  string
	flagHoldMS  int
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumper",
	Short: "Jumper - bounce your way up in the terminal",
	Long: `Jumper is an endless vertical platformer for the terminal.
Bounce from ledge to ledge, steer left and right, and wrap around the
screen edges. The camera only moves up: fall below it and the run ends.

Available commands:
  play     - Play directly
  menu     - Pick a mode and see this session's scores
  serve    - Start SSH server for remote play
  sim      - Run the autopilot headless
  config   - Print the effective configuration
  list     - Show available modes

Examples:
  jumper play
  jumper play jumper_classic --seed 42
  jumper menu --hold-ms 550
  jumper serve --ssh :2222
  jumper sim --runs 50`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom jumper.yaml")
	rootCmd.PersistentFlags().IntVar(&flagHoldMS, "hold-ms", 700, "Milliseconds a key counts as held before its first repeat")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
