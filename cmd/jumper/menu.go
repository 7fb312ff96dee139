package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
	"github.com/vovakirdan/tui-jumper/internal/registry"
)

var flagMenuMute bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and browse session scores",
	Long: `Open the mode picker. Tab shows the scores recorded since the
program started; they are kept in memory and vanish on exit.

Navigation:
  Up/Down or W/S - Move selection
  Enter          - Play selected mode
  Tab            - Session scores
  Esc            - Back (from a paused or finished run)
  Q / Ctrl+C     - Quit`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMenuMute, "mute", false, "Disable sound and music")
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("jumper")
	if err != nil {
		return err
	}
	defer closeLog()

	sound := openSound(flagMenuMute, logger)
	if sound != nil {
		defer sound.Cleanup()
	}

	ledger := openLedger(logger)
	if ledger != nil {
		defer ledger.Close()
	}

	if err := tui.RunSession(runtimeConfig(), platformOptions(cfg, logger, ledger, sound)); err != nil {
		return fmt.Errorf("run menu: %w", err)
	}

	ids := make([]string, 0, 2)
	for _, g := range registry.List() {
		ids = append(ids, g.ID)
	}
	printSessionSummary(ledger, ids...)
	return nil
}
