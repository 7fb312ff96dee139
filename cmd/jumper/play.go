package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
	"github.com/vovakirdan/tui-jumper/internal/registry"
)

var (
	flagMute    bool
	flagClassic bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play directly",
	Long: `Start a run immediately, skipping the menu.

The game defaults to "jumper". Use "jumper_classic" (or --classic) for the
ruleset with normal platforms only.

Controls:
  Left/A/H, Right/D/L - Steer (hold to keep moving)
  P / Esc             - Pause
  R / Enter           - Restart after game over
  Q / Ctrl+C          - Quit

Examples:
  jumper play
  jumper play --classic --seed 7
  jumper play --mute --log-file jumper.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound and music")
	playCmd.Flags().BoolVar(&flagClassic, "classic", false, "Play the classic ruleset")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "jumper"
	if len(args) == 1 {
		gameID = args[0]
	}
	if flagClassic {
		gameID = "jumper_classic"
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'jumper list' to see available games)", gameID)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("jumper")
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	sound := openSound(flagMute, logger)
	if sound != nil {
		defer sound.Cleanup()
	}

	ledger := openLedger(logger)
	if ledger != nil {
		defer ledger.Close()
	}

	rc := runtimeConfig()
	if rc.ScreenW < jumper.MinScreenW || rc.ScreenH < jumper.MinScreenH {
		logger.Warn("terminal smaller than the playable minimum", "width", rc.ScreenW, "height", rc.ScreenH)
	}
	logger.Info("starting", "game", gameID, "seed", rc.Seed, "fps", rc.TickRate)

	if err := tui.Run(game, rc, platformOptions(cfg, logger, ledger, sound)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	printSessionSummary(ledger, gameID)
	return nil
}
