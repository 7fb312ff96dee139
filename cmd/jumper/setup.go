package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jumper/internal/audio"
	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

// loadConfig loads and validates the configuration, then points the game
// factories at the same file. Any error is fatal for the caller.
func loadConfig() (config.JumperConfig, error) {
	cfg, err := config.LoadJumper(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	jumper.SetConfigPath(flagConfig)
	return cfg, nil
}

// newLogger returns a logger writing to --log-file, or one that discards
// everything: the alt screen owns the terminal while a game runs.
func newLogger(prefix string) (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}

// openSound starts the speaker. Failure means silent play, not an error.
func openSound(mute bool, logger *log.Logger) *audio.SoundManager {
	if mute {
		return nil
	}
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio unavailable, playing silently: %v\n", err)
		logger.Warn("audio unavailable", "error", err)
		return nil
	}
	return sm
}

// openLedger opens the in-memory run ledger. Failure only costs the scoreboard.
func openLedger(logger *log.Logger) *storage.Ledger {
	ledger, err := storage.OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run ledger: %v\n", err)
		logger.Warn("run ledger unavailable", "error", err)
		return nil
	}
	return ledger
}

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// platformOptions gathers the services shared by play and menu.
func platformOptions(cfg config.JumperConfig, logger *log.Logger, ledger *storage.Ledger, sound *audio.SoundManager) tui.Options {
	opts := tui.Options{
		Ledger:      ledger,
		Volumes:     cfg.Audio,
		HoldTimeout: time.Duration(flagHoldMS) * time.Millisecond,
		Player:      "local",
		Logger:      logger,
	}
	// A nil *SoundManager inside the interface would not compare equal to nil
	if sound != nil {
		opts.Sound = sound
	}
	return opts
}

// printSessionSummary reports what the ledger saw before it is dropped.
func printSessionSummary(ledger *storage.Ledger, gameIDs ...string) {
	if ledger == nil {
		return
	}
	for _, id := range gameIDs {
		stats, err := ledger.Stats(id)
		if err != nil || stats.Runs == 0 {
			continue
		}
		fmt.Printf("%s: %d runs, best %d m, %d coins\n", id, stats.Runs, stats.Best, stats.TotalCoins)
	}
}
