package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// LoadJumper loads and validates the jumper configuration.
// Search order: customPath -> ~/.jumper/configs/jumper.yaml -> ./configs/jumper.yaml -> embedded default
func LoadJumper(customPath string) (JumperConfig, error) {
	cfg, err := readJumper(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readJumper(customPath string) (JumperConfig, error) {
	// Start from defaults so partial files only override what they set
	cfg := DefaultJumperConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("jumper.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultJumperConfig()
		}
	}

	if data, err := os.ReadFile("configs/jumper.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultJumperConfig()
	}

	if err := yaml.Unmarshal(defaultJumperYAML, &cfg); err != nil {
		return DefaultJumperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jumper", "configs", filename)
}

// Marshal renders the configuration back to YAML.
func Marshal(cfg JumperConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot marshal: %w", err)
	}
	return data, nil
}

// Validate checks that the configuration is playable. In particular every
// gap the spawner may produce must be reachable with a normal jump.
func (c JumperConfig) Validate() error {
	p := c.Physics
	switch {
	case p.Gravity <= 0:
		return fmt.Errorf("config: physics.gravity must be positive, got %v", p.Gravity)
	case p.JumpImpulse <= 0:
		return fmt.Errorf("config: physics.jump_impulse must be positive, got %v", p.JumpImpulse)
	case p.SpringImpulse < p.JumpImpulse:
		return fmt.Errorf("config: physics.spring_impulse (%v) must be >= jump_impulse (%v)", p.SpringImpulse, p.JumpImpulse)
	case p.TerminalVelocity <= 0:
		return fmt.Errorf("config: physics.terminal_velocity must be positive, got %v", p.TerminalVelocity)
	case p.MoveSpeed < 0:
		return fmt.Errorf("config: physics.move_speed must not be negative, got %v", p.MoveSpeed)
	}

	pl := c.Platforms
	switch {
	case pl.Width <= 0 || pl.Height <= 0:
		return fmt.Errorf("config: platforms.width and height must be positive")
	case pl.MinGap <= 0:
		return fmt.Errorf("config: platforms.min_gap must be positive, got %v", pl.MinGap)
	case pl.MaxGap < pl.MinGap:
		return fmt.Errorf("config: platforms.max_gap (%v) must be >= min_gap (%v)", pl.MaxGap, pl.MinGap)
	case pl.SafetyMargin < 0:
		return fmt.Errorf("config: platforms.safety_margin must not be negative, got %v", pl.SafetyMargin)
	case pl.Lookahead < 1:
		return fmt.Errorf("config: platforms.lookahead must be at least 1, got %d", pl.Lookahead)
	case pl.CoinChance < 0 || pl.CoinChance > 1:
		return fmt.Errorf("config: platforms.coin_chance must be in [0, 1], got %v", pl.CoinChance)
	case pl.MoveSpeed < 0:
		return fmt.Errorf("config: platforms.move_speed must not be negative, got %v", pl.MoveSpeed)
	}

	if reach := c.MaxReachableGap(); pl.MaxGap > reach {
		return fmt.Errorf("config: platforms.max_gap %v is unreachable (jump apex %.2f minus safety margin %.2f allows %.2f)",
			pl.MaxGap, ContinuousApex(p.JumpImpulse, p.Gravity), pl.SafetyMargin, reach)
	}

	w := pl.Weights
	if w.Normal < 0 || w.Moving < 0 || w.Breakable < 0 || w.Spring < 0 {
		return fmt.Errorf("config: platforms.weights must not be negative")
	}
	if w.Total() == 0 {
		return fmt.Errorf("config: platforms.weights must not all be zero")
	}

	pr := c.Player
	switch {
	case pr.Width <= 0 || pr.Height <= 0:
		return fmt.Errorf("config: player.width and height must be positive")
	case pr.StartY <= 0 || pr.StartY >= 1:
		return fmt.Errorf("config: player.start_y must be in (0, 1), got %v", pr.StartY)
	}

	if c.Camera.FollowRatio <= 0 || c.Camera.FollowRatio >= 1 {
		return fmt.Errorf("config: camera.follow_ratio must be in (0, 1), got %v", c.Camera.FollowRatio)
	}
	if c.Score.UnitsPerMeter <= 0 {
		return fmt.Errorf("config: score.units_per_meter must be positive, got %v", c.Score.UnitsPerMeter)
	}

	if _, err := c.Palette.Resolve(); err != nil {
		return err
	}

	a := c.Audio
	if a.MusicVolume < 0 || a.MusicVolume > 1 || a.EffectsVolume < 0 || a.EffectsVolume > 1 {
		return fmt.Errorf("config: audio volumes must be in [0, 1]")
	}

	return nil
}

// Colors is a resolved JumperPalette.
type Colors struct {
	Player          []core.Color
	ColorEveryCoins int
	Normal          core.Color
	Moving          core.Color
	Breakable       core.Color
	Spring          core.Color
	Coin            core.Color
	HUD             core.Color
}

// Resolve parses every palette name into a core.Color.
func (p JumperPalette) Resolve() (Colors, error) {
	var out Colors
	if len(p.Player) == 0 {
		return out, fmt.Errorf("config: palette.player must list at least one color")
	}
	if p.ColorEveryCoins < 0 {
		return out, fmt.Errorf("config: palette.color_every_coins must not be negative")
	}

	out.ColorEveryCoins = p.ColorEveryCoins
	out.Player = make([]core.Color, 0, len(p.Player))
	for _, name := range p.Player {
		c, err := core.ParseColor(name)
		if err != nil {
			return out, fmt.Errorf("config: palette.player: %w", err)
		}
		out.Player = append(out.Player, c)
	}

	fields := []struct {
		name string
		src  string
		dst  *core.Color
	}{
		{"normal", p.Normal, &out.Normal},
		{"moving", p.Moving, &out.Moving},
		{"breakable", p.Breakable, &out.Breakable},
		{"spring", p.Spring, &out.Spring},
		{"coin", p.Coin, &out.Coin},
		{"hud", p.HUD, &out.HUD},
	}
	for _, f := range fields {
		if f.src == "" {
			continue // keep ColorDefault
		}
		c, err := core.ParseColor(f.src)
		if err != nil {
			return out, fmt.Errorf("config: palette.%s: %w", f.name, err)
		}
		*f.dst = c
	}

	return out, nil
}
