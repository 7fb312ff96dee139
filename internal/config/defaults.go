package config

import (
	_ "embed"
)

//go:embed defaults/jumper.yaml
var defaultJumperYAML []byte

// DefaultJumperConfig returns the default jumper configuration.
// It mirrors defaults/jumper.yaml and is used when the embedded YAML
// cannot be parsed.
func DefaultJumperConfig() JumperConfig {
	return JumperConfig{
		Physics: JumperPhysics{
			Gravity:          0.04,
			JumpImpulse:      1.0,
			SpringImpulse:    1.6,
			TerminalVelocity: 1.2,
			MoveSpeed:        0.6,
		},
		Platforms: JumperPlatforms{
			Width:        9,
			Height:       1,
			MinGap:       4,
			MaxGap:       9,
			SafetyMargin: 2,
			Lookahead:    3,
			MoveSpeed:    0.25,
			CoinChance:   0.15,
			Weights: KindWeights{
				Normal:    70,
				Moving:    12,
				Breakable: 10,
				Spring:    8,
			},
		},
		Player: JumperPlayer{
			Width:  3,
			Height: 2,
			StartY: 0.75,
		},
		Camera: JumperCamera{
			FollowRatio: 0.4,
		},
		Score: JumperScore{
			UnitsPerMeter: 2,
		},
		Palette: JumperPalette{
			Player:          []string{"bright_green", "bright_cyan", "bright_magenta", "bright_yellow", "orange"},
			ColorEveryCoins: 5,
			Normal:          "green",
			Moving:          "cyan",
			Breakable:       "orange",
			Spring:          "bright_magenta",
			Coin:            "bright_yellow",
			HUD:             "gray",
		},
		Audio: JumperAudio{
			MusicVolume:   0.3,
			EffectsVolume: 0.6,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultJumperYAML
}
