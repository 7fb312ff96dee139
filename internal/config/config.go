// Package config provides YAML-based game configuration loading and
// validation for the jumper.
package config

// JumperConfig contains all configuration for the jumper game.
// Values are static for the lifetime of a run; nothing mutates them at runtime.
type JumperConfig struct {
	Physics   JumperPhysics   `yaml:"physics"`
	Platforms JumperPlatforms `yaml:"platforms"`
	Player    JumperPlayer    `yaml:"player"`
	Camera    JumperCamera    `yaml:"camera"`
	Score     JumperScore     `yaml:"score"`
	Palette   JumperPalette   `yaml:"palette"`
	Audio     JumperAudio     `yaml:"audio"`
}

// JumperPhysics defines physics parameters, all per tick in cell units.
type JumperPhysics struct {
	Gravity          float64 `yaml:"gravity"`
	JumpImpulse      float64 `yaml:"jump_impulse"`      // Upward speed after a normal landing
	SpringImpulse    float64 `yaml:"spring_impulse"`    // Upward speed after a spring landing
	TerminalVelocity float64 `yaml:"terminal_velocity"` // Max downward speed
	MoveSpeed        float64 `yaml:"move_speed"`        // Horizontal speed while steering
}

// JumperPlatforms defines platform generation parameters.
type JumperPlatforms struct {
	Width        float64     `yaml:"width"`
	Height       float64     `yaml:"height"`
	MinGap       float64     `yaml:"min_gap"`
	MaxGap       float64     `yaml:"max_gap"`
	SafetyMargin float64     `yaml:"safety_margin"` // Headroom kept below the jump apex
	Lookahead    int         `yaml:"lookahead"`     // Platforms kept above the visible top
	MoveSpeed    float64     `yaml:"move_speed"`    // Horizontal speed of moving platforms
	CoinChance   float64     `yaml:"coin_chance"`   // Probability a platform carries a coin
	Weights      KindWeights `yaml:"weights"`
}

// KindWeights is the relative spawn weight of each platform kind.
// Weights are a tuning policy; only their ratios matter.
type KindWeights struct {
	Normal    int `yaml:"normal"`
	Moving    int `yaml:"moving"`
	Breakable int `yaml:"breakable"`
	Spring    int `yaml:"spring"`
}

// Total returns the sum of all weights.
func (w KindWeights) Total() int {
	return w.Normal + w.Moving + w.Breakable + w.Spring
}

// JumperPlayer defines player parameters.
type JumperPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	StartY float64 `yaml:"start_y"` // Start position as a fraction of screen height
}

// JumperCamera defines camera parameters.
type JumperCamera struct {
	// FollowRatio is the screen line (fraction of height from the top) the
	// player is never allowed to rise above; the camera scrolls instead.
	FollowRatio float64 `yaml:"follow_ratio"`
}

// JumperScore defines scoring parameters.
type JumperScore struct {
	UnitsPerMeter float64 `yaml:"units_per_meter"`
}

// JumperPalette defines colors by name (see core.ParseColor).
type JumperPalette struct {
	Player          []string `yaml:"player"`            // Cycled as coins are collected
	ColorEveryCoins int      `yaml:"color_every_coins"` // Coins per palette step
	Normal          string   `yaml:"normal"`
	Moving          string   `yaml:"moving"`
	Breakable       string   `yaml:"breakable"`
	Spring          string   `yaml:"spring"`
	Coin            string   `yaml:"coin"`
	HUD             string   `yaml:"hud"`
}

// JumperAudio defines volume levels in [0, 1].
type JumperAudio struct {
	MusicVolume   float64 `yaml:"music_volume"`
	EffectsVolume float64 `yaml:"effects_volume"`
}
