// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"image/color"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	HexSize      = 19.0
	MaxDeltaTime = 0.06

	DefaultGridRadius  = 8
	DefaultMaxAttempts = 10
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	EnvironmentColor = color.RGBA{70, 100, 120, 220}
	HubColor         = color.RGBA{50, 205, 50, 255}
	PathwayColor     = color.RGBA{194, 178, 128, 255}
	DefenderColor    = color.RGBA{70, 130, 180, 220}
	SpawnColor       = color.RGBA{220, 60, 60, 220}
	JunctionColor    = color.RGBA{255, 215, 0, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	TextDarkColor    = color.RGBA{20, 20, 30, 255}
	StrokeColor      = color.RGBA{20, 20, 30, 255}
	StrokeWidth      = 1.5

	// Цвета интерфейса просмотрщика
	IdleStateColor      = color.RGBA{120, 120, 130, 255}
	CountdownStateColor = color.RGBA{70, 130, 180, 255}
	SpawningStateColor  = color.RGBA{220, 60, 60, 255}
	AwaitingStateColor  = color.RGBA{255, 165, 0, 255}
	UIColorBlue         = color.RGBA{100, 149, 237, 255}
	PanelColor          = color.RGBA{10, 10, 20, 200}
	EnemyColor          = color.RGBA{230, 50, 80, 255}
)

// Раскладка интерфейса просмотрщика
const (
	IndicatorOffsetX = 40
	IndicatorRadius  = 14
	ButtonSize       = 12
	ClickCooldown    = 200 // мс
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// LaneSettings tunes how a single lane grows.
type LaneSettings struct {
	// Direction is the preferred start angle in degrees; negative means auto.
	Direction float64 `yaml:"direction"`
	// Length caps the growth steps of the lane; 0 means no cap.
	Length           int     `yaml:"length"`
	Curviness        float64 `yaml:"curviness"`
	RandomnessFactor float64 `yaml:"randomness_factor"`
	AllowMerging     bool    `yaml:"allow_merging"`
	MergeWithLane    int     `yaml:"merge_with_lane"`
	MergeAtDistance  int     `yaml:"merge_at_distance"`
	MergeProbability float64 `yaml:"merge_probability"`
}

// DefaultLane is used for every lane without explicit settings.
func DefaultLane() LaneSettings {
	return LaneSettings{
		Direction:        -1,
		Curviness:        0.3,
		RandomnessFactor: 0.1,
		MergeWithLane:    -1,
		MergeAtDistance:  3,
		MergeProbability: 0.5,
	}
}

// GeneratorConfig holds everything the lane generator reads.
type GeneratorConfig struct {
	GridRadius    int     `yaml:"grid_radius"`
	HexSize       float64 `yaml:"hex_size"`
	HubSize       int     `yaml:"hub_size"`
	NumberOfLanes int     `yaml:"number_of_lanes"`
	// Seed 0 asks the generator to pick one and report it back.
	Seed  int64          `yaml:"seed"`
	Lanes []LaneSettings `yaml:"lanes"`

	GlobalCurviness        float64 `yaml:"global_curviness"`
	GlobalRandomness       float64 `yaml:"global_randomness"`
	GlobalMergeProbability float64 `yaml:"global_merge_probability"`

	MinAngleBetweenLanes     float64 `yaml:"min_angle_between_lanes"`
	MinDistanceBetweenStarts int     `yaml:"min_distance_between_starts"`
	DirectionSpreadWeight    float64 `yaml:"direction_spread_weight"`

	EnableValidation bool `yaml:"enable_validation"`
	MaxAttempts      int  `yaml:"max_attempts"`

	TerrainPeaks     int     `yaml:"terrain_peaks"`
	TerrainAmplitude float64 `yaml:"terrain_amplitude"`
}

// Lane returns the settings for lane i, falling back to DefaultLane.
func (c GeneratorConfig) Lane(i int) LaneSettings {
	if i >= 0 && i < len(c.Lanes) {
		return c.Lanes[i]
	}
	return DefaultLane()
}

// WaveSettings drives the threat budget and enemy pool of each wave.
// Times are in seconds.
type WaveSettings struct {
	BaseThreat       float64 `yaml:"base_threat"`
	ThreatExponent   float64 `yaml:"threat_exponent"`
	TimeBetweenWaves float64 `yaml:"time_between_waves"`
	InitialDelay     float64 `yaml:"initial_delay"`

	// Inputs for a host-supplied performance adjustment hook.
	HubHealthModifier   float64 `yaml:"hub_health_modifier"`
	CoinBalanceModifier float64 `yaml:"coin_balance_modifier"`
	PBAClamp            float64 `yaml:"pba_clamp"`

	NewEnemyIntroductionInterval int     `yaml:"new_enemy_introduction_interval"`
	MaxEnemyTypesPerWave         int     `yaml:"max_enemy_types_per_wave"`
	SwarmFocusChance             float64 `yaml:"swarm_focus_chance"`
	EliteFocusChance             float64 `yaml:"elite_focus_chance"`

	StaggerMin float64 `yaml:"stagger_min"`
	StaggerMax float64 `yaml:"stagger_max"`
}

// Config is the full set of inbound values.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Waves     WaveSettings    `yaml:"waves"`
	// Roster is an optional path to an enemy roster file.
	Roster string `yaml:"roster"`
}

// DefaultGenerator returns generator settings that produce a playable map.
func DefaultGenerator() GeneratorConfig {
	return GeneratorConfig{
		GridRadius:               DefaultGridRadius,
		HexSize:                  HexSize,
		HubSize:                  7,
		NumberOfLanes:            3,
		GlobalCurviness:          1,
		GlobalRandomness:         1,
		GlobalMergeProbability:   1,
		MinAngleBetweenLanes:     45,
		MinDistanceBetweenStarts: 3,
		DirectionSpreadWeight:    0.3,
		EnableValidation:         true,
		MaxAttempts:              DefaultMaxAttempts,
		TerrainPeaks:             3,
		TerrainAmplitude:         1.5,
	}
}

// DefaultWaves returns the stock wave pacing.
func DefaultWaves() WaveSettings {
	return WaveSettings{
		BaseThreat:                   100,
		ThreatExponent:               1.15,
		TimeBetweenWaves:             10,
		InitialDelay:                 5,
		HubHealthModifier:            1,
		CoinBalanceModifier:          1,
		PBAClamp:                     1.5,
		NewEnemyIntroductionInterval: 3,
		MaxEnemyTypesPerWave:         3,
		SwarmFocusChance:             0.2,
		EliteFocusChance:             0.15,
		StaggerMin:                   0.2,
		StaggerMax:                   0.6,
	}
}

// Default returns a complete default configuration.
func Default() Config {
	return Config{Generator: DefaultGenerator(), Waves: DefaultWaves()}
}

// Normalize clamps soft settings into their usable ranges. Values that make
// the request unsatisfiable (too many lanes for the radius) are left alone;
// the generator degrades on those instead.
func (c *Config) Normalize() {
	g := &c.Generator
	if g.HubSize != 1 {
		g.HubSize = 7
	}
	if g.HexSize <= 0 {
		g.HexSize = HexSize
	}
	if g.MaxAttempts <= 0 {
		g.MaxAttempts = DefaultMaxAttempts
	}
	if g.MinDistanceBetweenStarts < 0 {
		g.MinDistanceBetweenStarts = 0
	}
	g.GlobalCurviness = clamp01Plus(g.GlobalCurviness)
	g.GlobalRandomness = clamp01Plus(g.GlobalRandomness)
	g.GlobalMergeProbability = clamp01Plus(g.GlobalMergeProbability)
	for i := range g.Lanes {
		l := &g.Lanes[i]
		l.RandomnessFactor = clamp(l.RandomnessFactor, 0, 1)
		l.MergeProbability = clamp(l.MergeProbability, 0, 1)
		if l.Curviness < 0 {
			l.Curviness = 0
		}
		if l.Length < 0 {
			l.Length = 0
		}
	}

	w := &c.Waves
	if w.PBAClamp < 1 {
		w.PBAClamp = 1
	}
	w.SwarmFocusChance = clamp(w.SwarmFocusChance, 0, 1)
	w.EliteFocusChance = clamp(w.EliteFocusChance, 0, 1-w.SwarmFocusChance)
	if w.StaggerMax < w.StaggerMin {
		w.StaggerMin, w.StaggerMax = w.StaggerMax, w.StaggerMin
	}
	if w.StaggerMin < 0 {
		w.StaggerMin = 0
	}
	if w.MaxEnemyTypesPerWave <= 0 {
		w.MaxEnemyTypesPerWave = 1
	}
}

// Validate rejects values no amount of degradation can turn into a map.
func (c Config) Validate() error {
	g := c.Generator
	if g.GridRadius < 1 {
		return fmt.Errorf("%w: grid_radius must be at least 1, got %d", ErrInvalidConfig, g.GridRadius)
	}
	if g.NumberOfLanes < 1 {
		return fmt.Errorf("%w: number_of_lanes must be at least 1, got %d", ErrInvalidConfig, g.NumberOfLanes)
	}
	for i, l := range g.Lanes {
		if l.AllowMerging && l.MergeWithLane == i {
			return fmt.Errorf("%w: lane %d cannot merge with itself", ErrInvalidConfig, i)
		}
	}
	w := c.Waves
	if w.BaseThreat < 0 {
		return fmt.Errorf("%w: base_threat must not be negative", ErrInvalidConfig)
	}
	if w.ThreatExponent < 0 {
		return fmt.Errorf("%w: threat_exponent must not be negative", ErrInvalidConfig)
	}
	if w.TimeBetweenWaves < 0 || w.InitialDelay < 0 {
		return fmt.Errorf("%w: wave delays must not be negative", ErrInvalidConfig)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp01Plus keeps global multipliers non-negative; values above 1 are
// allowed and amplify the per-lane settings.
func clamp01Plus(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
