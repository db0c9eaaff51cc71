package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0, 1)
	return d.initialLevel + progress*(1-d.initialLevel)
}

// Speed scales a base speed from base to base*(1+speed_multiplier).
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Interval shortens a spawn interval by up to interval_reduction of its
// length, never going below floor ticks.
func (d *DifficultyManager) Interval(base, floor, score, ticks int) int {
	cut := d.Level(score, ticks) * clampF(d.cfg.Scaling.IntervalReduction, 0, 1)
	n := int(math.Round(float64(base) * (1 - cut)))
	return max(n, floor, 1)
}

// Chance raises a per-tick probability, capped at 1.
func (d *DifficultyManager) Chance(base float64, score, ticks int) float64 {
	return clampF(base*(1+d.Level(score, ticks)*d.cfg.Scaling.ChanceMultiplier), 0, 1)
}

// Skill maps the current level into the CPU skill range.
func (d *DifficultyManager) Skill(cpu CPUConfig, score, ticks int) float64 {
	lo, hi := cpu.SkillMin, cpu.SkillMax
	if hi < lo {
		lo, hi = hi, lo
	}
	return clampF(lo+d.Level(score, ticks)*(hi-lo), 0, 1)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
