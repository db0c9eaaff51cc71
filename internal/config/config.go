// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
//
// All distances are in screen cells, speeds in cells per tick and
// durations in ticks (60 ticks per second by default).
package config

// SkyFighterConfig contains all configuration for the Sky Fighter shooter.
type SkyFighterConfig struct {
	Player     SkyPlayer        `yaml:"player"`
	Bullets    SkyBullets       `yaml:"bullets"`
	Enemies    SkyEnemies       `yaml:"enemies"`
	Coins      SkyCoins         `yaml:"coins"`
	Sticks     SkySticks        `yaml:"sticks"`
	Explosion  int              `yaml:"explosion_ticks"`
	Trophies   []TrophyConfig   `yaml:"trophies"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SkyPlayer defines the player's plane.
type SkyPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	Health int     `yaml:"health"`
}

// SkyBullets defines player bullets.
type SkyBullets struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SkyEnemies defines enemy planes and their spawn schedule.
// The spawn interval is max(spawn_base - floor(t/spawn_ramp)*spawn_step, spawn_min).
type SkyEnemies struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	BasicSpeed  float64 `yaml:"basic_speed"`
	FastSpeed   float64 `yaml:"fast_speed"`
	FastChance  float64 `yaml:"fast_chance"`
	BasicPoints int     `yaml:"basic_points"`
	FastPoints  int     `yaml:"fast_points"`
	SpawnBase   int     `yaml:"spawn_base"`
	SpawnStep   int     `yaml:"spawn_step"`
	SpawnRamp   int     `yaml:"spawn_ramp"`
	SpawnMin    int     `yaml:"spawn_min"`
}

// SkyCoins defines falling bonus coins.
type SkyCoins struct {
	Every int     `yaml:"every"`
	Speed float64 `yaml:"speed"`
	Value int     `yaml:"value"`
}

// SkySticks defines the drum sticks that swat enemies.
type SkySticks struct {
	Length      float64 `yaml:"length"`
	HitRadius   float64 `yaml:"hit_radius"`
	GrabRadius  float64 `yaml:"grab_radius"`
	BasicPoints int     `yaml:"basic_points"`
	FastPoints  int     `yaml:"fast_points"`
}

// TrophyConfig is a score milestone.
type TrophyConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
}

// BoxingConfig configures both the classic ring and the arena variant.
type BoxingConfig struct {
	Fighter    BoxingFighter    `yaml:"fighter"`
	Punch      BoxingPunch      `yaml:"punch"`
	Rules      BoxingRules      `yaml:"rules"`
	CPU        CPUConfig        `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoxingFighter defines fighter size and movement.
type BoxingFighter struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	Health int     `yaml:"health"`
}

// BoxingPunch defines punch hitboxes and timing.
// Speed 0 keeps the punch in front of the fighter for Lifetime ticks;
// a positive speed makes it travel until it leaves the ring.
type BoxingPunch struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Damage     int     `yaml:"damage"`
	Cooldown   int     `yaml:"cooldown"`
	Lifetime   int     `yaml:"lifetime"`
	AttackPose int     `yaml:"attack_pose"`
	Speed      float64 `yaml:"speed"`
}

// BoxingRules toggles the arena mechanics.
type BoxingRules struct {
	Blocking     bool `yaml:"blocking"`
	Facing       bool `yaml:"facing"`
	FreeMovement bool `yaml:"free_movement"`
}

// CPUConfig defines the computer opponent's skill range (0..1).
type CPUConfig struct {
	SkillMin float64 `yaml:"skill_min"`
	SkillMax float64 `yaml:"skill_max"`
}

// TennisConfig contains all configuration for Tennis.
type TennisConfig struct {
	Court      TennisCourt      `yaml:"court"`
	Player     TennisPlayer     `yaml:"player"`
	Ball       TennisBall       `yaml:"ball"`
	Racket     TennisRacket     `yaml:"racket"`
	WinScore   int              `yaml:"win_score"`
	CPU        CPUConfig        `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TennisCourt defines the court layout relative to the screen.
type TennisCourt struct {
	SideMargin   int     `yaml:"side_margin"`
	TopMargin    int     `yaml:"top_margin"`
	BottomMargin int     `yaml:"bottom_margin"`
	NetRatio     float64 `yaml:"net_ratio"` // Fraction of court height covered by the net
}

// TennisPlayer defines player size and speed.
type TennisPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// TennisBall defines ball physics.
type TennisBall struct {
	Radius         float64 `yaml:"radius"`
	Gravity        float64 `yaml:"gravity"`
	DragX          float64 `yaml:"drag_x"`
	DragY          float64 `yaml:"drag_y"`
	GroundBounce   float64 `yaml:"ground_bounce"`
	GroundFriction float64 `yaml:"ground_friction"`
	CeilingBounce  float64 `yaml:"ceiling_bounce"`
	NetBounceX     float64 `yaml:"net_bounce_x"`
	NetBounceY     float64 `yaml:"net_bounce_y"`
	ServeVX        float64 `yaml:"serve_vx"`
	ServeVY        float64 `yaml:"serve_vy"`
}

// TennisRacket defines racket pickup and hitting.
type TennisRacket struct {
	GrabRadius  float64 `yaml:"grab_radius"`
	HitReach    float64 `yaml:"hit_reach"`
	HitSpeed    float64 `yaml:"hit_speed"`
	HitLift     float64 `yaml:"hit_lift"`
	HitBoost    float64 `yaml:"hit_boost"`
	HitCooldown int     `yaml:"hit_cooldown"`
}

// SkullHunterConfig contains all configuration for Skull Hunter.
type SkullHunterConfig struct {
	Player     HunterPlayer     `yaml:"player"`
	Fireball   HunterFireball   `yaml:"fireball"`
	Enemies    HunterEnemies    `yaml:"enemies"`
	Coins      HunterCoins      `yaml:"coins"`
	Scoring    HunterScoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// HunterPlayer defines the hero.
type HunterPlayer struct {
	Speed      float64            `yaml:"speed"`
	Health     int                `yaml:"health"`
	Character  string             `yaml:"character"`
	Characters map[string]float64 `yaml:"characters"` // name -> radius
}

// HunterFireball defines projectiles.
type HunterFireball struct {
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`
	Trail    int     `yaml:"trail"`
	Margin   float64 `yaml:"margin"`
	Cooldown int     `yaml:"cooldown"`
}

// HunterEnemies defines chasing skulls.
type HunterEnemies struct {
	SpawnChance     float64 `yaml:"spawn_chance"`
	SpawnPerLevel   float64 `yaml:"spawn_per_level"`
	BossChance      float64 `yaml:"boss_chance"`
	Radius          float64 `yaml:"radius"`
	BossRadius      float64 `yaml:"boss_radius"`
	Health          int     `yaml:"health"`
	BossHealth      int     `yaml:"boss_health"`
	SpeedMin        float64 `yaml:"speed_min"`
	SpeedMax        float64 `yaml:"speed_max"`
	BossSpeedFactor float64 `yaml:"boss_speed_factor"`
	Damage          int     `yaml:"damage"`
	BossDamage      int     `yaml:"boss_damage"`
	Knockback       float64 `yaml:"knockback"`
}

// HunterCoins defines healing coins.
type HunterCoins struct {
	SpawnChance float64 `yaml:"spawn_chance"`
	DropChance  float64 `yaml:"drop_chance"`
	Heal        int     `yaml:"heal"`
	Radius      float64 `yaml:"radius"`
}

// HunterScoring defines points and levels.
type HunterScoring struct {
	SkullPoints    int `yaml:"skull_points"`
	CoinPoints     int `yaml:"coin_points"`
	SkullsPerLevel int `yaml:"skulls_per_level"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction removed from spawn intervals at max difficulty
	ChanceMultiplier  float64 `yaml:"chance_multiplier"`  // Added to spawn chances at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty input selects normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
