package config

import "embed"

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultSkyFighterConfig returns the built-in Sky Fighter configuration.
func DefaultSkyFighterConfig() SkyFighterConfig {
	return SkyFighterConfig{
		Player:  SkyPlayer{Width: 5, Height: 2, Speed: 0.6, Health: 3},
		Bullets: SkyBullets{Speed: 0.8, Width: 1, Height: 1},
		Enemies: SkyEnemies{
			Width:       3,
			Height:      2,
			BasicSpeed:  0.15,
			FastSpeed:   0.3,
			FastChance:  0.4,
			BasicPoints: 10,
			FastPoints:  20,
			SpawnBase:   36,
			SpawnStep:   5,
			SpawnRamp:   480,
			SpawnMin:    12,
		},
		Coins:     SkyCoins{Every: 120, Speed: 0.15, Value: 50},
		Sticks:    SkySticks{Length: 8, HitRadius: 4, GrabRadius: 3, BasicPoints: 15, FastPoints: 30},
		Explosion: 10,
		Trophies: []TrophyConfig{
			{ID: "sky-rookie", Name: "Sky Rookie", Score: 100},
			{ID: "ace-pilot", Name: "Ace Pilot", Score: 500},
			{ID: "sky-master", Name: "Sky Master", Score: 1000},
			{ID: "legend", Name: "Legend", Score: 2000},
			{ID: "sky-god", Name: "Sky God", Score: 5000},
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 2000},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.5, IntervalReduction: 0.3},
		},
	}
}

// DefaultBoxingConfig returns the built-in classic ring configuration.
func DefaultBoxingConfig() BoxingConfig {
	return BoxingConfig{
		Fighter: BoxingFighter{Width: 4, Height: 6, Speed: 0.5, Health: 100},
		Punch: BoxingPunch{
			Width:      3,
			Height:     2,
			Damage:     15,
			Cooldown:   30,
			Lifetime:   6,
			AttackPose: 12,
		},
		CPU: CPUConfig{SkillMin: 0.4, SkillMax: 0.9},
		Difficulty: DifficultyConfig{
			Enabled:     false,
			Progression: ProgressionConfig{Type: "none"},
		},
	}
}

// DefaultArenaConfig returns the built-in arena configuration: blocking,
// facing and travelling punches.
func DefaultArenaConfig() BoxingConfig {
	cfg := DefaultBoxingConfig()
	cfg.Punch.Width = 2
	cfg.Punch.Height = 1
	cfg.Punch.Speed = 1.0
	cfg.Punch.AttackPose = 5
	cfg.Rules = BoxingRules{Blocking: true, Facing: true, FreeMovement: true}
	return cfg
}

// DefaultTennisConfig returns the built-in Tennis configuration.
func DefaultTennisConfig() TennisConfig {
	return TennisConfig{
		Court:  TennisCourt{SideMargin: 2, TopMargin: 3, BottomMargin: 2, NetRatio: 0.4},
		Player: TennisPlayer{Width: 2, Height: 3, Speed: 0.5},
		Ball: TennisBall{
			Radius:         0.5,
			Gravity:        0.01,
			DragX:          0.999,
			DragY:          0.998,
			GroundBounce:   0.7,
			GroundFriction: 0.9,
			CeilingBounce:  0.6,
			NetBounceX:     0.3,
			NetBounceY:     0.5,
			ServeVX:        0.45,
			ServeVY:        -0.45,
		},
		Racket: TennisRacket{
			GrabRadius:  3,
			HitReach:    1.5,
			HitSpeed:    0.55,
			HitLift:     0.2,
			HitBoost:    0.3,
			HitCooldown: 10,
		},
		WinScore: 5,
		CPU:      CPUConfig{SkillMin: 0.5, SkillMax: 0.9},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 5},
		},
	}
}

// DefaultSkullHunterConfig returns the built-in Skull Hunter configuration.
func DefaultSkullHunterConfig() SkullHunterConfig {
	return SkullHunterConfig{
		Player: HunterPlayer{
			Speed:     0.5,
			Health:    100,
			Character: "default",
			Characters: map[string]float64{
				"default": 1.0,
				"warrior": 1.1,
				"mage":    0.9,
				"ninja":   0.95,
			},
		},
		Fireball: HunterFireball{Radius: 0.5, Speed: 1.0, Trail: 5, Margin: 3, Cooldown: 6},
		Enemies: HunterEnemies{
			SpawnChance:     0.02,
			SpawnPerLevel:   0.005,
			BossChance:      0.3,
			Radius:          1,
			BossRadius:      1.5,
			Health:          2,
			BossHealth:      5,
			SpeedMin:        0.1,
			SpeedMax:        0.3,
			BossSpeedFactor: 0.7,
			Damage:          10,
			BossDamage:      20,
			Knockback:       3,
		},
		Coins:   HunterCoins{SpawnChance: 0.01, DropChance: 0.3, Heal: 5, Radius: 0.5},
		Scoring: HunterScoring{SkullPoints: 10, CoinPoints: 5, SkullsPerLevel: 10},
		Difficulty: DifficultyConfig{
			Enabled:     false,
			Progression: ProgressionConfig{Type: "none"},
			Scaling:     ScalingConfig{ChanceMultiplier: 1.0},
		},
	}
}
