package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game configuration.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default.
// Files are decoded over the hard-coded defaults, so a partial file only
// overrides the keys it names.
func load[T any](id, customPath string, defaults func() T) (T, error) {
	cfg := defaults()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return defaults(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := id + ".yaml"
	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fromFile := defaults()
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, nil
		}
	}

	data, err := defaultsFS.ReadFile("defaults/" + filename)
	if err != nil {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadSkyFighter loads the Sky Fighter configuration.
func LoadSkyFighter(customPath string) (SkyFighterConfig, error) {
	return load("skyfighter", customPath, DefaultSkyFighterConfig)
}

// LoadBoxing loads the classic ring configuration.
func LoadBoxing(customPath string) (BoxingConfig, error) {
	return load("boxing", customPath, DefaultBoxingConfig)
}

// LoadArena loads the arena configuration.
func LoadArena(customPath string) (BoxingConfig, error) {
	return load("arena", customPath, DefaultArenaConfig)
}

// LoadTennis loads the Tennis configuration.
func LoadTennis(customPath string) (TennisConfig, error) {
	return load("tennis", customPath, DefaultTennisConfig)
}

// LoadSkullHunter loads the Skull Hunter configuration.
func LoadSkullHunter(customPath string) (SkullHunterConfig, error) {
	return load("skullhunter", customPath, DefaultSkullHunterConfig)
}

// ApplyPreset modifies a difficulty block based on a preset.
// Fixed keeps the configured level and disables progression.
func ApplyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}

// ApplyPresetName applies a preset given by name. Empty names leave d as loaded.
func ApplyPresetName(d *DifficultyConfig, name string) error {
	if name == "" {
		return nil
	}
	preset, ok := ParsePreset(name)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
	ApplyPreset(d, preset)
	return nil
}
