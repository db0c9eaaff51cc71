package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

func TestAllGamesRegistered(t *testing.T) {
	var ids []string
	for _, g := range registry.List() {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"arena", "boxing", "skullhunter", "skyfighter", "tennis"}, ids)
}

func TestParseMode(t *testing.T) {
	solo := registry.GameInfo{ID: "solo"}
	versus := registry.GameInfo{ID: "versus", Versus: true}

	tests := []struct {
		name string
		info registry.GameInfo
		mode string
		want multiplayer.MatchMode
		err  bool
	}{
		{"solo ignores mode", solo, "local", multiplayer.MatchModeSolo, false},
		{"versus default", versus, "", multiplayer.MatchModeVsCPU, false},
		{"versus cpu", versus, "cpu", multiplayer.MatchModeVsCPU, false},
		{"versus local", versus, "local", multiplayer.MatchModeLocalPvP, false},
		{"versus unknown", versus, "online", multiplayer.MatchModeSolo, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMode(tt.info, tt.mode)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func runHeadless(t *testing.T, id string, seed int64, ticks int) simResult {
	t.Helper()
	game, err := registry.Create(id)
	require.NoError(t, err)
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return simulate(game, cfg, ticks, func(step func(uint64) bool) {
		sim.RunFor(ticks, step)
	})
}

func TestSimulateIsDeterministic(t *testing.T) {
	for _, info := range registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			a := runHeadless(t, info.ID, 7, 300)
			b := runHeadless(t, info.ID, 7, 300)
			assert.Equal(t, a, b)
			assert.NotZero(t, a.Ticks)
			assert.LessOrEqual(t, a.Ticks, uint64(300))
		})
	}
}

func TestSimulateVersusHasSnapshot(t *testing.T) {
	res := runHeadless(t, "tennis", 3, 60)
	assert.NotZero(t, res.SnapHash)
}

func TestPort(t *testing.T) {
	assert.Equal(t, "23234", port(":23234"))
	assert.Equal(t, "2222", port("localhost:2222"))
	assert.Equal(t, "bad", port("bad"))
}
