package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

// fakeGame records its input and ends after endAt steps.
type fakeGame struct {
	id       string
	frames   []core.InputFrame
	multi    []core.MultiInputFrame
	state    core.GameState
	endAt    int
	trophyAt int
	resets   int
}

func (g *fakeGame) ID() string    { return g.id }
func (g *fakeGame) Title() string { return "Fake " + g.id }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
	g.frames = nil
	g.multi = nil
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return g.advance()
}

func (g *fakeGame) advance() core.StepResult {
	n := len(g.frames) + len(g.multi)
	if g.endAt > 0 && n >= g.endAt {
		g.state.GameOver = true
		g.state.Score = 42
	}
	res := core.StepResult{State: g.state}
	if n == g.trophyAt {
		res.Award(core.Trophy{ID: "fake-trophy", Name: "Fake Trophy"})
	}
	return res
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "FAKE") }
func (g *fakeGame) State() core.GameState   { return g.state }

type versusGame struct {
	*fakeGame
}

func (g versusGame) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.multi = append(g.multi, in.Clone())
	return g.advance()
}

func init() {
	registry.Register("tui-solo", func() registry.Game { return &fakeGame{id: "tui-solo"} })
	registry.Register("tui-versus", func() registry.Game { return versusGame{&fakeGame{id: "tui-versus"}} })
}

var testConfig = core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() }) //nolint:errcheck
	return store
}

func newTestModel(t *testing.T, game registry.Game, opts GameOptions) Model {
	t.Helper()
	if opts.Config.TickRate == 0 {
		opts.Config = testConfig
	}
	m := NewModel(game, opts)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok)
	return mm, cmd
}

func TestModelWithoutLoggerDiscards(t *testing.T) {
	m := newTestModel(t, &fakeGame{id: "solo"}, GameOptions{})
	require.NotNil(t, m.logger)
	m.logger.Info("dropped")
}

func TestModelHoldsKeysAcrossTicks(t *testing.T) {
	g := &fakeGame{id: "solo"}
	m := newTestModel(t, g, GameOptions{HoldTicks: 3})

	m, _ = update(t, m, runeKey("d"))
	for range 5 {
		m, _ = update(t, m, TickMsg{})
	}

	require.Len(t, g.frames, 5)
	for i, f := range g.frames {
		assert.Equal(t, i < 3, f.Has(core.ActionRight), "tick %d", i)
	}
}

func TestModelArrowsDrivePlayer1InSoloGames(t *testing.T) {
	g := &fakeGame{id: "solo"}
	m := newTestModel(t, g, GameOptions{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, TickMsg{})

	require.Len(t, g.frames, 1)
	assert.True(t, g.frames[0].Has(core.ActionLeft))
}

func TestModelLocalPvPUsesStepMulti(t *testing.T) {
	g := versusGame{&fakeGame{id: "duel"}}
	m := newTestModel(t, g, GameOptions{Mode: multiplayer.MatchModeLocalPvP})

	m, _ = update(t, m, runeKey("f"))
	m, _ = update(t, m, runeKey("l"))
	m, _ = update(t, m, TickMsg{})

	assert.Empty(t, g.frames)
	require.Len(t, g.multi, 1)
	assert.True(t, g.multi[0].Player1().Has(core.ActionPunch))
	assert.True(t, g.multi[0].Player2().Has(core.ActionPunch))
	assert.False(t, g.multi[0].Player1().Has(core.ActionBlock))
}

func TestModelLocalPvPNeedsVersusGame(t *testing.T) {
	g := &fakeGame{id: "solo"}
	m := newTestModel(t, g, GameOptions{Mode: multiplayer.MatchModeLocalPvP})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, TickMsg{})

	require.Len(t, g.frames, 1)
	assert.True(t, g.frames[0].Has(core.ActionUp))
}

func TestModelMousePointer(t *testing.T) {
	g := &fakeGame{id: "solo"}
	m := newTestModel(t, g, GameOptions{})

	m, _ = update(t, m, tea.MouseMsg{X: 7, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.MouseMsg{X: 9, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	m, _ = update(t, m, TickMsg{})

	require.Len(t, g.frames, 2)
	first := g.frames[0].Pointer
	assert.True(t, first.Valid)
	assert.True(t, first.Down)
	assert.InDelta(t, 7.0, first.X, 1e-9)
	assert.InDelta(t, 3.0, first.Y, 1e-9)
	assert.False(t, g.frames[1].Pointer.Down)
	assert.InDelta(t, 9.0, g.frames[1].Pointer.X, 1e-9)
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{id: "solo", endAt: 2}
	m := newTestModel(t, g, GameOptions{Store: store})

	for range 5 {
		m, _ = update(t, m, TickMsg{})
	}

	assert.True(t, m.State().GameOver)
	scores, err := store.TopScores("solo", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 42, scores[0].Score)
}

func TestModelSkipsScoreInLocalPvP(t *testing.T) {
	store := openStore(t)
	g := versusGame{&fakeGame{id: "duel", endAt: 1}}
	m := newTestModel(t, g, GameOptions{Store: store, Mode: multiplayer.MatchModeLocalPvP})

	m, _ = update(t, m, TickMsg{})

	assert.True(t, m.State().GameOver)
	scores, err := store.TopScores("duel", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestModelSavesTrophies(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{id: "solo", trophyAt: 2}
	m := newTestModel(t, g, GameOptions{Store: store})

	for range 3 {
		m, _ = update(t, m, TickMsg{})
	}

	trophies, err := store.Trophies("solo")
	require.NoError(t, err)
	require.Len(t, trophies, 1)
	assert.Equal(t, "fake-trophy", trophies[0].TrophyID)
	assert.Contains(t, m.View(), "Trophy: Fake Trophy")
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	g := &fakeGame{id: "solo", endAt: 2}
	m := newTestModel(t, g, GameOptions{})
	require.Equal(t, 1, g.resets)

	m, _ = update(t, m, runeKey("r"))
	assert.Equal(t, 1, g.resets, "restart ignored while playing")

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})
	require.True(t, m.State().GameOver)

	m, _ = update(t, m, runeKey("r"))
	assert.Equal(t, 2, g.resets)
	assert.False(t, m.State().GameOver)
}

func TestModelMuteToggle(t *testing.T) {
	m := newTestModel(t, &fakeGame{id: "solo"}, GameOptions{})

	m, _ = update(t, m, runeKey("m"))
	assert.True(t, m.audio.Muted())
	assert.Contains(t, m.View(), "[muted]")

	m, _ = update(t, m, runeKey("m"))
	assert.False(t, m.audio.Muted())
}

func TestModelBackAndQuit(t *testing.T) {
	m := newTestModel(t, &fakeGame{id: "solo"}, GameOptions{})
	back, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, back.BackToMenu())
	assert.Nil(t, cmd, "embedded models hand control back to their parent")

	standalone := newTestModel(t, &fakeGame{id: "solo"}, GameOptions{Standalone: true})
	_, cmd = update(t, standalone, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, cmd)

	quit, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, quit.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, quit.View())
}

func TestModelViewClearsScreen(t *testing.T) {
	m := newTestModel(t, &fakeGame{id: "solo"}, GameOptions{})
	m.screen.DrawText(0, 5, "stale")

	assert.NotContains(t, m.View(), "stale")
	assert.Contains(t, m.View(), "FAKE")
}
