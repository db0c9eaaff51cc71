package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesNestedDirectories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcade", "scores.db")); err != nil {
		t.Errorf("expected database under HOME: %v", err)
	}
}

func TestScoresOrderedPerGame(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("skyfighter", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("skullhunter", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("skyfighter", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	want := []int{200, 100, 50}
	if len(scores) != len(want) {
		t.Fatalf("expected %d scores, got %d", len(want), len(scores))
	}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "skyfighter" {
			t.Errorf("scores[%d] leaked from game %q", i, scores[i].GameID)
		}
	}
}

func TestTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := range 15 {
		store.SaveScore("tennis", i*10)
	}

	scores, err := store.TopScores("tennis", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 || scores[0].Score != 140 {
		t.Errorf("expected 5 scores starting at 140, got %d starting at %d", len(scores), scores[0].Score)
	}

	all, err := store.AllScores("tennis")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 15 {
		t.Errorf("AllScores returned %d, expected 15", len(all))
	}
}

func TestHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("boxing")
	if err != nil || high != 0 {
		t.Fatalf("HighScore on empty table = %d, %v", high, err)
	}

	store.SaveScore("boxing", 40)
	store.SaveScore("boxing", 80)

	high, _ = store.HighScore("boxing")
	if high != 80 {
		t.Errorf("HighScore = %d, expected 80", high)
	}

	stats, err := store.GameStats("boxing")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.AvgScore != 60 || stats.TotalScore != 120 {
		t.Errorf("unexpected stats %+v", stats)
	}

	all, err := store.AllGameStats()
	if err != nil {
		t.Fatalf("AllGameStats() failed: %v", err)
	}
	if _, ok := all["boxing"]; !ok || len(all) != 1 {
		t.Errorf("AllGameStats = %+v", all)
	}
}

func TestTrophies(t *testing.T) {
	store := openTestStore(t)

	rookie := core.Trophy{ID: "sky-rookie", Name: "Sky Rookie"}
	store.SaveTrophy("skyfighter", rookie)
	store.SaveTrophy("skyfighter", rookie)
	store.SaveTrophy("skyfighter", core.Trophy{ID: "ace-pilot", Name: "Ace Pilot"})
	store.SaveTrophy("tennis", core.Trophy{ID: "champion", Name: "Champion", Holder: "P2"})

	list, err := store.Trophies("skyfighter")
	if err != nil {
		t.Fatalf("Trophies() failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 trophy kinds, got %d", len(list))
	}
	if list[0].TrophyID != "sky-rookie" || list[0].Count != 2 {
		t.Errorf("first trophy = %+v", list[0])
	}

	tennis, _ := store.Trophies("tennis")
	if len(tennis) != 1 || tennis[0].Holder != "P2" {
		t.Errorf("tennis trophies = %+v", tennis)
	}
}

func TestClearScoresAlsoClearsTrophies(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("skyfighter", 10)
	store.SaveTrophy("skyfighter", core.Trophy{ID: "x", Name: "X"})
	store.SaveScore("tennis", 3)

	if err := store.ClearScores("skyfighter"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("skyfighter", 10); len(scores) != 0 {
		t.Errorf("expected no scores, got %d", len(scores))
	}
	if trophies, _ := store.Trophies("skyfighter"); len(trophies) != 0 {
		t.Errorf("expected no trophies, got %d", len(trophies))
	}
	if scores, _ := store.TopScores("tennis", 10); len(scores) != 1 {
		t.Error("other games must be untouched")
	}
}

func TestOnlineMatches(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveMatchResult(multiplayer.MatchResultData{
		MatchID:        "m-1",
		GameID:         "boxing",
		Player1Session: "alice",
		Player2Session: "bob",
		Score1:         55,
		Score2:         0,
		WinnerSession:  "alice",
		EndReason:      "completed",
		DurationSecs:   42,
	})
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}
	store.SaveOnlineMatch(OnlineMatchResult{MatchID: "m-2", GameID: "tennis", Player1Session: "carol", Player2Session: "alice", EndReason: "cancelled"})

	m, err := store.OnlineMatchByID("m-1")
	if err != nil || m == nil {
		t.Fatalf("OnlineMatchByID() = %v, %v", m, err)
	}
	if m.WinnerSession != "alice" || m.Duration != 42 || m.Score1 != 55 {
		t.Errorf("unexpected match %+v", m)
	}

	missing, err := store.OnlineMatchByID("nope")
	if err != nil || missing != nil {
		t.Errorf("missing match = %v, %v", missing, err)
	}

	recent, _ := store.RecentOnlineMatches(10)
	if len(recent) != 2 {
		t.Errorf("RecentOnlineMatches returned %d", len(recent))
	}

	history, _ := store.PlayerMatchHistory("alice", 10)
	if len(history) != 2 {
		t.Errorf("alice should have 2 matches, got %d", len(history))
	}
	history, _ = store.PlayerMatchHistory("bob", 10)
	if len(history) != 1 {
		t.Errorf("bob should have 1 match, got %d", len(history))
	}

	if _, err := store.SaveOnlineMatch(OnlineMatchResult{MatchID: "m-1", GameID: "boxing", EndReason: "completed"}); err == nil {
		t.Error("duplicate match IDs must be rejected")
	}
}
