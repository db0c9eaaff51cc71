package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// TrophySummary aggregates how often a trophy was earned.
type TrophySummary struct {
	TrophyID    string
	Name        string
	Holder      string
	Count       int
	FirstEarned time.Time
}

// SaveTrophy records an unlocked trophy for a game.
func (s *Store) SaveTrophy(gameID string, t core.Trophy) error {
	_, err := s.db.Exec(
		"INSERT INTO trophies (game_id, trophy_id, name, holder) VALUES (?, ?, ?, ?)",
		gameID, t.ID, t.Name, t.Holder,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save trophy: %w", err)
	}
	return nil
}

// Trophies lists the trophies earned in a game, grouped by trophy and holder,
// oldest first.
func (s *Store) Trophies(gameID string) ([]TrophySummary, error) {
	rows, err := s.db.Query(
		`SELECT trophy_id, name, holder, COUNT(*), MIN(earned_at)
		 FROM trophies
		 WHERE game_id = ?
		 GROUP BY trophy_id, holder
		 ORDER BY MIN(id)`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query trophies: %w", err)
	}
	return collect(rows, "trophy", func(r rowScanner) (TrophySummary, error) {
		var t TrophySummary
		var first any
		err := r.Scan(&t.TrophyID, &t.Name, &t.Holder, &t.Count, &first)
		t.FirstEarned = parseTime(first)
		return t, err
	})
}
