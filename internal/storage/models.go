package storage

import "time"

// Profile is the single persisted record. Session state never lands here.
type Profile struct {
	Username         string         `json:"username"`
	Level            int            `json:"level"`
	XP               int            `json:"xp"`
	TotalGamesPlayed int            `json:"totalGamesPlayed"`
	HighScores       map[string]int `json:"highScores"`
	Achievements     []Achievement  `json:"achievements"`
	CollectedItems   []string       `json:"collectedItems"`
}

type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// Clone returns a deep copy so callers can't reach into store-owned state.
func (p Profile) Clone() Profile {
	cp := p
	cp.HighScores = make(map[string]int, len(p.HighScores))
	for k, v := range p.HighScores {
		cp.HighScores[k] = v
	}
	cp.Achievements = make([]Achievement, len(p.Achievements))
	for i, a := range p.Achievements {
		if a.UnlockedAt != nil {
			t := *a.UnlockedAt
			a.UnlockedAt = &t
		}
		cp.Achievements[i] = a
	}
	cp.CollectedItems = append([]string(nil), p.CollectedItems...)
	return cp
}

// Play is one finished mini-game session.
type Play struct {
	ID         string
	Game       string
	Score      int
	Moves      int
	XPAwarded  int
	Duration   time.Duration
	FinishedAt time.Time
}
