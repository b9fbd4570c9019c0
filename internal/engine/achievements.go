package engine

import (
	"hawkins/internal/storage"
)

// Achievement ids in the fixed catalog.
const (
	AchievementFirstGame    = "first_game"
	AchievementRunner100    = "runner_100"
	AchievementMemoryMaster = "memory_master"
	AchievementCollector    = "collector"
	AchievementLevel5       = "level_5"
	AchievementLevel10      = "level_10"
)

const (
	RunnerScoreTarget  = 100
	CollectorItemCount = 10
)

// DefaultAchievements returns the catalog, all locked, in display order.
func DefaultAchievements() []storage.Achievement {
	return []storage.Achievement{
		{ID: AchievementFirstGame, Name: "Into the Upside Down", Description: "Play your first game", Icon: "🎮"},
		{ID: AchievementRunner100, Name: "Speed Demon", Description: "Score 100+ in Demogorgon Runner", Icon: "⚡"},
		{ID: AchievementMemoryMaster, Name: "Mind Flayer Mastery", Description: "Complete Mind Flayer Match in under 30 seconds", Icon: "🧠"},
		{ID: AchievementCollector, Name: "Collector", Description: "View 10 different collectibles", Icon: "🎨"},
		{ID: AchievementLevel5, Name: "Veteran Hunter", Description: "Reach Level 5", Icon: "⭐"},
		{ID: AchievementLevel10, Name: "Demogorgon Slayer", Description: "Reach Level 10", Icon: "👑"},
	}
}

// MutationKind tags which store operation triggered an evaluation pass.
type MutationKind int

const (
	MutationXP MutationKind = iota + 1
	MutationGamesPlayed
	MutationHighScore
	MutationCollect
)

// Mutation is the context handed to rules alongside the profile.
type Mutation struct {
	Kind  MutationKind
	Game  GameID
	Score int
}

// Rule unlocks AchievementID when Met holds after a mutation of kind On.
type Rule struct {
	AchievementID string
	On            MutationKind
	Met           func(p *storage.Profile, m Mutation) bool
}

// Rules is the evaluator table. memory_master has no rule: the match game
// unlocks it directly because it depends on session timing.
var Rules = []Rule{
	{
		AchievementID: AchievementFirstGame,
		On:            MutationGamesPlayed,
		Met:           func(p *storage.Profile, _ Mutation) bool { return p.TotalGamesPlayed >= 1 },
	},
	{
		AchievementID: AchievementRunner100,
		On:            MutationHighScore,
		Met: func(p *storage.Profile, m Mutation) bool {
			return m.Game == GameRunner && p.HighScores[string(GameRunner)] >= RunnerScoreTarget
		},
	},
	{
		AchievementID: AchievementCollector,
		On:            MutationCollect,
		Met:           func(p *storage.Profile, _ Mutation) bool { return len(p.CollectedItems) >= CollectorItemCount },
	},
	levelRule(AchievementLevel5, 5),
	levelRule(AchievementLevel10, 10),
}

func levelRule(id string, level int) Rule {
	return Rule{
		AchievementID: id,
		On:            MutationXP,
		Met:           func(p *storage.Profile, _ Mutation) bool { return p.Level >= level },
	}
}

// Evaluate returns the ids of locked achievements whose rule is satisfied.
// Rules only see p as passed in; the caller applies unlocks afterwards, so
// no rule can observe another's effect within one pass.
func Evaluate(p *storage.Profile, m Mutation) []string {
	var out []string
	for _, r := range Rules {
		if r.On != m.Kind {
			continue
		}
		a := findAchievement(p, r.AchievementID)
		if a == nil || a.Unlocked {
			continue
		}
		if r.Met(p, m) {
			out = append(out, r.AchievementID)
		}
	}
	return out
}

// CountUnlocked returns how many achievements in p are unlocked.
func CountUnlocked(p storage.Profile) int {
	n := 0
	for _, a := range p.Achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

func findAchievement(p *storage.Profile, id string) *storage.Achievement {
	for i := range p.Achievements {
		if p.Achievements[i].ID == id {
			return &p.Achievements[i]
		}
	}
	return nil
}
