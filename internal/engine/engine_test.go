package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"hawkins/internal/clock"
	"hawkins/internal/storage"
)

var epoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type memRepo struct {
	stored  *storage.Profile
	saves   int
	loadErr error
	saveErr error
}

func (r *memRepo) Load(context.Context) (*storage.Profile, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.stored == nil {
		return nil, nil
	}
	cp := r.stored.Clone()
	return &cp, nil
}

func (r *memRepo) Save(_ context.Context, p storage.Profile) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := p.Clone()
	r.stored = &cp
	return nil
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newTestStore(t *testing.T) (*Store, *memRepo, *clock.Mock) {
	t.Helper()
	repo := &memRepo{}
	c := clock.NewMock(epoch)
	s := NewStore(context.Background(), repo, StoreOptions{Username: "Tester", Clock: c, Logger: quietLogger()})
	return s, repo, c
}

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return OpenStore(ctx, db, StoreOptions{Username: "Tester", Logger: quietLogger()})
}

func achievement(t *testing.T, p storage.Profile, id string) storage.Achievement {
	t.Helper()
	for _, a := range p.Achievements {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q not in profile", id)
	return storage.Achievement{}
}

func TestLevelForXPBoundaries(t *testing.T) {
	cases := []struct{ xp, level int }{
		{0, 1}, {999, 1}, {1000, 2}, {1999, 2}, {4000, 5}, {9999, 10}, {-5, 1},
	}
	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.level {
			t.Fatalf("LevelForXP(%d)=%d, want %d", tc.xp, got, tc.level)
		}
	}
	if got := XPToNextLevel(1250); got != 750 {
		t.Fatalf("XPToNextLevel(1250)=%d, want 750", got)
	}
	if into, span := LevelProgress(2300); into != 300 || span != 1000 {
		t.Fatalf("LevelProgress(2300)=%d/%d, want 300/1000", into, span)
	}
}

func TestDefaultsOnFirstLaunch(t *testing.T) {
	s, _, _ := newTestStore(t)
	p := s.Snapshot()
	if p.Username != "Tester" || p.Level != 1 || p.XP != 0 || p.TotalGamesPlayed != 0 {
		t.Fatalf("defaults = %+v", p)
	}
	if CountUnlocked(p) != 0 || len(p.Achievements) != len(DefaultAchievements()) {
		t.Fatalf("achievements = %+v", p.Achievements)
	}
	for _, g := range Games {
		if v, ok := p.HighScores[string(g)]; !ok || v != 0 {
			t.Fatalf("high score %s = %d,%v", g, v, ok)
		}
	}
}

func TestAddXPLevelUpFiresOncePerCrossing(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	var got []int
	s.OnLevelUp(func(level int) { got = append(got, level) })

	s.AddXP(ctx, 999)
	if len(got) != 0 {
		t.Fatalf("callback fired below threshold: %v", got)
	}
	s.AddXP(ctx, 1)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("callback=%v, want [2]", got)
	}
	if p := s.Snapshot(); p.Level != 2 || p.XP != 1000 {
		t.Fatalf("profile level=%d xp=%d, want 2/1000", p.Level, p.XP)
	}

	// One call spanning several boundaries reports only the final level.
	s.AddXP(ctx, 3500)
	if len(got) != 2 || got[1] != 5 {
		t.Fatalf("callback=%v, want [2 5]", got)
	}
	if !achievement(t, s.Snapshot(), AchievementLevel5).Unlocked {
		t.Fatalf("level_5 not unlocked at level 5")
	}
}

func TestAddXPLevelInvariantOverSequence(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	fired := 0
	s.OnLevelUp(func(int) { fired++ })

	total, crossings := 0, 0
	for _, amt := range []int{0, 250, 750, 1, 4999, 0, 3000, 17, -40, 983} {
		before := LevelForXP(total)
		s.AddXP(ctx, amt)
		if amt > 0 {
			total += amt
		}
		if LevelForXP(total) > before {
			crossings++
		}
		if p := s.Snapshot(); p.XP != total || p.Level != total/1000+1 {
			t.Fatalf("after AddXP(%d): xp=%d level=%d, want %d/%d", amt, p.XP, p.Level, total, total/1000+1)
		}
	}
	if fired != crossings {
		t.Fatalf("level-up fired %d times, want %d", fired, crossings)
	}
}

func TestLevelUpSubscribers(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	var a, b, slot []int
	cancelA := s.SubscribeLevelUp(func(l int) { a = append(a, l) })
	s.SubscribeLevelUp(func(l int) { b = append(b, l) })
	s.OnLevelUp(func(l int) { slot = append(slot, -1) })
	s.OnLevelUp(func(l int) { slot = append(slot, l) })

	s.AddXP(ctx, 1000)
	cancelA()
	s.AddXP(ctx, 1000)

	if len(a) != 1 || len(b) != 2 {
		t.Fatalf("a=%v b=%v", a, b)
	}
	if len(slot) != 2 || slot[0] != 2 || slot[1] != 3 {
		t.Fatalf("slot=%v, want replaced subscriber to see [2 3]", slot)
	}
}

func TestLevelUpSubscriberCanReadSnapshot(t *testing.T) {
	s, _, _ := newTestStore(t)
	var seen int
	s.OnLevelUp(func(int) { seen = s.Snapshot().Level })
	s.AddXP(context.Background(), 2000)
	if seen != 3 {
		t.Fatalf("subscriber saw level %d, want 3", seen)
	}
}

func TestLevelUpNotifiesBeforeLevelAchievements(t *testing.T) {
	s, repo, _ := newTestStore(t)
	var seenLevel int
	var unlockedDuring bool
	s.OnLevelUp(func(l int) {
		seenLevel = l
		unlockedDuring = achievement(t, s.Snapshot(), AchievementLevel5).Unlocked
	})

	s.AddXP(context.Background(), 4000)

	if seenLevel != 5 || unlockedDuring {
		t.Fatalf("subscriber saw level=%d level_5 unlocked=%v, want 5 and locked", seenLevel, unlockedDuring)
	}
	if !achievement(t, s.Snapshot(), AchievementLevel5).Unlocked {
		t.Fatalf("level_5 not unlocked after AddXP returned")
	}
	if !achievement(t, *repo.stored, AchievementLevel5).Unlocked {
		t.Fatalf("level_5 unlock not persisted")
	}
}

func TestUpdateHighScoreRunnerIsMonotonic(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.UpdateHighScore(ctx, GameRunner, 50)
	s.UpdateHighScore(ctx, GameRunner, 30)
	s.UpdateHighScore(ctx, GameRunner, 50)
	if got := s.Snapshot().HighScores["runner"]; got != 50 {
		t.Fatalf("runner high score=%d, want 50", got)
	}
	if achievement(t, s.Snapshot(), AchievementRunner100).Unlocked {
		t.Fatalf("runner_100 unlocked at 50")
	}

	s.UpdateHighScore(ctx, GameRunner, 137)
	p := s.Snapshot()
	if p.HighScores["runner"] != 137 || !achievement(t, p, AchievementRunner100).Unlocked {
		t.Fatalf("after 137: score=%d runner_100=%v", p.HighScores["runner"], achievement(t, p, AchievementRunner100).Unlocked)
	}
}

func TestUpdateHighScoreMatchLowerIsBetter(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.UpdateHighScore(ctx, GameMemoryMatch, 14)
	s.UpdateHighScore(ctx, GameMemoryMatch, 20)
	s.UpdateHighScore(ctx, GameMemoryMatch, 0)
	if got := s.Snapshot().HighScores["memoryMatch"]; got != 14 {
		t.Fatalf("memoryMatch=%d, want 14", got)
	}
	s.UpdateHighScore(ctx, GameMemoryMatch, 11)
	if got := s.Snapshot().HighScores["memoryMatch"]; got != 11 {
		t.Fatalf("memoryMatch=%d, want 11", got)
	}
	if achievement(t, s.Snapshot(), AchievementRunner100).Unlocked {
		t.Fatalf("match score must not unlock runner_100")
	}
}

func TestUpdateHighScoreUnknownGameIgnored(t *testing.T) {
	s, repo, _ := newTestStore(t)
	s.UpdateHighScore(context.Background(), GameID("pinball"), 999)
	if _, ok := s.Snapshot().HighScores["pinball"]; ok {
		t.Fatalf("unknown game stored")
	}
	if repo.saves != 0 {
		t.Fatalf("no-op persisted %d times", repo.saves)
	}
}

func TestUnlockAchievementIdempotent(t *testing.T) {
	s, _, c := newTestStore(t)
	ctx := context.Background()

	s.UnlockAchievement(ctx, AchievementMemoryMaster)
	first := achievement(t, s.Snapshot(), AchievementMemoryMaster)
	if !first.Unlocked || first.UnlockedAt == nil || !first.UnlockedAt.Equal(epoch) {
		t.Fatalf("first unlock = %+v", first)
	}

	c.Advance(time.Hour)
	s.UnlockAchievement(ctx, AchievementMemoryMaster)
	s.UnlockAchievement(ctx, "no_such_achievement")
	second := achievement(t, s.Snapshot(), AchievementMemoryMaster)
	if !second.UnlockedAt.Equal(*first.UnlockedAt) {
		t.Fatalf("unlockedAt moved from %v to %v", first.UnlockedAt, second.UnlockedAt)
	}
}

func TestFirstGameRuleIdempotent(t *testing.T) {
	s, _, c := newTestStore(t)
	ctx := context.Background()

	s.IncrementGamesPlayed(ctx)
	at := achievement(t, s.Snapshot(), AchievementFirstGame).UnlockedAt
	c.Advance(time.Minute)
	s.IncrementGamesPlayed(ctx)

	p := s.Snapshot()
	if p.TotalGamesPlayed != 2 {
		t.Fatalf("games played=%d, want 2", p.TotalGamesPlayed)
	}
	if a := achievement(t, p, AchievementFirstGame); !a.Unlocked || !a.UnlockedAt.Equal(*at) {
		t.Fatalf("first_game = %+v, want unlocked at %v", a, at)
	}
}

func TestCollectItemIdempotentAndCollector(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.CollectItem(ctx, "demo-001")
	}
	s.CollectItem(ctx, "  ")
	if p := s.Snapshot(); len(p.CollectedItems) != 1 {
		t.Fatalf("collected=%v, want one item", p.CollectedItems)
	}
	if !s.HasCollected("demo-001") || s.HasCollected("demo-002") {
		t.Fatalf("HasCollected mismatch")
	}

	for i := 2; i <= 9; i++ {
		s.CollectItem(ctx, "demo-00"+string(rune('0'+i)))
	}
	if achievement(t, s.Snapshot(), AchievementCollector).Unlocked {
		t.Fatalf("collector unlocked at 9 items")
	}
	s.CollectItem(ctx, "demo-010")
	if !achievement(t, s.Snapshot(), AchievementCollector).Unlocked {
		t.Fatalf("collector locked at 10 items")
	}
}

func TestEvaluateIsOrderIndependent(t *testing.T) {
	p := DefaultProfile("x")
	p.Level = 12
	got := Evaluate(&p, Mutation{Kind: MutationXP})
	if len(got) != 2 {
		t.Fatalf("Evaluate=%v, want level_5 and level_10", got)
	}
	if CountUnlocked(p) != 0 {
		t.Fatalf("Evaluate mutated the profile")
	}

	saved := Rules
	t.Cleanup(func() { Rules = saved })
	reversed := make([]Rule, len(saved))
	for i := range saved {
		reversed[len(saved)-1-i] = saved[i]
	}
	Rules = reversed
	again := Evaluate(&p, Mutation{Kind: MutationXP})
	if len(again) != 2 {
		t.Fatalf("reversed Evaluate=%v", again)
	}
}

func TestIntroFlagNotPersisted(t *testing.T) {
	s, repo, _ := newTestStore(t)
	s.MarkIntroSeen()
	if !s.IntroSeen() {
		t.Fatalf("IntroSeen=false after MarkIntroSeen")
	}
	if repo.saves != 0 {
		t.Fatalf("intro flag triggered a save")
	}
	again := NewStore(context.Background(), repo, StoreOptions{Logger: quietLogger()})
	if again.IntroSeen() {
		t.Fatalf("intro flag survived reload")
	}
}

func TestPersistenceFaultsDegradeToMemory(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{loadErr: errors.New("disk gone"), saveErr: errors.New("read-only")}
	s := NewStore(ctx, repo, StoreOptions{Logger: quietLogger()})

	s.AddXP(ctx, 1500)
	s.CollectItem(ctx, "demo-001")
	p := s.Snapshot()
	if p.Level != 2 || len(p.CollectedItems) != 1 || p.Username != DefaultUsername {
		t.Fatalf("in-memory state lost: %+v", p)
	}
}

func TestReloadNormalizesStoredProfile(t *testing.T) {
	at := epoch.Add(-time.Hour)
	repo := &memRepo{stored: &storage.Profile{
		Username:         "Old",
		Level:            1, // stale, re-derived from XP
		XP:               5200,
		TotalGamesPlayed: 3,
		HighScores:       map[string]int{"runner": 80},
		Achievements: []storage.Achievement{
			{ID: AchievementFirstGame, Unlocked: true, UnlockedAt: &at},
			{ID: "retired", Unlocked: true},
		},
		CollectedItems: []string{"b", "a", "b", ""},
	}}
	s := NewStore(context.Background(), repo, StoreOptions{Username: "Ignored", Logger: quietLogger()})
	p := s.Snapshot()

	if p.Username != "Old" || p.Level != 6 || p.TotalGamesPlayed != 3 {
		t.Fatalf("reloaded = %+v", p)
	}
	if p.HighScores["memoryMatch"] != 0 || p.HighScores["runner"] != 80 {
		t.Fatalf("high scores = %v", p.HighScores)
	}
	if len(p.Achievements) != len(DefaultAchievements()) {
		t.Fatalf("achievements not reconciled: %+v", p.Achievements)
	}
	if a := achievement(t, p, AchievementFirstGame); !a.Unlocked || !a.UnlockedAt.Equal(at) {
		t.Fatalf("first_game lost: %+v", a)
	}
	if len(p.CollectedItems) != 2 || p.CollectedItems[0] != "a" {
		t.Fatalf("collected = %v", p.CollectedItems)
	}
}

func TestSQLiteStoreRoundTripAndPlays(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	s := OpenStore(ctx, db, StoreOptions{Username: "Tester", Logger: quietLogger()})
	s.IncrementGamesPlayed(ctx)
	s.UpdateHighScore(ctx, GameRunner, 137)
	s.AddXP(ctx, 13)
	s.RecordPlay(ctx, storage.Play{Game: string(GameRunner), Score: 137, XPAwarded: 13})

	reloaded := OpenStore(ctx, db, StoreOptions{Logger: quietLogger()})
	p := reloaded.Snapshot()
	if p.Username != "Tester" || p.XP != 13 || p.HighScores["runner"] != 137 || p.TotalGamesPlayed != 1 {
		t.Fatalf("reloaded = %+v", p)
	}
	if !achievement(t, p, AchievementRunner100).Unlocked || !achievement(t, p, AchievementFirstGame).Unlocked {
		t.Fatalf("achievements not persisted: %+v", p.Achievements)
	}
	plays := reloaded.RecentPlays(ctx, 5)
	if len(plays) != 1 || plays[0].Score != 137 || plays[0].ID == "" {
		t.Fatalf("plays = %+v", plays)
	}
	if n := reloaded.PlayCount(ctx, GameRunner); n != 1 {
		t.Fatalf("runner play count=%d, want 1", n)
	}
	if n := reloaded.PlayCount(ctx, GameMemoryMatch); n != 0 {
		t.Fatalf("match play count=%d, want 0", n)
	}

	reloaded.Reset(ctx)
	if p := reloaded.Snapshot(); p.XP != 0 || p.Username != "Tester" || CountUnlocked(p) != 0 {
		t.Fatalf("after reset = %+v", p)
	}
	if plays := reloaded.RecentPlays(ctx, 5); len(plays) != 0 {
		t.Fatalf("plays after reset = %+v", plays)
	}
	if n := reloaded.PlayCount(ctx, GameRunner); n != 0 {
		t.Fatalf("play count after reset=%d", n)
	}
}

func TestSQLiteStoreDefaultsWhenEmpty(t *testing.T) {
	s := newSQLiteStore(t)
	if p := s.Snapshot(); p.Level != 1 || p.Username != "Tester" {
		t.Fatalf("empty db profile = %+v", p)
	}
	mem, _, _ := newTestStore(t)
	if n := mem.PlayCount(context.Background(), GameRunner); n != 0 {
		t.Fatalf("store without play log counted %d", n)
	}
}
