package engine

import (
	"context"
	"database/sql"
	"log"
	"sort"
	"strings"
	"sync"

	"hawkins/internal/clock"
	"hawkins/internal/storage"
)

// DefaultUsername is used when no username is configured.
const DefaultUsername = "DemogorgonHunter"

// ProfileRepository persists the single profile record.
type ProfileRepository interface {
	Load(ctx context.Context) (*storage.Profile, error)
	Save(ctx context.Context, p storage.Profile) error
}

// PlayLog records finished sessions.
type PlayLog interface {
	Insert(ctx context.Context, p storage.Play) (string, error)
	ListRecent(ctx context.Context, limit int) ([]storage.Play, error)
	CountByGame(ctx context.Context, game string) (int, error)
}

type wiper interface {
	Wipe(ctx context.Context) error
}

type StoreOptions struct {
	Username string
	Plays    PlayLog
	Clock    clock.Clock
	Logger   *log.Logger
}

// Store owns the player profile. It is constructed once and handed to every
// collaborator; mutations are serialized and never return errors. Persistence
// faults are logged and the store carries on with its in-memory state.
type Store struct {
	mu      sync.Mutex
	profile storage.Profile

	repo   ProfileRepository
	plays  PlayLog
	clock  clock.Clock
	logger *log.Logger

	introSeen bool

	subs      []levelUpSub
	nextSubID int
	slotID    int
}

// OpenStore builds a store backed by the SQLite profile and play tables.
func OpenStore(ctx context.Context, db *sql.DB, opts StoreOptions) *Store {
	if opts.Plays == nil {
		opts.Plays = storage.NewPlayRepo(db)
	}
	return NewStore(ctx, storage.NewProfileRepo(db), opts)
}

// NewStore loads the profile from repo once. A nil repo keeps everything in memory.
func NewStore(ctx context.Context, repo ProfileRepository, opts StoreOptions) *Store {
	s := &Store{
		repo:   repo,
		plays:  opts.Plays,
		clock:  opts.Clock,
		logger: opts.Logger,
	}
	if s.clock == nil {
		s.clock = clock.Real{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	username := strings.TrimSpace(opts.Username)
	if username == "" {
		username = DefaultUsername
	}
	s.profile = DefaultProfile(username)

	if repo == nil {
		return s
	}
	stored, err := repo.Load(ctx)
	if err != nil {
		s.logger.Printf("[store] load profile, using defaults: %v", err)
		return s
	}
	if stored != nil {
		s.profile = normalizeProfile(*stored, username)
	}
	return s
}

// DefaultProfile is the profile of a first launch.
func DefaultProfile(username string) storage.Profile {
	hs := make(map[string]int, len(Games))
	for _, g := range Games {
		hs[string(g)] = 0
	}
	return storage.Profile{
		Username:       username,
		Level:          1,
		HighScores:     hs,
		Achievements:   DefaultAchievements(),
		CollectedItems: []string{},
	}
}

// normalizeProfile reconciles a stored record with the current catalog:
// catalog order wins, unlock state carries over, level is re-derived.
func normalizeProfile(p storage.Profile, fallbackName string) storage.Profile {
	out := DefaultProfile(p.Username)
	if out.Username == "" {
		out.Username = fallbackName
	}
	if p.XP > 0 {
		out.XP = p.XP
	}
	out.Level = LevelForXP(out.XP)
	if p.TotalGamesPlayed > 0 {
		out.TotalGamesPlayed = p.TotalGamesPlayed
	}
	for _, g := range Games {
		if v, ok := p.HighScores[string(g)]; ok && v > 0 {
			out.HighScores[string(g)] = v
		}
	}
	for i := range out.Achievements {
		if prev := findAchievement(&p, out.Achievements[i].ID); prev != nil && prev.Unlocked {
			out.Achievements[i].Unlocked = true
			out.Achievements[i].UnlockedAt = prev.UnlockedAt
		}
	}
	seen := make(map[string]bool, len(p.CollectedItems))
	for _, id := range p.CollectedItems {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out.CollectedItems = append(out.CollectedItems, id)
	}
	sort.Strings(out.CollectedItems)
	return out
}

// Snapshot returns a copy of the profile for display.
func (s *Store) Snapshot() storage.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// AddXP adds a non-negative amount. When the derived level goes up, level-up
// subscribers hear the final level once, even if several levels were crossed.
// Level achievements are evaluated after the subscribers return.
func (s *Store) AddXP(ctx context.Context, amount int) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	before := s.profile.Level
	s.profile.XP += amount
	s.profile.Level = LevelForXP(s.profile.XP)
	level := s.profile.Level
	var notify []LevelUpFunc
	if level > before {
		notify = s.levelUpTargetsLocked()
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	for _, fn := range notify {
		fn(level)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evaluateLocked(Mutation{Kind: MutationXP}) {
		s.persistLocked(ctx)
	}
}

func (s *Store) IncrementGamesPlayed(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.TotalGamesPlayed++
	s.evaluateLocked(Mutation{Kind: MutationGamesPlayed})
	s.persistLocked(ctx)
}

// UpdateHighScore stores score if it beats the current record under the
// game's ScorePolicy. Unknown games and non-improving scores are ignored.
func (s *Store) UpdateHighScore(ctx context.Context, game GameID, score int) {
	if !game.IsValid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.profile.HighScores[string(game)]
	if !game.Policy().Improves(current, score) {
		return
	}
	s.profile.HighScores[string(game)] = score
	s.evaluateLocked(Mutation{Kind: MutationHighScore, Game: game, Score: score})
	s.persistLocked(ctx)
}

// UnlockAchievement flips a locked achievement; unknown or unlocked ids are no-ops.
func (s *Store) UnlockAchievement(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlockLocked(id) {
		return
	}
	s.persistLocked(ctx)
}

// CollectItem adds itemID to the collection once.
func (s *Store) CollectItem(ctx context.Context, itemID string) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.profile.CollectedItems
	i := sort.SearchStrings(items, itemID)
	if i < len(items) && items[i] == itemID {
		return
	}
	items = append(items, "")
	copy(items[i+1:], items[i:])
	items[i] = itemID
	s.profile.CollectedItems = items
	s.evaluateLocked(Mutation{Kind: MutationCollect})
	s.persistLocked(ctx)
}

// HasCollected reports whether itemID is in the collection.
func (s *Store) HasCollected(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := sort.SearchStrings(s.profile.CollectedItems, itemID)
	return i < len(s.profile.CollectedItems) && s.profile.CollectedItems[i] == itemID
}

// MarkIntroSeen is a process-lifetime flag and is never persisted.
func (s *Store) MarkIntroSeen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.introSeen = true
}

func (s *Store) IntroSeen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.introSeen
}

// RecordPlay appends a finished session to the play log, if one is configured.
func (s *Store) RecordPlay(ctx context.Context, p storage.Play) {
	if s.plays == nil {
		return
	}
	if p.FinishedAt.IsZero() {
		p.FinishedAt = s.clock.Now().UTC()
	}
	if _, err := s.plays.Insert(ctx, p); err != nil {
		s.logger.Printf("[store] record play: %v", err)
	}
}

// RecentPlays returns up to n logged sessions, newest first.
func (s *Store) RecentPlays(ctx context.Context, n int) []storage.Play {
	if s.plays == nil {
		return nil
	}
	out, err := s.plays.ListRecent(ctx, n)
	if err != nil {
		s.logger.Printf("[store] list plays: %v", err)
		return nil
	}
	return out
}

// PlayCount returns how many sessions of game the play log holds.
func (s *Store) PlayCount(ctx context.Context, game GameID) int {
	if s.plays == nil {
		return 0
	}
	n, err := s.plays.CountByGame(ctx, string(game))
	if err != nil {
		s.logger.Printf("[store] count plays: %v", err)
		return 0
	}
	return n
}

// Reset wipes persisted progress and returns the profile to defaults,
// keeping the username.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.repo.(wiper); ok {
		if err := w.Wipe(ctx); err != nil {
			s.logger.Printf("[store] wipe: %v", err)
		}
	}
	s.profile = DefaultProfile(s.profile.Username)
	s.persistLocked(ctx)
}

// evaluateLocked applies the rules for m and reports whether anything unlocked.
func (s *Store) evaluateLocked(m Mutation) bool {
	changed := false
	for _, id := range Evaluate(&s.profile, m) {
		if s.unlockLocked(id) {
			changed = true
		}
	}
	return changed
}

func (s *Store) unlockLocked(id string) bool {
	a := findAchievement(&s.profile, id)
	if a == nil || a.Unlocked {
		return false
	}
	at := s.clock.Now().UTC()
	a.Unlocked = true
	a.UnlockedAt = &at
	return true
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, s.profile); err != nil {
		s.logger.Printf("[store] save profile: %v", err)
	}
}
