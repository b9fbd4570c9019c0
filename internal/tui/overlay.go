package tui

import (
	"sync"
	"time"
)

// LevelUpDuration is how long the level-up banner stays on screen.
const LevelUpDuration = 5 * time.Second

var levelUpMessages = []string{
	"The Dark Side Notices You",
	"The Upside Down Beckons",
	"Vecna Sees Your Power",
	"The Mind Flayer Watches",
	"Reality Fractures Before You",
	"The Shadow Realm Calls",
}

// LevelUpMessage is the banner line for reaching level.
func LevelUpMessage(level int) string {
	i := min(max(level-2, 0), len(levelUpMessages)-1)
	return levelUpMessages[i]
}

// levelUpQueue collects store notifications until the next frame picks them up.
type levelUpQueue struct {
	mu     sync.Mutex
	levels []int
}

func (q *levelUpQueue) push(level int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.levels = append(q.levels, level)
}

func (q *levelUpQueue) drain() []int {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.levels
	q.levels = nil
	return out
}

type overlay struct {
	level int
	until time.Time
}

func (o overlay) active(now time.Time) bool {
	return o.level > 0 && now.Before(o.until)
}
