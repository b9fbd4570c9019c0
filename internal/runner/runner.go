// Package runner is the obstacle-avoidance mini-game simulation. It has no
// drawing code: a host calls Tick on its frame clock and Press/Jump on input,
// then reads the state back to render it.
package runner

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"hawkins/internal/clock"
	"hawkins/internal/engine"
	"hawkins/internal/storage"
)

type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	default:
		return "menu"
	}
}

const (
	BaseSpeed = 5.0
	SpeedStep = 0.002
	MaxSpeed  = 12.0

	ScoreInterval = 100 * time.Millisecond

	BaseSpawnInterval = 1500 * time.Millisecond
	SpawnStepPerPoint = 2 * time.Millisecond
	MinSpawnInterval  = 600 * time.Millisecond

	JumpHeight   = 150.0
	JumpDuration = 400 * time.Millisecond
	JumpCooldown = 100 * time.Millisecond

	// XPDivisor converts the final score into XP.
	XPDivisor = 10
)

// Progression is the slice of the store the runner reports to.
type Progression interface {
	Snapshot() storage.Profile
	IncrementGamesPlayed(ctx context.Context)
	UpdateHighScore(ctx context.Context, game engine.GameID, score int)
	AddXP(ctx context.Context, amount int)
	RecordPlay(ctx context.Context, p storage.Play)
}

// Result describes the last finished run.
type Result struct {
	Score     int
	XP        int
	NewRecord bool
	Duration  time.Duration
}

type Options struct {
	Clock clock.Clock
	Rand  *rand.Rand
}

// Game is one runner instance. Only its owner goroutine may call it.
type Game struct {
	ctx   context.Context
	prog  Progression
	clock clock.Clock
	sched *clock.Scheduler
	rng   *rand.Rand

	state     State
	score     int
	speed     float64
	offset    float64
	jumping   bool
	obstacles []Obstacle
	nextID    int

	startedAt time.Time
	scoreMark time.Time
	lastSpawn time.Time
	ticks     int

	result Result
	closed bool
}

func New(ctx context.Context, prog Progression, opts Options) *Game {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	return &Game{
		ctx:   ctx,
		prog:  prog,
		clock: opts.Clock,
		sched: clock.NewScheduler(opts.Clock),
		rng:   opts.Rand,
		state: StateMenu,
		speed: BaseSpeed,
	}
}

func (g *Game) State() State          { return g.state }
func (g *Game) Score() int            { return g.score }
func (g *Game) Speed() float64        { return g.speed }
func (g *Game) PlayerOffset() float64 { return g.offset }
func (g *Game) Jumping() bool         { return g.jumping }
func (g *Game) Ticks() int            { return g.ticks }
func (g *Game) LastResult() Result    { return g.result }
func (g *Game) PendingTimers() int    { return g.sched.Pending() }
func (g *Game) Closed() bool          { return g.closed }
func (g *Game) Obstacles() []Obstacle { return append([]Obstacle(nil), g.obstacles...) }
func (g *Game) PlayerBox() Box        { return PlayerBox(g.offset) }

// SpawnInterval is the minimum gap between spawns at the given score.
func SpawnInterval(score int) time.Duration {
	d := BaseSpawnInterval - time.Duration(score)*SpawnStepPerPoint
	if d < MinSpawnInterval {
		return MinSpawnInterval
	}
	return d
}

// Press is the single action key: start from the menu or game over, jump while playing.
func (g *Game) Press() {
	if g.state == StatePlaying {
		g.Jump()
		return
	}
	g.Start()
}

// Start begins a fresh run. Every transient field is reset and pending
// timers from the previous run are dropped.
func (g *Game) Start() bool {
	if g.closed || g.state == StatePlaying {
		return false
	}
	g.sched.CancelAll()
	now := g.clock.Now()

	g.state = StatePlaying
	g.score = 0
	g.speed = BaseSpeed
	g.offset = 0
	g.jumping = false
	g.obstacles = nil
	g.nextID = 0
	g.ticks = 0
	g.startedAt = now
	g.scoreMark = now
	g.lastSpawn = now
	g.result = Result{}

	g.prog.IncrementGamesPlayed(g.ctx)
	return true
}

// Jump lifts the player to the apex for JumpDuration. Input while a jump is
// in flight, including the short landing window, is ignored.
func (g *Game) Jump() bool {
	if g.closed || g.state != StatePlaying || g.jumping {
		return false
	}
	g.jumping = true
	g.offset = -JumpHeight
	g.sched.After(JumpDuration, func() {
		g.offset = 0
		g.sched.After(JumpCooldown, func() { g.jumping = false })
	})
	return true
}

// Tick advances the simulation by one frame: due timers, score, speed,
// spawn, movement, then collision, all against the same clock reading.
func (g *Game) Tick() {
	if g.closed {
		return
	}
	now := g.clock.Now()
	g.sched.Run(now)
	if g.state != StatePlaying {
		return
	}
	g.ticks++

	for now.Sub(g.scoreMark) >= ScoreInterval {
		g.score++
		g.scoreMark = g.scoreMark.Add(ScoreInterval)
	}

	g.speed = math.Min(g.speed+SpeedStep, MaxSpeed)

	if now.Sub(g.lastSpawn) > SpawnInterval(g.score) {
		g.spawn()
		g.lastSpawn = now
	}

	kept := g.obstacles[:0]
	for _, o := range g.obstacles {
		o.X -= g.speed
		if o.X > CullX {
			kept = append(kept, o)
		}
	}
	g.obstacles = kept

	player := g.PlayerBox()
	for _, o := range g.obstacles {
		if Overlaps(player, o.Box()) {
			g.finish(now)
			return
		}
	}
}

// Close cancels pending timers; the game ignores all calls afterwards.
func (g *Game) Close() {
	g.sched.Close()
	g.closed = true
}

func (g *Game) spawn() {
	kind := KindLow
	if g.rng.IntN(2) == 1 {
		kind = KindHigh
	}
	g.obstacles = append(g.obstacles, Obstacle{ID: g.nextID, X: SpawnX, Kind: kind})
	g.nextID++
}

func (g *Game) finish(now time.Time) {
	g.state = StateGameOver
	g.sched.CancelAll()

	xp := g.score / XPDivisor
	prev := g.prog.Snapshot().HighScores[string(engine.GameRunner)]
	g.result = Result{
		Score:     g.score,
		XP:        xp,
		NewRecord: engine.GameRunner.Policy().Improves(prev, g.score),
		Duration:  now.Sub(g.startedAt),
	}

	g.prog.UpdateHighScore(g.ctx, engine.GameRunner, g.score)
	g.prog.AddXP(g.ctx, xp)
	g.prog.RecordPlay(g.ctx, storage.Play{
		Game:       string(engine.GameRunner),
		Score:      g.score,
		XPAwarded:  xp,
		Duration:   g.result.Duration,
		FinishedAt: now.UTC(),
	})
}
