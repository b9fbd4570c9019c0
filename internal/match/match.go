// Package match is the memory-matching mini-game simulation: a shuffled deck
// of symbol pairs, a two-card selection window, and timed resolution of each
// pair. Timed steps run from Tick through the game's own scheduler.
package match

import (
	"context"
	"math/rand/v2"
	"time"

	"hawkins/internal/clock"
	"hawkins/internal/engine"
	"hawkins/internal/storage"
)

// Symbols is the default alphabet; every deck holds each symbol twice.
var Symbols = []string{"🦇", "👹", "🌑", "⚡", "🔥", "💀", "🕷️", "🗝️"}

const (
	MatchSettle   = 600 * time.Millisecond
	MismatchDelay = 1000 * time.Millisecond
	WinDelay      = 500 * time.Millisecond

	// MasterTime is the finish time under which memory_master unlocks.
	MasterTime = 30 * time.Second

	BaseXP    = 100
	XPPerMove = 5
	MinXP     = 20
)

type State int

const (
	StateMenu State = iota
	StatePlaying
	StateWon
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	default:
		return "menu"
	}
}

// Progression is the slice of the store the match game reports to.
type Progression interface {
	Snapshot() storage.Profile
	IncrementGamesPlayed(ctx context.Context)
	AddXP(ctx context.Context, amount int)
	UpdateHighScore(ctx context.Context, game engine.GameID, score int)
	UnlockAchievement(ctx context.Context, id string)
	RecordPlay(ctx context.Context, p storage.Play)
}

type Result struct {
	Moves     int
	XP        int
	Duration  time.Duration
	Master    bool
	NewRecord bool
}

type Options struct {
	Clock   clock.Clock
	Rand    *rand.Rand
	Symbols []string
}

type Game struct {
	ctx     context.Context
	prog    Progression
	clock   clock.Clock
	sched   *clock.Scheduler
	rng     *rand.Rand
	symbols []string

	state       State
	deck        []Card
	selection   []int
	moves       int
	matches     int
	startedAt   time.Time
	completedAt time.Time

	result Result
	closed bool
}

func New(ctx context.Context, prog Progression, opts Options) *Game {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0xc4d5))
	}
	if len(opts.Symbols) == 0 {
		opts.Symbols = Symbols
	}
	return &Game{
		ctx:     ctx,
		prog:    prog,
		clock:   opts.Clock,
		sched:   clock.NewScheduler(opts.Clock),
		rng:     opts.Rand,
		symbols: append([]string(nil), opts.Symbols...),
		state:   StateMenu,
	}
}

func (g *Game) State() State           { return g.state }
func (g *Game) Moves() int             { return g.moves }
func (g *Game) Matches() int           { return g.matches }
func (g *Game) Pairs() int             { return len(g.symbols) }
func (g *Game) StartedAt() time.Time   { return g.startedAt }
func (g *Game) CompletedAt() time.Time { return g.completedAt }
func (g *Game) LastResult() Result     { return g.result }
func (g *Game) PendingTimers() int     { return g.sched.Pending() }
func (g *Game) Closed() bool           { return g.closed }
func (g *Game) Deck() []Card           { return append([]Card(nil), g.deck...) }
func (g *Game) Selection() []int       { return append([]int(nil), g.selection...) }

// Elapsed is the session time so far, or the final time once won.
func (g *Game) Elapsed() time.Duration {
	switch g.state {
	case StatePlaying:
		return g.clock.Now().Sub(g.startedAt)
	case StateWon:
		return g.completedAt.Sub(g.startedAt)
	default:
		return 0
	}
}

// XPForMoves is the win reward: 100 minus 5 per move, never below 20.
func XPForMoves(moves int) int {
	xp := BaseXP - moves*XPPerMove
	if xp < MinXP {
		return MinXP
	}
	return xp
}

// Start deals a fresh deck. Allowed from any state; pending resolutions of
// the previous deck are dropped.
func (g *Game) Start() bool {
	if g.closed {
		return false
	}
	g.sched.CancelAll()
	g.deck = NewDeck(g.rng, g.symbols)
	g.selection = nil
	g.moves = 0
	g.matches = 0
	g.startedAt = g.clock.Now()
	g.completedAt = time.Time{}
	g.result = Result{}
	g.state = StatePlaying

	g.prog.IncrementGamesPlayed(g.ctx)
	return true
}

// Flip turns card id face up. Ignored unless playing, the card is face down
// and unmatched, and fewer than two cards are already waiting.
func (g *Game) Flip(id int) bool {
	if g.closed || g.state != StatePlaying || id < 0 || id >= len(g.deck) {
		return false
	}
	c := &g.deck[id]
	if c.Matched || c.Flipped || len(g.selection) >= 2 {
		return false
	}
	c.Flipped = true
	g.selection = append(g.selection, id)
	if len(g.selection) < 2 {
		return true
	}

	g.moves++
	first, second := g.selection[0], g.selection[1]
	if g.deck[first].Symbol == g.deck[second].Symbol {
		g.sched.After(MatchSettle, func() { g.resolveMatch(first, second) })
	} else {
		g.sched.After(MismatchDelay, func() { g.resolveMismatch(first, second) })
	}
	return true
}

// Tick fires due resolutions.
func (g *Game) Tick() {
	if g.closed {
		return
	}
	g.sched.Run(g.clock.Now())
}

// Close drops pending resolutions; the game ignores all calls afterwards.
func (g *Game) Close() {
	g.sched.Close()
	g.closed = true
}

func (g *Game) resolveMatch(first, second int) {
	g.deck[first].Matched = true
	g.deck[second].Matched = true
	g.selection = nil
	g.matches++
	if g.matches == len(g.symbols) {
		g.sched.After(WinDelay, g.win)
	}
}

func (g *Game) resolveMismatch(first, second int) {
	g.deck[first].Flipped = false
	g.deck[second].Flipped = false
	g.selection = nil
}

func (g *Game) win() {
	g.completedAt = g.clock.Now()
	g.state = StateWon

	elapsed := g.completedAt.Sub(g.startedAt)
	xp := XPForMoves(g.moves)
	prev := g.prog.Snapshot().HighScores[string(engine.GameMemoryMatch)]
	g.result = Result{
		Moves:     g.moves,
		XP:        xp,
		Duration:  elapsed,
		Master:    elapsed < MasterTime,
		NewRecord: engine.GameMemoryMatch.Policy().Improves(prev, g.moves),
	}

	g.prog.AddXP(g.ctx, xp)
	g.prog.UpdateHighScore(g.ctx, engine.GameMemoryMatch, g.moves)
	if g.result.Master {
		g.prog.UnlockAchievement(g.ctx, engine.AchievementMemoryMaster)
	}
	g.prog.RecordPlay(g.ctx, storage.Play{
		Game:       string(engine.GameMemoryMatch),
		Moves:      g.moves,
		XPAwarded:  xp,
		Duration:   elapsed,
		FinishedAt: g.completedAt.UTC(),
	})
}
