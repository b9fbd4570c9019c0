package tui

import (
	"context"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hawkins/internal/clock"
	"hawkins/internal/engine"
	"hawkins/internal/match"
	"hawkins/internal/runner"
	"hawkins/internal/storage"
)

const recentPlays = 5

type tickMsg time.Time

type playsMsg struct {
	plays []storage.Play
}

// sessions holds the live games. Games are created on entering their screen
// and closed on leaving it.
type sessions struct {
	runner *runner.Game
	match  *match.Game

	levels      levelUpQueue
	unsubscribe func()
}

func (s *sessions) closeRunner() {
	if s.runner != nil {
		s.runner.Close()
		s.runner = nil
	}
}

func (s *sessions) closeMatch() {
	if s.match != nil {
		s.match.Close()
		s.match = nil
	}
}

func (s *sessions) close() {
	s.closeRunner()
	s.closeMatch()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

type model struct {
	ctx   context.Context
	st    *engine.Store
	opts  Options
	clock clock.Clock
	s     *sessions

	screen Screen
	home   Screen
	cursor int

	width  int
	height int

	plays   []storage.Play
	overlay overlay
	lastLog string
}

func newModel(ctx context.Context, st *engine.Store, opts Options) model {
	if opts.Tick <= 0 {
		opts.Tick = 16 * time.Millisecond
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	s := &sessions{}
	s.unsubscribe = st.SubscribeLevelUp(s.levels.push)

	m := model{
		ctx:     ctx,
		st:      st,
		opts:    opts,
		clock:   opts.Clock,
		s:       s,
		home:    opts.Screen,
		lastLog: "Ready.",
	}
	return m.enter(opts.Screen)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.loadCmd())
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.Tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return playsMsg{plays: m.st.RecentPlays(m.ctx, recentPlays)}
	}
}

func (m model) newRand(stream uint64) *rand.Rand {
	if m.opts.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(m.opts.Seed, stream))
}

// enter switches screens, tearing down the game being left.
func (m model) enter(screen Screen) model {
	if m.screen != screen {
		m.s.closeRunner()
		m.s.closeMatch()
	}
	m.screen = screen
	switch screen {
	case ScreenRunner:
		if m.s.runner == nil {
			m.s.runner = runner.New(m.ctx, m.st, runner.Options{Clock: m.clock, Rand: m.newRand(1)})
		}
	case ScreenMatch:
		if m.s.match == nil {
			m.s.match = match.New(m.ctx, m.st, match.Options{Clock: m.clock, Rand: m.newRand(2)})
		}
		m.cursor = 0
	}
	return m
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.s.close()
	return m, tea.Quit
}

// back leaves a game for the board, or quits when the program was opened on that game.
func (m model) back() (tea.Model, tea.Cmd) {
	if m.home != ScreenBoard {
		return m.quit()
	}
	m = m.enter(ScreenBoard)
	return m, m.loadCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case playsMsg:
		m.plays = msg.plays
		return m, nil
	case tickMsg:
		return m.frame(), m.tickCmd()
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m.quit()
		}
		if m.overlay.active(m.clock.Now()) {
			if key == "enter" || key == "esc" || key == " " {
				m.overlay = overlay{}
			}
			return m, nil
		}
		switch m.screen {
		case ScreenRunner:
			return m.updateRunner(key)
		case ScreenMatch:
			return m.updateMatch(key)
		default:
			return m.updateBoard(key)
		}
	}
	return m, nil
}

// frame advances the active game and picks up level-ups it caused.
func (m model) frame() model {
	switch m.screen {
	case ScreenRunner:
		if g := m.s.runner; g != nil {
			before := g.State()
			g.Tick()
			if before == runner.StatePlaying && g.State() == runner.StateGameOver {
				m.lastLog = runnerSummary(g.LastResult())
			}
		}
	case ScreenMatch:
		if g := m.s.match; g != nil {
			before := g.State()
			g.Tick()
			if before == match.StatePlaying && g.State() == match.StateWon {
				m.lastLog = matchSummary(g.LastResult())
			}
		}
	}
	if levels := m.s.levels.drain(); len(levels) > 0 {
		m.overlay = overlay{level: levels[len(levels)-1], until: m.clock.Now().Add(LevelUpDuration)}
	}
	return m
}

func (m model) updateBoard(key string) (tea.Model, tea.Cmd) {
	if !m.st.IntroSeen() {
		m.st.MarkIntroSeen()
		return m, nil
	}
	switch key {
	case "q", "esc":
		return m.quit()
	case "1", "r":
		m = m.enter(ScreenRunner)
		m.lastLog = "Space to run, space to jump."
	case "2", "m":
		m = m.enter(ScreenMatch)
		m.lastLog = "Enter to deal the cards."
	case "u":
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	}
	return m, nil
}

func (m model) updateRunner(key string) (tea.Model, tea.Cmd) {
	g := m.s.runner
	switch key {
	case "q", "esc":
		return m.back()
	case " ", "up", "k", "w", "enter":
		if g.State() != runner.StatePlaying {
			m.lastLog = "Run!"
		}
		g.Press()
	}
	return m, nil
}

func (m model) updateMatch(key string) (tea.Model, tea.Cmd) {
	g := m.s.match
	cols := matchColumns
	n := 2 * g.Pairs()
	switch key {
	case "q", "esc":
		return m.back()
	case "n":
		g.Start()
		m.cursor = 0
		m.lastLog = "New deck."
		return m, nil
	case "left", "h":
		if m.cursor%cols > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor%cols < cols-1 && m.cursor+1 < n {
			m.cursor++
		}
	case "up", "k":
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case "down", "j":
		if m.cursor+cols < n {
			m.cursor += cols
		}
	case "enter", " ":
		if g.State() != match.StatePlaying {
			g.Start()
			m.cursor = 0
			m.lastLog = "Find the pairs."
			return m, nil
		}
		g.Flip(m.cursor)
	}
	return m, nil
}

func (m model) View() string {
	var body string
	switch m.screen {
	case ScreenRunner:
		body = m.renderRunner()
	case ScreenMatch:
		body = m.renderMatch()
	default:
		body = m.renderBoard()
	}
	if m.overlay.active(m.clock.Now()) {
		return renderLevelUp(m.overlay.level) + "\n\n" + body
	}
	return body
}
