package tui

import (
	"fmt"
	"strings"
	"time"

	"hawkins/internal/catalog"
	"hawkins/internal/engine"
	"hawkins/internal/match"
	"hawkins/internal/runner"
	"hawkins/internal/storage"
	"hawkins/internal/ui"
)

func (m model) renderBoard() string {
	p := m.st.Snapshot()
	if !m.st.IntroSeen() {
		return ui.Panel.Render(strings.Join([]string{
			ui.Heading(ui.IconPortal, "Hawkins"),
			"",
			fmt.Sprintf("Welcome back, %s.", ui.Gold.Render(p.Username)),
			"Something is stirring in the Upside Down.",
			"",
			ui.Muted.Render("Press any key."),
		}, "\n"))
	}

	var out []string
	out = append(out, renderHeader(p), "")

	out = append(out, ui.H2.Render("High scores"))
	out = append(out, "- "+ui.LabelValue("Runner", scoreText(p.HighScores[string(engine.GameRunner)], "")))
	out = append(out, "- "+ui.LabelValue("Memory Match", scoreText(p.HighScores[string(engine.GameMemoryMatch)], " moves")))
	out = append(out, "- "+ui.LabelValue("Games played", ui.Number(p.TotalGamesPlayed)))
	out = append(out, "- "+ui.LabelValue("Collection", fmt.Sprintf("%d/%d", len(p.CollectedItems), len(catalog.All()))))
	out = append(out, "")

	out = append(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, engine.CountUnlocked(p), len(p.Achievements))))
	for _, a := range p.Achievements {
		out = append(out, fmt.Sprintf("%s %-22s %s", a.Icon, a.Name, ui.Unlocked(a.Unlocked)))
	}
	out = append(out, "")

	out = append(out, ui.H2.Render(ui.IconScroll+" Recent plays"))
	if len(m.plays) == 0 {
		out = append(out, ui.Muted.Render("(none yet)"))
	}
	for _, pl := range m.plays {
		out = append(out, "- "+playLine(pl))
	}
	out = append(out, "")
	out = append(out, ui.Muted.Render("1 runner · 2 match · u refresh · q quit"))
	out = append(out, m.lastLog)
	return strings.Join(out, "\n")
}

func renderHeader(p storage.Profile) string {
	into, span := engine.LevelProgress(p.XP)
	return fmt.Sprintf("%s | %s | Level %d | %s %s %s",
		ui.Title.Render("Hawkins"),
		ui.Gold.Render(p.Username),
		p.Level,
		ui.XP(p.XP),
		ui.ProgressBar(float64(into)/float64(span), 20),
		ui.Muted.Render(ui.Number(engine.XPToNextLevel(p.XP))+" to next"),
	)
}

func scoreText(v int, unit string) string {
	if v <= 0 {
		return ui.Muted.Render("-")
	}
	return ui.Number(v) + unit
}

func playLine(pl storage.Play) string {
	when := pl.FinishedAt.Local().Format("Jan 02 15:04")
	switch pl.Game {
	case string(engine.GameMemoryMatch):
		return fmt.Sprintf("%s match in %d moves (%s) +%d XP", when, pl.Moves, pl.Duration.Round(100*time.Millisecond), pl.XPAwarded)
	default:
		return fmt.Sprintf("%s %s scored %d +%d XP", when, pl.Game, pl.Score, pl.XPAwarded)
	}
}

func renderLevelUp(level int) string {
	return ui.Overlay.Render(strings.Join([]string{
		ui.BadgeLevelUp,
		ui.Title.Render(fmt.Sprintf("LEVEL %d", level)),
		LevelUpMessage(level),
	}, "\n"))
}

func runnerSummary(r runner.Result) string {
	s := fmt.Sprintf("Game over: %d points, +%d XP.", r.Score, r.XP)
	if r.NewRecord {
		s += " " + ui.Gold.Render("New record!")
	}
	return s
}

func matchSummary(r match.Result) string {
	s := fmt.Sprintf("Cleared in %d moves (%s), +%d XP.", r.Moves, r.Duration.Round(100*time.Millisecond), r.XP)
	if r.Master {
		s += " " + ui.Gold.Render("Under 30 seconds!")
	}
	if r.NewRecord {
		s += " " + ui.Gold.Render("New record!")
	}
	return s
}
