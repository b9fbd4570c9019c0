package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"hawkins/internal/match"
	"hawkins/internal/runner"
	"hawkins/internal/ui"
)

const (
	// cellWidth is the world distance one terminal column covers.
	cellWidth  = 10.0
	cellHeight = 50.0
	fieldRows  = 5
	fieldCols  = int(runner.SpawnX / cellWidth)

	matchColumns = 4
)

var (
	playerCell   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("█")
	obstacleCell = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Render("▓")
)

// covers reports whether b fills the cell at column col, row row (0 is the top).
func covers(b runner.Box, col, row int) bool {
	left := float64(col) * cellWidth
	bottom := float64(fieldRows-1-row) * cellHeight
	return b.Left < left+cellWidth && b.Right > left && b.Bottom < bottom+cellHeight && b.Top > bottom
}

func (m model) renderRunner() string {
	g := m.s.runner
	var out []string
	out = append(out, fmt.Sprintf("%s %s | Score %s | Speed %.1f",
		ui.Heading(ui.IconRun, "Demogorgon Runner"), ui.Muted.Render(g.State().String()), ui.Number(g.Score()), g.Speed()))

	player := g.PlayerBox()
	obstacles := g.Obstacles()
	for row := 0; row < fieldRows; row++ {
		var b strings.Builder
		for col := 0; col < fieldCols; col++ {
			cell := " "
			if covers(player, col, row) {
				cell = playerCell
			} else {
				for _, o := range obstacles {
					if covers(o.Box(), col, row) {
						cell = obstacleCell
						break
					}
				}
			}
			b.WriteString(cell)
		}
		out = append(out, b.String())
	}
	out = append(out, ui.Muted.Render(strings.Repeat("▔", fieldCols)))

	switch g.State() {
	case runner.StateMenu:
		out = append(out, "Press space to start.")
	case runner.StateGameOver:
		out = append(out, m.lastLog, "Press space to run again.")
	default:
		out = append(out, "")
	}
	out = append(out, ui.Muted.Render("space jump · esc back"))
	return strings.Join(out, "\n")
}

func (m model) renderMatch() string {
	g := m.s.match
	var out []string
	out = append(out, fmt.Sprintf("%s %s | Moves %d | Pairs %d/%d | %s",
		ui.Heading(ui.IconCards, "Mind Flayer Match"), ui.Muted.Render(g.State().String()),
		g.Moves(), g.Matches(), g.Pairs(), g.Elapsed().Truncate(100*time.Millisecond)))

	deck := g.Deck()
	if len(deck) == 0 {
		out = append(out, "", "Press enter to deal.")
		out = append(out, ui.Muted.Render("esc back"))
		return strings.Join(out, "\n")
	}
	for start := 0; start < len(deck); start += matchColumns {
		var cells []string
		for i := start; i < start+matchColumns && i < len(deck); i++ {
			cells = append(cells, cardCell(deck[i], i == m.cursor))
		}
		out = append(out, strings.Join(cells, " "))
	}
	if g.State() == match.StateWon {
		out = append(out, "", m.lastLog, "Press enter to play again.")
	} else {
		out = append(out, "")
	}
	out = append(out, ui.Muted.Render("arrows move · enter flip · n new deck · esc back"))
	return strings.Join(out, "\n")
}

func cardCell(c match.Card, selected bool) string {
	var face string
	switch c.Face() {
	case match.FaceUp:
		face = "[ " + c.Symbol + " ]"
	case match.FaceMatched:
		face = ui.Good.Render("[ " + c.Symbol + " ]")
	default:
		face = "[ ?? ]"
	}
	if selected {
		return ui.SelectedRow.Render(face)
	}
	return face
}
