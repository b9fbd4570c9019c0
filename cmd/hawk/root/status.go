package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hawkins/internal/catalog"
	"hawkins/internal/engine"
	"hawkins/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, high scores and recent plays",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st, _, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := st.Snapshot()
			out := cmd.OutOrStdout()
			into, span := engine.LevelProgress(p.XP)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, p.Username))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%s %s %s", ui.XP(p.XP), ui.ProgressBar(float64(into)/float64(span), 20),
				ui.Muted.Render(fmt.Sprintf("(%s to level %d)", ui.Number(engine.XPToNextLevel(p.XP)), p.Level+1)))))
			fmt.Fprintln(out, ui.LabelValue("Games played", ui.Number(p.TotalGamesPlayed)))
			fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d/%d", engine.CountUnlocked(p), len(p.Achievements))))
			fmt.Fprintln(out, ui.LabelValue("Collection", fmt.Sprintf("%d/%d", len(p.CollectedItems), len(catalog.All()))))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" High scores"))
			fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render("Runner:"), scoreText(p.HighScores[string(engine.GameRunner)], " points"), playsText(st.PlayCount(ctx, engine.GameRunner)))
			fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render("Memory Match:"), scoreText(p.HighScores[string(engine.GameMemoryMatch)], " moves"), playsText(st.PlayCount(ctx, engine.GameMemoryMatch)))
			fmt.Fprintln(out, "")

			plays := st.RecentPlays(ctx, 5)
			if len(plays) == 0 {
				return nil
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconScroll+" Recent plays"))
			for _, pl := range plays {
				detail := fmt.Sprintf("score %d", pl.Score)
				if pl.Game == string(engine.GameMemoryMatch) {
					detail = fmt.Sprintf("%d moves", pl.Moves)
				}
				fmt.Fprintf(out, "- %s %s %s %s\n", ui.Muted.Render(pl.FinishedAt.Local().Format("2006-01-02 15:04")), pl.Game, detail, ui.Good.Render(fmt.Sprintf("+%d XP", pl.XPAwarded)))
			}
			return nil
		},
	}

	return cmd
}

func scoreText(v int, unit string) string {
	if v <= 0 {
		return ui.Muted.Render("none yet")
	}
	return ui.Number(v) + unit
}

func playsText(n int) string {
	return ui.Muted.Render(fmt.Sprintf("(%s finished)", ui.Number(n)))
}
