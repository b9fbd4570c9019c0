package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hawkins/internal/engine"
	"hawkins/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "List achievements and when they were unlocked",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st, _, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := st.Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements (%d/%d)", engine.CountUnlocked(p), len(p.Achievements))))
			for _, a := range p.Achievements {
				when := ""
				if a.UnlockedAt != nil {
					when = ui.Muted.Render(a.UnlockedAt.Local().Format("2006-01-02 15:04"))
				}
				icon := a.Icon
				if !a.Unlocked {
					icon = ui.IconLock
				}
				fmt.Fprintf(out, "%s %s %s %s\n", icon, ui.Key.Render(a.Name), ui.Unlocked(a.Unlocked), when)
				fmt.Fprintf(out, "   %s\n", ui.Muted.Render(a.Description))
			}
			return nil
		},
	}

	return cmd
}
