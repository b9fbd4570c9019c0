package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hawkins/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all progress (keeps your username)",
		Long: `Reset the profile to a first launch.

This will:
- Zero XP, level, games played and high scores
- Re-lock every achievement
- Empty the collection and the play log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			ctx := context.Background()
			st, _, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st.Reset(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Progress wiped for "+st.Snapshot().Username+"."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")

	return cmd
}
