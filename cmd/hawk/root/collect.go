package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hawkins/internal/catalog"
	"hawkins/internal/engine"
	"hawkins/internal/ui"
)

func newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect <id|name>",
		Short: "Add a creature from the gallery to your collection",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("id or name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			it, ok := catalog.Find(query)
			if !ok {
				return fmt.Errorf("no creature matches %q", query)
			}

			ctx := context.Background()
			st, _, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if st.HasCollected(it.ID) {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s is already in your collection.", it.Name)))
				return nil
			}
			before := engine.CountUnlocked(st.Snapshot())
			st.CollectItem(ctx, it.ID)
			p := st.Snapshot()

			fmt.Fprintf(out, "%s Collected %s (%s). %d/%d\n", ui.IconGem, ui.Key.Render(it.Name), ui.RarityText(string(it.Rarity)), len(p.CollectedItems), len(catalog.All()))
			if engine.CountUnlocked(p) > before {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Achievement unlocked!"))
			}
			return nil
		},
	}

	return cmd
}
