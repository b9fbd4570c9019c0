package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hawkins/internal/catalog"
	"hawkins/internal/ui"
)

func newGalleryCmd() *cobra.Command {
	var rarity string
	var sortBy string

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse the collectible creatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := catalog.All()
			if rarity != "" {
				r, ok := catalog.ParseRarity(rarity)
				if !ok {
					return fmt.Errorf("unknown rarity %q", rarity)
				}
				items = catalog.Filter(items, r)
			}
			switch by := catalog.SortBy(sortBy); by {
			case catalog.ByEdition, catalog.ByRarity, catalog.ByName:
				catalog.Sort(items, by)
			default:
				return fmt.Errorf("unknown sort %q (edition|rarity|name)", sortBy)
			}

			ctx := context.Background()
			st, _, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGem, "Gallery"))
			for _, it := range items {
				mark := "  "
				if st.HasCollected(it.ID) {
					mark = ui.Good.Render("✓ ")
				}
				fmt.Fprintf(out, "%s#%-2d %-18s %-12s %s\n", mark, it.Edition, it.Name, ui.RarityText(string(it.Rarity)), ui.Muted.Render(it.ID))
				fmt.Fprintf(out, "     ATK %d  DEF %d  SPD %d  INT %d  PWR %d  %s\n",
					it.Stats.Attack, it.Stats.Defense, it.Stats.Speed, it.Stats.Intelligence, it.Stats.Total(),
					ui.Muted.Render(fmt.Sprintf("1 of %d · x%g", it.Supply, it.Rarity.Multiplier())))
				fmt.Fprintf(out, "     %s\n", ui.Muted.Render(it.Description))
			}
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing matches)"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&rarity, "rarity", "r", "", "Only show one rarity (common|uncommon|rare|epic|legendary|mythic)")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(catalog.ByEdition), "Sort order (edition|rarity|name)")

	return cmd
}
