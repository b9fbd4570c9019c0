package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hawkins/internal/ui"
)

const Version = "0.1.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hawk",
		Short:         "Hawkins: Upside Down mini-games with a persistent player profile",
		Long:          "Hawkins is a terminal arcade of two mini-games (Demogorgon Runner and Mind Flayer Match) that feed XP, levels, achievements and high scores into one local profile.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.AddCommand(
		newStatusCmd(),
		newAchievementsCmd(),
		newGalleryCmd(),
		newCollectCmd(),
		newRunCmd(),
		newMatchCmd(),
		newBoardCmd(),
		newResetCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
