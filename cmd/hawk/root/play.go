package root

import (
	"context"

	"github.com/spf13/cobra"

	"hawkins/internal/tui"
)

func runTUI(cmd *cobra.Command, screen tui.Screen) error {
	ctx := context.Background()
	st, cfg, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(ctx, st, tui.Options{
		Screen:  screen,
		Tick:    cfg.Tick,
		Seed:    cfg.Seed,
		LogFile: cfg.LogFile,
	}, cmd.OutOrStdout())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Play Demogorgon Runner",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, tui.ScreenRunner)
		},
	}
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match",
		Short: "Play Mind Flayer Match",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, tui.ScreenMatch)
		},
	}
}

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the profile board and game hub",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, tui.ScreenBoard)
		},
	}
}
