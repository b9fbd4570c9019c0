package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hawkins/internal/clock"
	"hawkins/internal/engine"
)

// Screen is what the program shows first.
type Screen int

const (
	ScreenBoard Screen = iota
	ScreenRunner
	ScreenMatch
)

type Options struct {
	Screen Screen
	// Tick is the frame interval; games advance once per frame.
	Tick time.Duration
	// Seed fixes the game RNGs when non-zero.
	Seed uint64
	// LogFile receives log output while the terminal is owned by the program.
	LogFile string
	Clock   clock.Clock
}

// Run drives st through an interactive terminal program until the user quits.
func Run(ctx context.Context, st *engine.Store, opts Options, out io.Writer) error {
	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "hawk")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	}

	m := newModel(ctx, st, opts)
	defer m.s.close()

	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
