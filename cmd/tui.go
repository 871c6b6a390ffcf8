package cmd

import (
	"fmt"

	"github.com/theirongolddev/stratsim/internal/engine"
	"github.com/theirongolddev/stratsim/internal/session"
	"github.com/theirongolddev/stratsim/internal/tui"
	"github.com/theirongolddev/stratsim/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive simulator",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Invalid config values only prefill the form; validation happens there.
	defaults, err := cfg.Params()
	if err != nil {
		return err
	}

	sess := session.New(engine.SourceFromSeed(cfg.General.Seed))
	app := tui.NewApp(sess, defaults, cfg.Export)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
