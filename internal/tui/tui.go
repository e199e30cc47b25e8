package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive item list (or a single editor when opts.Direct is set).
func Run(opts AppOptions) error {
	applyThemePreference(opts.Settings.Theme)
	applyColorProfilePreference()
	applyGlyphPreference()

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
