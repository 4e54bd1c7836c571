package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dareloop/dareloop/internal/api"
	"github.com/dareloop/dareloop/internal/config"
	"github.com/dareloop/dareloop/internal/db"
	"github.com/dareloop/dareloop/internal/runctrl"
)

// Run starts the TUI and blocks until it exits.
func Run(database *db.DB, cfg *config.Config, client *api.Client, ctrl *runctrl.Controller) error {
	model := NewModel(database, cfg, client, ctrl)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
