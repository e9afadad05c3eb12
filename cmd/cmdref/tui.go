package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noelzubin/cmdref/app/tui"
)

// Run executes the tui command.
func (c *TuiCmd) Run(deps *Dependencies) error {
	m := tui.New(deps.Session, deps.Config.Editor, deps.Logger)
	p := tea.NewProgram(m, tea.WithContext(deps.Ctx), tea.WithInput(deps.Stdin), tea.WithOutput(deps.Stdout))
	_, err := p.Run()
	return err
}
